package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/propledger/backend/internal/infrastructure/config"
	"github.com/propledger/backend/internal/infrastructure/migration"
)

func main() {
	var (
		source = flag.String("source", "file://migrations", "migration source path")
		force  = flag.Int("force", -1, "force schema version (clears dirty state)")
	)
	flag.Parse()

	if err := run(*source, *force, flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(source string, force int, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	mg, err := migration.New(source, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer mg.Close() //nolint:errcheck

	if force >= 0 {
		return mg.Force(force)
	}

	switch command {
	case "up", "":
		if err := mg.Up(); err != nil {
			return err
		}
	case "down":
		if err := mg.Down(); err != nil {
			return err
		}
	case "version":
		version, dirty, err := mg.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%v\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown command %q (want up, down or version)", command)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	fmt.Printf("done: version=%d dirty=%v\n", version, dirty)
	return nil
}

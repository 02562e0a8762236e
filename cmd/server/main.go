package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/propledger/backend/internal/application/backup"
	"github.com/propledger/backend/internal/application/lifecycle"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/infrastructure/config"
	"github.com/propledger/backend/internal/infrastructure/logger"
	"github.com/propledger/backend/internal/infrastructure/notification"
	"github.com/propledger/backend/internal/infrastructure/persistence"
	"github.com/propledger/backend/internal/infrastructure/storage"
	"github.com/propledger/backend/internal/interfaces/http/handler"
	"github.com/propledger/backend/internal/interfaces/http/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	db, err := persistence.NewDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer persistence.CloseDatabase(db) //nolint:errcheck

	// Repositories
	customers := persistence.NewGormCustomerRepository(db)
	units := persistence.NewGormUnitRepository(db)
	partners := persistence.NewGormPartnerRepository(db)
	partnerGroups := persistence.NewGormPartnerGroupRepository(db)
	unitPartners := persistence.NewGormUnitPartnerRepository(db)
	contracts := persistence.NewGormContractRepository(db)
	installments := persistence.NewGormInstallmentRepository(db)
	partnerDebts := persistence.NewGormPartnerDebtRepository(db)
	safes := persistence.NewGormSafeRepository(db)
	vouchers := persistence.NewGormVoucherRepository(db)
	transfers := persistence.NewGormTransferRepository(db)
	brokers := persistence.NewGormBrokerRepository(db)
	brokerDues := persistence.NewGormBrokerDueRepository(db)
	settingsRepo := persistence.NewGormSettingRepository(db)
	keyVals := persistence.NewGormKeyValRepository(db)

	// Lifecycle
	guard := lifecycle.NewGuard(lifecycle.GuardRepositories{
		Safes:        safes,
		Vouchers:     vouchers,
		Transfers:    transfers,
		Contracts:    contracts,
		Installments: installments,
		UnitPartners: unitPartners,
		PartnerDebts: partnerDebts,
		BrokerDues:   brokerDues,
	}, log)

	registry := lifecycle.NewRegistry()
	registry.Register(shared.EntityCustomer, lifecycle.AsCollectionStore(customers))
	registry.Register(shared.EntityUnit, lifecycle.AsCollectionStore(units))
	registry.Register(shared.EntityPartner, lifecycle.AsCollectionStore(partners))
	registry.Register(shared.EntityPartnerGroup, lifecycle.AsCollectionStore(partnerGroups))
	registry.Register(shared.EntityUnitPartner, lifecycle.AsCollectionStore(unitPartners))
	registry.Register(shared.EntityContract, lifecycle.AsCollectionStore(contracts))
	registry.Register(shared.EntityInstallment, lifecycle.AsCollectionStore(installments))
	registry.Register(shared.EntityPartnerDebt, lifecycle.AsCollectionStore(partnerDebts))
	registry.Register(shared.EntitySafe, lifecycle.AsCollectionStore(safes))
	registry.Register(shared.EntityVoucher, lifecycle.AsCollectionStore(vouchers))
	registry.Register(shared.EntityTransfer, lifecycle.AsCollectionStore(transfers))
	registry.Register(shared.EntityBroker, lifecycle.AsCollectionStore(brokers))
	registry.Register(shared.EntityBrokerDue, lifecycle.AsCollectionStore(brokerDues))

	manager := lifecycle.NewManager(guard, registry, log)

	// Notification sink
	var notifier backup.Notifier = notification.NewLogNotifier(log)
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisNotifier := notification.NewRedisNotifier(client, cfg.Redis.Channel)
		defer redisNotifier.Close() //nolint:errcheck
		notifier = redisNotifier
	}

	// Backup service
	backupOpts := []backup.Option{backup.WithRestoreTimeout(cfg.Backup.RestoreTimeout)}
	if cfg.Backup.ArchiveEnabled {
		archive, err := storage.NewS3ArchiveStore(context.Background(), cfg.Storage)
		if err != nil {
			return fmt.Errorf("init archive storage: %w", err)
		}
		backupOpts = append(backupOpts, backup.WithArchive(archive))
	}

	backupSvc := backup.NewService(backup.Repositories{
		Customers:     customers,
		Units:         units,
		Partners:      partners,
		UnitPartners:  unitPartners,
		Contracts:     contracts,
		Installments:  installments,
		PartnerDebts:  partnerDebts,
		Safes:         safes,
		Transfers:     transfers,
		Vouchers:      vouchers,
		Brokers:       brokers,
		BrokerDues:    brokerDues,
		PartnerGroups: partnerGroups,
		Settings:      settingsRepo,
		KeyVals:       keyVals,
	}, persistence.NewGormTransactionScope(db), notifier, log, backupOpts...)

	// HTTP
	engine, err := router.New(cfg, router.Handlers{
		System:    handler.NewSystemHandler(db, log),
		Lifecycle: handler.NewLifecycleHandler(guard, manager, log),
		Backup:    handler.NewBackupHandler(backupSvc, cfg.HTTP.MaxBodySize, log),
	}, log)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

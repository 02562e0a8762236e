package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/propledger/backend/internal/domain/brokerage"
	"github.com/propledger/backend/internal/domain/partner"
	"github.com/propledger/backend/internal/domain/realty"
	"github.com/propledger/backend/internal/domain/settings"
	"github.com/propledger/backend/internal/domain/treasury"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// Every connection to :memory: is a distinct database; pin the pool to
	// one so all queries see the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&partner.Customer{},
		&realty.Unit{},
		&partner.Partner{},
		&partner.PartnerGroup{},
		&partner.UnitPartner{},
		&realty.Contract{},
		&realty.Installment{},
		&partner.PartnerDebt{},
		&treasury.Safe{},
		&treasury.Voucher{},
		&treasury.Transfer{},
		&brokerage.Broker{},
		&brokerage.BrokerDue{},
		&settings.Setting{},
		&settings.KeyVal{},
	)
	require.NoError(t, err)

	return db
}

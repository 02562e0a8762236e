package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propledger/backend/internal/application/backup"
	"github.com/propledger/backend/internal/domain/brokerage"
	"github.com/propledger/backend/internal/domain/partner"
	"github.com/propledger/backend/internal/domain/realty"
	"github.com/propledger/backend/internal/domain/settings"
	"github.com/propledger/backend/internal/domain/treasury"
)

// GormTransactionScope implements backup.TransactionScope over a gorm
// database transaction
type GormTransactionScope struct {
	db *gorm.DB
}

var _ backup.TransactionScope = (*GormTransactionScope)(nil)

// NewGormTransactionScope creates a transaction scope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a single database transaction. The restore store
// handed to fn writes through the transaction connection, so an error from fn
// rolls everything back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(store backup.RestoreStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRestoreStore{tx: tx})
	})
}

// gormRestoreStore implements backup.RestoreStore against one transaction
type gormRestoreStore struct {
	tx *gorm.DB
}

var _ backup.RestoreStore = (*gormRestoreStore)(nil)

// softDeletableModels lists one model per soft-deletable collection, in the
// order the bulk sweep updates them.
var softDeletableModels = []any{
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
}

func (s *gormRestoreStore) SoftDeleteAllLive(ctx context.Context) error {
	now := time.Now()
	for _, model := range softDeletableModels {
		err := s.tx.WithContext(ctx).Unscoped().Model(model).
			Where("deleted_at IS NULL").
			Update("deleted_at", now).Error
		if err != nil {
			return fmt.Errorf("failed to sweep live rows: %w", err)
		}
	}
	return nil
}

func (s *gormRestoreStore) ClearKeyValueTables(ctx context.Context) error {
	if err := s.tx.WithContext(ctx).Where("1 = 1").Delete(&settings.Setting{}).Error; err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	if err := s.tx.WithContext(ctx).Where("1 = 1").Delete(&settings.KeyVal{}).Error; err != nil {
		return fmt.Errorf("failed to clear keyval: %w", err)
	}
	return nil
}

// insertRows bulk-upserts snapshot rows through the transaction. Rows that
// survived the sweep keep their primary key, so a payload overlapping the
// current store conflicts on id; the upsert overwrites the swept row with the
// payload version, restoring its deleted_at to the payload's value.
func insertRows[T any](ctx context.Context, tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(rows, 500).Error
	if err != nil {
		return fmt.Errorf("failed to insert snapshot rows: %w", err)
	}
	return nil
}

func (s *gormRestoreStore) InsertCustomers(ctx context.Context, rows []partner.Customer) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertUnits(ctx context.Context, rows []realty.Unit) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertPartners(ctx context.Context, rows []partner.Partner) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertSafes(ctx context.Context, rows []treasury.Safe) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertBrokers(ctx context.Context, rows []brokerage.Broker) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertPartnerGroups(ctx context.Context, rows []partner.PartnerGroup) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertSettings(ctx context.Context, rows []settings.Setting) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertKeyVals(ctx context.Context, rows []settings.KeyVal) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertContracts(ctx context.Context, rows []realty.Contract) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertInstallments(ctx context.Context, rows []realty.Installment) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertUnitPartners(ctx context.Context, rows []partner.UnitPartner) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertPartnerDebts(ctx context.Context, rows []partner.PartnerDebt) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertBrokerDues(ctx context.Context, rows []brokerage.BrokerDue) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertVouchers(ctx context.Context, rows []treasury.Voucher) error {
	return insertRows(ctx, s.tx, rows)
}

func (s *gormRestoreStore) InsertTransfers(ctx context.Context, rows []treasury.Transfer) error {
	return insertRows(ctx, s.tx, rows)
}

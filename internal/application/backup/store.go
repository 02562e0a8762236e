package backup

import (
	"context"

	"github.com/propledger/backend/internal/domain/brokerage"
	"github.com/propledger/backend/internal/domain/partner"
	"github.com/propledger/backend/internal/domain/realty"
	"github.com/propledger/backend/internal/domain/settings"
	"github.com/propledger/backend/internal/domain/treasury"
)

// Repositories bundles one repository per collection. Snapshot reads and
// statistics counts go through these; nothing here mutates.
type Repositories struct {
	Customers     partner.CustomerRepository
	Units         realty.UnitRepository
	Partners      partner.PartnerRepository
	UnitPartners  partner.UnitPartnerRepository
	Contracts     realty.ContractRepository
	Installments  realty.InstallmentRepository
	PartnerDebts  partner.PartnerDebtRepository
	Safes         treasury.SafeRepository
	Transfers     treasury.TransferRepository
	Vouchers      treasury.VoucherRepository
	Brokers       brokerage.BrokerRepository
	BrokerDues    brokerage.BrokerDueRepository
	PartnerGroups partner.PartnerGroupRepository
	Settings      settings.SettingRepository
	KeyVals       settings.KeyValRepository
}

// TransactionScope executes a function within one store transaction. If the
// function returns an error the transaction rolls back; no partial restore
// state is ever observable.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(store RestoreStore) error) error
}

// RestoreStore is the transactional write surface of a restore: one bulk
// soft-delete sweep, one hard clear of the key-value tables, and verbatim
// bulk inserts per collection. All methods operate inside the transaction
// the store was created for.
type RestoreStore interface {
	// SoftDeleteAllLive marks every currently-live row in all soft-deletable
	// collections as deleted, one bulk update per collection.
	SoftDeleteAllLive(ctx context.Context) error
	// ClearKeyValueTables hard-deletes all settings and keyval rows. These
	// two tables have no soft-delete lifecycle.
	ClearKeyValueTables(ctx context.Context) error

	InsertCustomers(ctx context.Context, rows []partner.Customer) error
	InsertUnits(ctx context.Context, rows []realty.Unit) error
	InsertPartners(ctx context.Context, rows []partner.Partner) error
	InsertSafes(ctx context.Context, rows []treasury.Safe) error
	InsertBrokers(ctx context.Context, rows []brokerage.Broker) error
	InsertPartnerGroups(ctx context.Context, rows []partner.PartnerGroup) error
	InsertSettings(ctx context.Context, rows []settings.Setting) error
	InsertKeyVals(ctx context.Context, rows []settings.KeyVal) error
	InsertContracts(ctx context.Context, rows []realty.Contract) error
	InsertInstallments(ctx context.Context, rows []realty.Installment) error
	InsertUnitPartners(ctx context.Context, rows []partner.UnitPartner) error
	InsertPartnerDebts(ctx context.Context, rows []partner.PartnerDebt) error
	InsertBrokerDues(ctx context.Context, rows []brokerage.BrokerDue) error
	InsertVouchers(ctx context.Context, rows []treasury.Voucher) error
	InsertTransfers(ctx context.Context, rows []treasury.Transfer) error
}

// Notifier is the fire-and-forget notification sink. Failures are logged and
// swallowed by callers; they never fail the primary operation.
type Notifier interface {
	Notify(ctx context.Context, title, message, category string, data map[string]any) error
}

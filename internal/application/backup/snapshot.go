package backup

import (
	"time"

	"github.com/propledger/backend/internal/domain/brokerage"
	"github.com/propledger/backend/internal/domain/partner"
	"github.com/propledger/backend/internal/domain/realty"
	"github.com/propledger/backend/internal/domain/settings"
	"github.com/propledger/backend/internal/domain/treasury"
)

// SnapshotVersion is the payload format version stamped into every export.
const SnapshotVersion = "1.0.0"

// Collection names as they appear in the snapshot payload and in statistics.
const (
	CollectionCustomers     = "customers"
	CollectionUnits         = "units"
	CollectionPartners      = "partners"
	CollectionUnitPartners  = "unitPartners"
	CollectionContracts     = "contracts"
	CollectionInstallments  = "installments"
	CollectionPartnerDebts  = "partnerDebts"
	CollectionSafes         = "safes"
	CollectionTransfers     = "transfers"
	CollectionVouchers      = "vouchers"
	CollectionBrokers       = "brokers"
	CollectionBrokerDues    = "brokerDues"
	CollectionPartnerGroups = "partnerGroups"
	CollectionSettings      = "settings"
	CollectionKeyVal        = "keyval"
)

// CollectionNames lists every collection in the payload, in the dependency
// order used for restore insertion: root entities first, then first-order
// dependents, then second-order dependents. The order is a fixed property of
// the schema, not derived at runtime.
var CollectionNames = []string{
	CollectionCustomers,
	CollectionUnits,
	CollectionPartners,
	CollectionSafes,
	CollectionBrokers,
	CollectionPartnerGroups,
	CollectionSettings,
	CollectionKeyVal,
	CollectionContracts,
	CollectionInstallments,
	CollectionUnitPartners,
	CollectionPartnerDebts,
	CollectionBrokerDues,
	CollectionVouchers,
	CollectionTransfers,
}

// Metadata describes a snapshot payload
type Metadata struct {
	Version      string `json:"version"`
	CreatedAt    string `json:"createdAt"`
	TotalRecords int    `json:"totalRecords"`
}

// Snapshot is the versioned whole-store export: every live row of every
// collection plus metadata. It is the persisted/transmitted backup format.
type Snapshot struct {
	Customers     []partner.Customer     `json:"customers"`
	Units         []realty.Unit          `json:"units"`
	Partners      []partner.Partner      `json:"partners"`
	UnitPartners  []partner.UnitPartner  `json:"unitPartners"`
	Contracts     []realty.Contract      `json:"contracts"`
	Installments  []realty.Installment   `json:"installments"`
	PartnerDebts  []partner.PartnerDebt  `json:"partnerDebts"`
	Safes         []treasury.Safe        `json:"safes"`
	Transfers     []treasury.Transfer    `json:"transfers"`
	Vouchers      []treasury.Voucher     `json:"vouchers"`
	Brokers       []brokerage.Broker     `json:"brokers"`
	BrokerDues    []brokerage.BrokerDue  `json:"brokerDues"`
	PartnerGroups []partner.PartnerGroup `json:"partnerGroups"`
	Settings      []settings.Setting     `json:"settings"`
	KeyVals       []settings.KeyVal      `json:"keyval"`
	Metadata      Metadata               `json:"metadata"`
}

// NewEmptySnapshot builds a snapshot whose collections are all empty but
// non-nil, so it serializes with every collection as a JSON array.
func NewEmptySnapshot() *Snapshot {
	return &Snapshot{
		Customers:     make([]partner.Customer, 0),
		Units:         make([]realty.Unit, 0),
		Partners:      make([]partner.Partner, 0),
		UnitPartners:  make([]partner.UnitPartner, 0),
		Contracts:     make([]realty.Contract, 0),
		Installments:  make([]realty.Installment, 0),
		PartnerDebts:  make([]partner.PartnerDebt, 0),
		Safes:         make([]treasury.Safe, 0),
		Transfers:     make([]treasury.Transfer, 0),
		Vouchers:      make([]treasury.Voucher, 0),
		Brokers:       make([]brokerage.Broker, 0),
		BrokerDues:    make([]brokerage.BrokerDue, 0),
		PartnerGroups: make([]partner.PartnerGroup, 0),
		Settings:      make([]settings.Setting, 0),
		KeyVals:       make([]settings.KeyVal, 0),
	}
}

// TotalRecords sums the row counts of all collections
func (s *Snapshot) TotalRecords() int {
	return len(s.Customers) + len(s.Units) + len(s.Partners) + len(s.UnitPartners) +
		len(s.Contracts) + len(s.Installments) + len(s.PartnerDebts) + len(s.Safes) +
		len(s.Transfers) + len(s.Vouchers) + len(s.Brokers) + len(s.BrokerDues) +
		len(s.PartnerGroups) + len(s.Settings) + len(s.KeyVals)
}

// Statistics reports per-collection live counts and the last backup time
type Statistics struct {
	TotalRecords   int64            `json:"totalRecords"`
	TableCounts    map[string]int64 `json:"tableCounts"`
	LastBackupDate *time.Time       `json:"lastBackupDate,omitempty"`
}

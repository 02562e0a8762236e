package shared

// EntityType tags one of the record collections managed by the lifecycle
// subsystem. The set is closed: dispatching on an EntityType is exhaustive
// over the constants below, and ParseEntityType rejects anything else.
type EntityType string

const (
	EntityCustomer     EntityType = "customer"
	EntityUnit         EntityType = "unit"
	EntityPartner      EntityType = "partner"
	EntityPartnerGroup EntityType = "partnerGroup"
	EntityUnitPartner  EntityType = "unitPartner"
	EntityContract     EntityType = "contract"
	EntityInstallment  EntityType = "installment"
	EntityPartnerDebt  EntityType = "partnerDebt"
	EntitySafe         EntityType = "safe"
	EntityVoucher      EntityType = "voucher"
	EntityTransfer     EntityType = "transfer"
	EntityBroker       EntityType = "broker"
	EntityBrokerDue    EntityType = "brokerDue"
)

// SoftDeletableTypes lists every entity type carrying the soft-delete
// lifecycle, in dependency order: roots first, then first-order dependents,
// then second-order dependents. Restore insertion follows this order so that
// foreign keys are always satisfied. Settings and KeyVal are excluded; they
// are plain key-value tables without a lifecycle.
var SoftDeletableTypes = []EntityType{
	EntityCustomer,
	EntityUnit,
	EntityPartner,
	EntitySafe,
	EntityBroker,
	EntityPartnerGroup,
	EntityContract,
	EntityInstallment,
	EntityUnitPartner,
	EntityPartnerDebt,
	EntityBrokerDue,
	EntityVoucher,
	EntityTransfer,
}

// ParseEntityType converts a string tag to an EntityType
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	for _, known := range SoftDeletableTypes {
		if t == known {
			return t, nil
		}
	}
	return "", NewDomainError("UNKNOWN_ENTITY_TYPE", "Unknown entity type: "+s)
}

// String returns the string tag
func (t EntityType) String() string {
	return string(t)
}

package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/brokerage"
	"github.com/propledger/backend/internal/domain/partner"
	"github.com/propledger/backend/internal/domain/realty"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/domain/treasury"
	"go.uber.org/zap"
)

// DeleteVerdict is the guard's answer to "may this entity be deleted?".
// A denial always carries a reason naming the blocking dependency.
type DeleteVerdict struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() DeleteVerdict {
	return DeleteVerdict{Allowed: true}
}

func deny(reason string) DeleteVerdict {
	return DeleteVerdict{Allowed: false, Reason: reason}
}

// GuardRepositories bundles the repositories the guard queries for dependent
// records. Each field covers one dependency edge of the entity graph.
type GuardRepositories struct {
	Safes        treasury.SafeRepository
	Vouchers     treasury.VoucherRepository
	Transfers    treasury.TransferRepository
	Contracts    realty.ContractRepository
	Installments realty.InstallmentRepository
	UnitPartners partner.UnitPartnerRepository
	PartnerDebts partner.PartnerDebtRepository
	BrokerDues   brokerage.BrokerDueRepository
}

type guardRule func(ctx context.Context, id uuid.UUID) (DeleteVerdict, error)

// Guard decides whether an entity may be soft-deleted without orphaning
// dependents. The store cannot validate this itself: deletion is a flag
// mutation, not a physical removal, so no foreign-key constraint ever fires.
//
// Entity types without a registered rule are allowed by default. That is an
// intentional open policy for types nothing depends on, not a missing check.
// Store failures fail closed: the guard never approves a deletion it could
// not verify.
type Guard struct {
	repos  GuardRepositories
	rules  map[shared.EntityType]guardRule
	logger *zap.Logger
}

// NewGuard creates a Guard with the full rule table registered.
func NewGuard(repos GuardRepositories, logger *zap.Logger) *Guard {
	g := &Guard{
		repos:  repos,
		logger: logger,
	}
	g.rules = map[shared.EntityType]guardRule{
		shared.EntityCustomer: g.canDeleteCustomer,
		shared.EntityUnit:     g.canDeleteUnit,
		shared.EntityContract: g.canDeleteContract,
		shared.EntitySafe:     g.canDeleteSafe,
		shared.EntityPartner:  g.canDeletePartner,
		shared.EntityBroker:   g.canDeleteBroker,
	}
	return g
}

// CanDelete returns the deletion verdict for the given entity.
func (g *Guard) CanDelete(ctx context.Context, entityType shared.EntityType, id uuid.UUID) DeleteVerdict {
	rule, ok := g.rules[entityType]
	if !ok {
		// Default-allow branch for types with no dependents.
		g.logger.Debug("no deletion rule registered, allowing",
			zap.String("entity_type", entityType.String()),
			zap.String("id", id.String()),
		)
		return allow()
	}

	verdict, err := rule(ctx, id)
	if err != nil {
		g.logger.Error("deletion check failed, denying",
			zap.String("entity_type", entityType.String()),
			zap.String("id", id.String()),
			zap.Error(err),
		)
		return deny("Could not verify dependent records; deletion denied")
	}
	return verdict
}

func (g *Guard) canDeleteCustomer(ctx context.Context, id uuid.UUID) (DeleteVerdict, error) {
	count, err := g.repos.Contracts.CountLiveByCustomer(ctx, id)
	if err != nil {
		return DeleteVerdict{}, err
	}
	if count > 0 {
		return deny(fmt.Sprintf("Customer has %d active contract(s); delete them first", count)), nil
	}
	return allow(), nil
}

func (g *Guard) canDeleteUnit(ctx context.Context, id uuid.UUID) (DeleteVerdict, error) {
	count, err := g.repos.Contracts.CountLiveByUnit(ctx, id)
	if err != nil {
		return DeleteVerdict{}, err
	}
	if count > 0 {
		return deny(fmt.Sprintf("Unit is referenced by %d active contract(s); delete them first", count)), nil
	}
	return allow(), nil
}

func (g *Guard) canDeleteContract(ctx context.Context, id uuid.UUID) (DeleteVerdict, error) {
	contract, err := g.repos.Contracts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Nothing to protect; the delete path reports the missing row.
			return allow(), nil
		}
		return DeleteVerdict{}, err
	}

	paid, err := g.repos.Installments.CountLivePaidByUnit(ctx, contract.UnitID)
	if err != nil {
		return DeleteVerdict{}, err
	}
	if paid > 0 {
		return deny(fmt.Sprintf("Contract has %d paid installment(s) and cannot be deleted", paid)), nil
	}
	return allow(), nil
}

func (g *Guard) canDeleteSafe(ctx context.Context, id uuid.UUID) (DeleteVerdict, error) {
	safe, err := g.repos.Safes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return allow(), nil
		}
		return DeleteVerdict{}, err
	}
	if !safe.Balance.IsZero() {
		return deny(fmt.Sprintf("Safe balance is %s; the balance must be zero before deletion", safe.Balance.String())), nil
	}

	vouchers, err := g.repos.Vouchers.CountLiveBySafe(ctx, id)
	if err != nil {
		return DeleteVerdict{}, err
	}
	if vouchers > 0 {
		return deny(fmt.Sprintf("Safe has %d active voucher(s); delete them first", vouchers)), nil
	}

	outbound, err := g.repos.Transfers.CountLiveBySource(ctx, id)
	if err != nil {
		return DeleteVerdict{}, err
	}
	inbound, err := g.repos.Transfers.CountLiveByDestination(ctx, id)
	if err != nil {
		return DeleteVerdict{}, err
	}
	if outbound+inbound > 0 {
		return deny(fmt.Sprintf("Safe is referenced by %d active transfer(s); delete them first", outbound+inbound)), nil
	}
	return allow(), nil
}

func (g *Guard) canDeletePartner(ctx context.Context, id uuid.UUID) (DeleteVerdict, error) {
	shares, err := g.repos.UnitPartners.CountLiveByPartner(ctx, id)
	if err != nil {
		return DeleteVerdict{}, err
	}
	if shares > 0 {
		return deny(fmt.Sprintf("Partner still holds shares in %d unit(s); remove the unit-partner links first", shares)), nil
	}

	debts, err := g.repos.PartnerDebts.CountLiveByPartner(ctx, id)
	if err != nil {
		return DeleteVerdict{}, err
	}
	if debts > 0 {
		return deny(fmt.Sprintf("Partner has %d outstanding debt(s); settle them first", debts)), nil
	}
	return allow(), nil
}

func (g *Guard) canDeleteBroker(ctx context.Context, id uuid.UUID) (DeleteVerdict, error) {
	dues, err := g.repos.BrokerDues.CountLiveByBroker(ctx, id)
	if err != nil {
		return DeleteVerdict{}, err
	}
	if dues > 0 {
		return deny(fmt.Sprintf("Broker has %d unpaid due(s); settle them first", dues)), nil
	}
	return allow(), nil
}

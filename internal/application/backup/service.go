package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/propledger/backend/internal/domain/settings"
	"github.com/propledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const defaultRestoreTimeout = 5 * time.Minute

// ArchiveStore persists snapshot archives to object storage.
type ArchiveStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// Service implements snapshot export, transactional restore and store
// statistics over the injected per-collection repositories.
type Service struct {
	repos          Repositories
	scope          TransactionScope
	notifier       Notifier
	archive        ArchiveStore
	logger         *zap.Logger
	restoreTimeout time.Duration
}

// Option is a functional option for configuring the Service
type Option func(*Service)

// WithRestoreTimeout overrides the restore transaction timeout
func WithRestoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.restoreTimeout = d
		}
	}
}

// WithArchive enables best-effort upload of snapshot archives to object
// storage after each export
func WithArchive(store ArchiveStore) Option {
	return func(s *Service) {
		s.archive = store
	}
}

// NewService creates a new backup Service
func NewService(repos Repositories, scope TransactionScope, notifier Notifier, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repos:          repos,
		scope:          scope,
		notifier:       notifier,
		logger:         logger,
		restoreTimeout: defaultRestoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSnapshot reads every live row of every collection and packages the
// result into a versioned payload.
//
// The reads run concurrently and are NOT wrapped in a single read
// transaction: a writer racing the export can produce a view in which
// individual collections reflect different moments. Callers get a
// best-effort point-in-time snapshot, not a linearizable one. A failed read
// aborts the whole export; a partial snapshot is never returned.
func (s *Service) CreateSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	read := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				fail(err)
			}
		}()
	}

	read(func() (err error) { snap.Customers, err = s.repos.Customers.FindAllLive(ctx); return wrapRead(CollectionCustomers, err) })
	read(func() (err error) { snap.Units, err = s.repos.Units.FindAllLive(ctx); return wrapRead(CollectionUnits, err) })
	read(func() (err error) { snap.Partners, err = s.repos.Partners.FindAllLive(ctx); return wrapRead(CollectionPartners, err) })
	read(func() (err error) {
		snap.UnitPartners, err = s.repos.UnitPartners.FindAllLive(ctx)
		return wrapRead(CollectionUnitPartners, err)
	})
	read(func() (err error) { snap.Contracts, err = s.repos.Contracts.FindAllLive(ctx); return wrapRead(CollectionContracts, err) })
	read(func() (err error) {
		snap.Installments, err = s.repos.Installments.FindAllLive(ctx)
		return wrapRead(CollectionInstallments, err)
	})
	read(func() (err error) {
		snap.PartnerDebts, err = s.repos.PartnerDebts.FindAllLive(ctx)
		return wrapRead(CollectionPartnerDebts, err)
	})
	read(func() (err error) { snap.Safes, err = s.repos.Safes.FindAllLive(ctx); return wrapRead(CollectionSafes, err) })
	read(func() (err error) { snap.Transfers, err = s.repos.Transfers.FindAllLive(ctx); return wrapRead(CollectionTransfers, err) })
	read(func() (err error) { snap.Vouchers, err = s.repos.Vouchers.FindAllLive(ctx); return wrapRead(CollectionVouchers, err) })
	read(func() (err error) { snap.Brokers, err = s.repos.Brokers.FindAllLive(ctx); return wrapRead(CollectionBrokers, err) })
	read(func() (err error) { snap.BrokerDues, err = s.repos.BrokerDues.FindAllLive(ctx); return wrapRead(CollectionBrokerDues, err) })
	read(func() (err error) {
		snap.PartnerGroups, err = s.repos.PartnerGroups.FindAllLive(ctx)
		return wrapRead(CollectionPartnerGroups, err)
	})
	read(func() (err error) { snap.Settings, err = s.repos.Settings.FindAll(ctx); return wrapRead(CollectionSettings, err) })
	read(func() (err error) { snap.KeyVals, err = s.repos.KeyVals.FindAll(ctx); return wrapRead(CollectionKeyVal, err) })

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	snap.Metadata = Metadata{
		Version:      SnapshotVersion,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		TotalRecords: snap.TotalRecords(),
	}

	s.recordBackupDate(ctx, snap.Metadata.CreatedAt)
	s.uploadArchive(ctx, snap)
	s.notify(ctx, "Backup created",
		fmt.Sprintf("Backup created with %d records", snap.Metadata.TotalRecords),
		map[string]any{"totalRecords": snap.Metadata.TotalRecords})

	return snap, nil
}

// Restore atomically replaces the current live state with the payload's
// rows. Inside one transaction it (1) soft-deletes every currently-live row,
// (2) hard-clears the settings and keyval tables, then (3) bulk-inserts each
// non-empty payload collection verbatim, in dependency order.
//
// On any failure the transaction rolls back completely, so a restore is
// always safe to retry with the same payload. A timeout surfaces as
// shared.ErrRestoreTimeout; other store failures as shared.ErrTransactionFailed.
// The payload must have passed ValidateSnapshot first.
func (s *Service) Restore(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return shared.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.restoreTimeout)
	defer cancel()

	start := time.Now()
	err := s.scope.Execute(ctx, func(store RestoreStore) error {
		if err := store.SoftDeleteAllLive(ctx); err != nil {
			return fmt.Errorf("soft-delete sweep: %w", err)
		}
		if err := store.ClearKeyValueTables(ctx); err != nil {
			return fmt.Errorf("clearing key-value tables: %w", err)
		}
		return s.insertAll(ctx, store, snap)
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", shared.ErrRestoreTimeout, err)
		}
		return fmt.Errorf("%w: %v", shared.ErrTransactionFailed, err)
	}

	s.logger.Info("store restored from snapshot",
		zap.Int("total_records", snap.TotalRecords()),
		zap.String("snapshot_version", snap.Metadata.Version),
		zap.Duration("took", time.Since(start)),
	)
	s.notify(ctx, "Backup restored",
		fmt.Sprintf("Backup restored with %d records", snap.TotalRecords()),
		map[string]any{"totalRecords": snap.TotalRecords()})
	return nil
}

// insertAll bulk-inserts the payload collections in dependency order:
// roots, then first-order dependents, then transfers. The transaction does
// not provide this ordering; the fixed sequence below does.
func (s *Service) insertAll(ctx context.Context, store RestoreStore, snap *Snapshot) error {
	steps := []struct {
		name   string
		count  int
		insert func() error
	}{
		{CollectionCustomers, len(snap.Customers), func() error { return store.InsertCustomers(ctx, snap.Customers) }},
		{CollectionUnits, len(snap.Units), func() error { return store.InsertUnits(ctx, snap.Units) }},
		{CollectionPartners, len(snap.Partners), func() error { return store.InsertPartners(ctx, snap.Partners) }},
		{CollectionSafes, len(snap.Safes), func() error { return store.InsertSafes(ctx, snap.Safes) }},
		{CollectionBrokers, len(snap.Brokers), func() error { return store.InsertBrokers(ctx, snap.Brokers) }},
		{CollectionPartnerGroups, len(snap.PartnerGroups), func() error { return store.InsertPartnerGroups(ctx, snap.PartnerGroups) }},
		{CollectionSettings, len(snap.Settings), func() error { return store.InsertSettings(ctx, snap.Settings) }},
		{CollectionKeyVal, len(snap.KeyVals), func() error { return store.InsertKeyVals(ctx, snap.KeyVals) }},
		{CollectionContracts, len(snap.Contracts), func() error { return store.InsertContracts(ctx, snap.Contracts) }},
		{CollectionInstallments, len(snap.Installments), func() error { return store.InsertInstallments(ctx, snap.Installments) }},
		{CollectionUnitPartners, len(snap.UnitPartners), func() error { return store.InsertUnitPartners(ctx, snap.UnitPartners) }},
		{CollectionPartnerDebts, len(snap.PartnerDebts), func() error { return store.InsertPartnerDebts(ctx, snap.PartnerDebts) }},
		{CollectionBrokerDues, len(snap.BrokerDues), func() error { return store.InsertBrokerDues(ctx, snap.BrokerDues) }},
		{CollectionVouchers, len(snap.Vouchers), func() error { return store.InsertVouchers(ctx, snap.Vouchers) }},
		{CollectionTransfers, len(snap.Transfers), func() error { return store.InsertTransfers(ctx, snap.Transfers) }},
	}

	for _, step := range steps {
		if step.count == 0 {
			continue
		}
		if err := step.insert(); err != nil {
			return fmt.Errorf("inserting %s: %w", step.name, err)
		}
	}
	return nil
}

// GetStatistics reports per-collection live counts, their sum and the last
// known backup timestamp. Pure read; safe to call frequently.
func (s *Service) GetStatistics(ctx context.Context) (*Statistics, error) {
	counters := []struct {
		name  string
		count func(context.Context) (int64, error)
	}{
		{CollectionCustomers, s.repos.Customers.CountLive},
		{CollectionUnits, s.repos.Units.CountLive},
		{CollectionPartners, s.repos.Partners.CountLive},
		{CollectionUnitPartners, s.repos.UnitPartners.CountLive},
		{CollectionContracts, s.repos.Contracts.CountLive},
		{CollectionInstallments, s.repos.Installments.CountLive},
		{CollectionPartnerDebts, s.repos.PartnerDebts.CountLive},
		{CollectionSafes, s.repos.Safes.CountLive},
		{CollectionTransfers, s.repos.Transfers.CountLive},
		{CollectionVouchers, s.repos.Vouchers.CountLive},
		{CollectionBrokers, s.repos.Brokers.CountLive},
		{CollectionBrokerDues, s.repos.BrokerDues.CountLive},
		{CollectionPartnerGroups, s.repos.PartnerGroups.CountLive},
		{CollectionSettings, s.repos.Settings.Count},
		{CollectionKeyVal, s.repos.KeyVals.Count},
	}

	stats := &Statistics{TableCounts: make(map[string]int64, len(counters))}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, counter := range counters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, err := counter.count(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = wrapRead(counter.name, err)
				}
				return
			}
			stats.TableCounts[counter.name] = count
			stats.TotalRecords += count
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	if raw, err := s.repos.Settings.Get(ctx, settings.LastBackupDateKey); err == nil {
		if at, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
			stats.LastBackupDate = &at
		}
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("reading last backup date: %w", err)
	}

	return stats, nil
}

// recordBackupDate stores the export timestamp in settings, best effort.
func (s *Service) recordBackupDate(ctx context.Context, createdAt string) {
	if err := s.repos.Settings.Set(ctx, settings.LastBackupDateKey, createdAt); err != nil {
		s.logger.Warn("failed to record last backup date", zap.Error(err))
	}
}

// uploadArchive ships the snapshot JSON to object storage, best effort.
func (s *Service) uploadArchive(ctx context.Context, snap *Snapshot) {
	if s.archive == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("failed to encode snapshot archive", zap.Error(err))
		return
	}
	key := fmt.Sprintf("snapshots/%s.json", time.Now().UTC().Format("20060102T150405Z"))
	if err := s.archive.Upload(ctx, key, data, "application/json"); err != nil {
		s.logger.Warn("failed to upload snapshot archive",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// notify emits a best-effort notification; failures are logged and swallowed.
func (s *Service) notify(ctx context.Context, title, message string, data map[string]any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, title, message, "backup", data); err != nil {
		s.logger.Warn("notification failed",
			zap.String("title", title),
			zap.Error(err),
		)
	}
}

func wrapRead(collection string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("reading %s: %w", collection, err)
}

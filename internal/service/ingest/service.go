package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes raised while waiting on the employee lock.
const (
	pgLockNotAvailable     = "55P03"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
)

type IngestServiceImpl struct {
	db *database.DB
	scanevent.ScanEventRepository
	employee.EmployeeRepository
	metrics     *metrics.Metrics
	lockTimeout time.Duration
	now         func() time.Time
	inTx        func(ctx context.Context, fn func(txCtx context.Context) error) error
}

// Submit implements scanevent.IngestService.
func (s *IngestServiceImpl) Submit(ctx context.Context, req scanevent.SubmitScanRequest) (scanevent.IngestResult, error) {
	started := time.Now()

	if err := req.Validate(); err != nil {
		return scanevent.IngestResult{}, err
	}

	gate, err := client.FromContext(ctx)
	if err != nil {
		return scanevent.IngestResult{}, err
	}

	direction := scanevent.Direction(req.Direction)

	var (
		now      time.Time
		decision Decision
		inserted []scanevent.ScanEvent
	)

	err = s.inTx(ctx, func(txCtx context.Context) error {
		if err := s.EmployeeRepository.LockForScan(txCtx, req.EmployeeID, gate.Client.ID); err != nil {
			return err
		}

		last, err := s.ScanEventRepository.GetLatest(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		// The clock is read under the lock so a scan that waited never
		// lands before the row written by the one holding it.
		now = s.now().UTC().Truncate(time.Microsecond)

		decision = Decide(last, direction, now)

		for _, row := range decision.Rows {
			row.ClientID = gate.Client.ID
			row.EmployeeID = req.EmployeeID
			row.UserAgent = req.UserAgent
			row.IPAddress = req.IPAddress
			if gate.ScanTag.ID != "" {
				scanTagID := gate.ScanTag.ID
				row.ScanTagID = &scanTagID
			}

			created, err := s.ScanEventRepository.Create(txCtx, row)
			if err != nil {
				return err
			}
			inserted = append(inserted, created)
		}

		return nil
	})
	if err != nil {
		err = classifyStorageError(err)
		outcome := metrics.OutcomeError
		if errors.Is(err, scanevent.ErrConcurrentScan) {
			outcome = metrics.OutcomeConflict
			slog.Warn("Scan lock contention", "employee_id", req.EmployeeID, "direction", direction)
		} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Error("Failed to ingest scan", "employee_id", req.EmployeeID, "direction", direction, "error", err)
		}
		s.metrics.ObserveIngest(outcome, string(direction), time.Since(started))
		return scanevent.IngestResult{}, err
	}

	result := scanevent.IngestResult{
		StatusBefore: decision.StatusBefore,
		StatusAfter:  decision.StatusAfter(),
		ServerTime:   now.Format(time.RFC3339Nano),
	}

	switch decision.Outcome {
	case OutcomeIgnore:
		reason := decision.Reason
		cooldown := int(DoubleTapWindow / time.Second)
		result.Ignored = true
		result.Reason = &reason
		result.CooldownSeconds = &cooldown
		s.metrics.ObserveIngest(metrics.OutcomeIgnored, string(direction), time.Since(started))
		return result, nil

	case OutcomeCooldown:
		s.metrics.ObserveIngest(metrics.OutcomeCooldown, string(direction), time.Since(started))
		return scanevent.IngestResult{}, &scanevent.CooldownError{
			RetryAfterSeconds: decision.RetryAfterSeconds,
			StatusBefore:      decision.StatusBefore,
		}
	}

	if len(inserted) == 0 {
		s.metrics.ObserveIngest(metrics.OutcomeError, string(direction), time.Since(started))
		return scanevent.IngestResult{}, scanevent.ErrUnexpectedState
	}

	result.Accepted = true
	if decision.Warning != "" {
		warning := decision.Warning
		result.Warning = &warning
	}

	event := scanevent.NewEventResponse(inserted[len(inserted)-1])
	result.Event = &event
	for _, extra := range inserted[:len(inserted)-1] {
		result.ExtraEvents = append(result.ExtraEvents, scanevent.NewEventResponse(extra))
	}

	for _, ev := range inserted {
		if ev.AnomalyCode != nil {
			s.metrics.ObserveAnomaly(string(*ev.AnomalyCode))
		}
	}
	s.metrics.ObserveIngest(metrics.OutcomeAccepted, string(direction), time.Since(started))

	if result.Warning != nil {
		slog.Info("Scan recorded with anomaly",
			"employee_id", req.EmployeeID,
			"direction", direction,
			"warning", *result.Warning,
			"rows", len(inserted),
		)
	}

	return result, nil
}

// History implements scanevent.IngestService.
func (s *IngestServiceImpl) History(ctx context.Context, filter scanevent.HistoryFilter) (scanevent.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return scanevent.HistoryResponse{}, err
	}

	gate, err := client.FromContext(ctx)
	if err != nil {
		return scanevent.HistoryResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, filter.EmployeeID, gate.Client.ID); err != nil {
		return scanevent.HistoryResponse{}, err
	}

	events, err := s.ScanEventRepository.ListRecent(ctx, gate.Client.ID, filter.EmployeeID, filter.Limit)
	if err != nil {
		return scanevent.HistoryResponse{}, err
	}

	resp := scanevent.HistoryResponse{
		EmployeeID:    filter.EmployeeID,
		CurrentStatus: scanevent.StatusUnknown,
		Events:        make([]scanevent.EventResponse, 0, len(events)),
	}
	if len(events) > 0 {
		resp.CurrentStatus = scanevent.DeriveStatus(&events[0])
	}
	for _, ev := range events {
		resp.Events = append(resp.Events, scanevent.NewEventResponse(ev))
	}

	return resp, nil
}

// lockedTransaction runs fn in a transaction whose lock waits are bounded by
// the configured lock timeout.
func (s *IngestServiceImpl) lockedTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		if _, err := tx.Exec(txCtx, "SELECT set_config('lock_timeout', $1, true)", lockTimeoutSetting(s.lockTimeout)); err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}

		return fn(txCtx)
	})
}

// classifyStorageError turns lock wait failures into ErrConcurrentScan so
// callers know the whole submission can be retried.
func classifyStorageError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected, pgSerializationFailure:
			return fmt.Errorf("%w: %s", scanevent.ErrConcurrentScan, pgErr.Code)
		}
	}
	return err
}

func lockTimeoutSetting(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	return fmt.Sprintf("%dms", ms)
}

type Option func(*IngestServiceImpl)

// WithClock overrides the server clock used as scanned_at.
func WithClock(now func() time.Time) Option {
	return func(s *IngestServiceImpl) {
		s.now = now
	}
}

func NewIngestService(
	db *database.DB,
	scanEventRepo scanevent.ScanEventRepository,
	employeeRepo employee.EmployeeRepository,
	m *metrics.Metrics,
	lockTimeout time.Duration,
	opts ...Option,
) scanevent.IngestService {
	s := &IngestServiceImpl{
		db:                  db,
		ScanEventRepository: scanEventRepo,
		EmployeeRepository:  employeeRepo,
		metrics:             m,
		lockTimeout:         lockTimeout,
		now:                 time.Now,
	}
	s.inTx = s.lockedTransaction
	for _, opt := range opts {
		opt(s)
	}
	return s
}

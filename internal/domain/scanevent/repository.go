package scanevent

import (
	"context"
	"time"
)

// ScanEventRepository is the append-only event log. There is deliberately no
// Update or Delete.
type ScanEventRepository interface {
	// GetLatest returns the newest event of an employee in total order, or
	// nil when the employee has never scanned. Inside an ingestion
	// transaction the caller must already hold the employee lock.
	GetLatest(ctx context.Context, employeeID string) (*ScanEvent, error)

	Create(ctx context.Context, event ScanEvent) (ScanEvent, error)

	// ListRecent returns up to limit events newest first.
	ListRecent(ctx context.Context, clientID string, employeeID string, limit int) ([]ScanEvent, error)

	// ListRange returns events with from <= scanned_at < to, ordered by
	// employee and then total order. employeeID narrows to one employee.
	ListRange(ctx context.Context, clientID string, employeeID *string, from, to time.Time) ([]ScanEvent, error)

	// LatestByClient returns the newest event of every employee of the
	// client that has scanned at least once, keyed by employee id.
	LatestByClient(ctx context.Context, clientID string) (map[string]ScanEvent, error)
}

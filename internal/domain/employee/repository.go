package employee

import "context"

// EmployeeRepository is the employee directory. Every lookup is scoped to
// the owning client.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, clientID string) (Employee, error)

	// LockForScan takes the per-employee row lock that serialises scan
	// ingestion. Must run inside a transaction; the lock is held until the
	// transaction ends.
	LockForScan(ctx context.Context, id string, clientID string) error

	ListByClient(ctx context.Context, clientID string) ([]Employee, error)
	UpdateReferenceMinutes(ctx context.Context, id string, clientID string, minutes *int) (Employee, error)
}

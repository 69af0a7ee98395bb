package employee

import "context"

// ReferenceService reads and writes the per-employee reference duration.
type ReferenceService interface {
	GetReference(ctx context.Context, employeeID string) (ReferenceResponse, error)
	UpdateReference(ctx context.Context, req UpdateReferenceRequest) (ReferenceResponse, error)
}

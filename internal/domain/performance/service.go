package performance

import "context"

// PerformanceService is the read-only reporting path: event slice ->
// reconstruction -> overtime.
type PerformanceService interface {
	List(ctx context.Context, filter PerformanceFilter) (ListPerformanceResponse, error)
	Totals(ctx context.Context, filter PerformanceFilter) (ListPeriodTotalResponse, error)
}

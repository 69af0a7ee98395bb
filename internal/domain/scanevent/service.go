package scanevent

import "context"

// IngestService runs the scan ingestion state machine.
type IngestService interface {
	// Submit decides and persists one scan for the employee. A cooldown
	// refusal is returned as *CooldownError.
	Submit(ctx context.Context, req SubmitScanRequest) (IngestResult, error)

	// History returns the most recent events and the derived status.
	History(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)
}

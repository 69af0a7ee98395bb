package performance

import (
	"time"
)

// Attention reason codes. START_ and END_ reasons are built from the
// boundary event's anomaly code.
const (
	ReasonNotMeasurable = "NOT_MEASURABLE"
	ReasonOutWithoutIn  = "OUT_WITHOUT_IN"
	ReasonOpenShift     = "OPEN_SHIFT"
	ReasonInWhileOpen   = "IN_WHILE_OPEN"
	ReasonStartPrefix   = "START_"
	ReasonEndPrefix     = "END_"
)

// Performance is an attendance interval derived from paired scan events. It
// is recomputed on every read and never stored.
type Performance struct {
	EmployeeID   string
	EmployeeName string

	StartedAt    *time.Time
	EndedAt      *time.Time
	StartEventID *string
	EndEventID   *string

	// EffectiveMinutes is set whenever both boundaries exist, regardless of
	// Measurable.
	EffectiveMinutes     *int
	RegistrationComplete bool
	Measurable           bool
	Attention            bool
	AttentionReasons     []string

	ReferenceMinutes  *int
	DifferenceMinutes *int
	OvertimeMinutes   *int
}

// IsOpenShift reports a started interval without an end boundary.
func (p Performance) IsOpenShift() bool {
	return p.StartedAt != nil && p.EndedAt == nil
}

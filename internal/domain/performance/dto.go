package performance

import (
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/validator"
)

// PerformanceFilter selects the half-open date range [From, To).
type PerformanceFilter struct {
	From       string  `json:"from"` // YYYY-MM-DD
	To         string  `json:"to"`   // YYYY-MM-DD, exclusive
	EmployeeID *string `json:"employee_id,omitempty"`

	fromTime time.Time
	toTime   time.Time
}

func (f *PerformanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from is required (YYYY-MM-DD)",
		})
	} else if t, ok := validator.IsValidDate(f.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "from",
			Message: "from must be in YYYY-MM-DD format",
		})
	} else {
		f.fromTime = t
	}

	if validator.IsEmpty(f.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to is required (YYYY-MM-DD)",
		})
	} else if t, ok := validator.IsValidDate(f.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be in YYYY-MM-DD format",
		})
	} else {
		f.toTime = t
	}

	if len(errs) == 0 && !f.fromTime.Before(f.toTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "to must be after from",
		})
	}

	if f.EmployeeID != nil && validator.IsEmpty(*f.EmployeeID) {
		f.EmployeeID = nil
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Range returns the validated bounds as UTC midnights.
func (f *PerformanceFilter) Range() (from, to time.Time) {
	return f.fromTime, f.toTime
}

type PerformanceResponse struct {
	EmployeeID           string   `json:"employee_id"`
	EmployeeName         string   `json:"employee_name"`
	StartedAt            *string  `json:"started_at"`
	EndedAt              *string  `json:"ended_at"`
	StartEventID         *string  `json:"start_event_id"`
	EndEventID           *string  `json:"end_event_id"`
	EffectiveMinutes     *int     `json:"effective_minutes"`
	RegistrationComplete bool     `json:"registration_complete"`
	Measurable           bool     `json:"measurable"`
	IsOpenShift          bool     `json:"is_open_shift"`
	Attention            bool     `json:"attention"`
	AttentionReasons     []string `json:"attention_reasons"`
	ReferenceMinutes     *int     `json:"reference_minutes"`
	DifferenceMinutes    *int     `json:"difference_minutes"`
	OvertimeMinutes      *int     `json:"overtime_minutes"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339Nano)
	return &formatted
}

func NewPerformanceResponse(p Performance) PerformanceResponse {
	reasons := p.AttentionReasons
	if reasons == nil {
		reasons = []string{}
	}
	return PerformanceResponse{
		EmployeeID:           p.EmployeeID,
		EmployeeName:         p.EmployeeName,
		StartedAt:            timePtrToString(p.StartedAt),
		EndedAt:              timePtrToString(p.EndedAt),
		StartEventID:         p.StartEventID,
		EndEventID:           p.EndEventID,
		EffectiveMinutes:     p.EffectiveMinutes,
		RegistrationComplete: p.RegistrationComplete,
		Measurable:           p.Measurable,
		IsOpenShift:          p.IsOpenShift(),
		Attention:            p.Attention,
		AttentionReasons:     reasons,
		ReferenceMinutes:     p.ReferenceMinutes,
		DifferenceMinutes:    p.DifferenceMinutes,
		OvertimeMinutes:      p.OvertimeMinutes,
	}
}

type ListPerformanceResponse struct {
	From         string                `json:"from"`
	To           string                `json:"to"`
	Count        int                   `json:"count"`
	Performances []PerformanceResponse `json:"performances"`
}

// PeriodTotal aggregates one employee's performances over the range.
// Minute sums only include measurable performances.
type PeriodTotal struct {
	EmployeeID        string `json:"employee_id"`
	EmployeeName      string `json:"employee_name"`
	ReferenceMinutes  *int   `json:"reference_minutes"`
	PerformanceCount  int    `json:"performance_count"`
	MeasurableCount   int    `json:"measurable_count"`
	AttentionCount    int    `json:"attention_count"`
	OpenShiftCount    int    `json:"open_shift_count"`
	EffectiveMinutes  int    `json:"effective_minutes"`
	DifferenceMinutes *int   `json:"difference_minutes"`
	OvertimeMinutes   *int   `json:"overtime_minutes"`
}

type ListPeriodTotalResponse struct {
	From   string        `json:"from"`
	To     string        `json:"to"`
	Totals []PeriodTotal `json:"totals"`
}

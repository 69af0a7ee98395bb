package employee

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/validator"
)

const (
	MinReferenceMinutes = 1
	MaxReferenceMinutes = 1440
)

// UpdateReferenceRequest carries an explicit HR input. The raw value is kept
// so that a missing field can be told apart from an explicit null.
type UpdateReferenceRequest struct {
	EmployeeID       string          `json:"-"`
	ReferenceMinutes json.RawMessage `json:"reference_minutes"`

	parsed *int
}

// Minutes returns the validated value. Only meaningful after Validate.
func (r *UpdateReferenceRequest) Minutes() *int {
	return r.parsed
}

func (r *UpdateReferenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	raw := bytes.TrimSpace(r.ReferenceMinutes)
	switch {
	case len(raw) == 0:
		errs = append(errs, validator.ValidationError{
			Field:   "reference_minutes",
			Message: ErrReferenceMinutesMissing.Error(),
		})
	case bytes.Equal(raw, []byte("null")):
		r.parsed = nil
	default:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
			errs = append(errs, validator.ValidationError{
				Field:   "reference_minutes",
				Message: "reference_minutes must be a number or null",
			})
			break
		}
		if n != math.Trunc(n) {
			errs = append(errs, validator.ValidationError{
				Field:   "reference_minutes",
				Message: "reference_minutes must be an integer",
			})
			break
		}
		if n < MinReferenceMinutes || n > MaxReferenceMinutes {
			errs = append(errs, validator.ValidationError{
				Field:   "reference_minutes",
				Message: ErrReferenceMinutesRange.Error(),
			})
			break
		}
		minutes := int(n)
		r.parsed = &minutes
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReferenceResponse struct {
	EmployeeID       string  `json:"employee_id"`
	ReferenceMinutes *int    `json:"reference_minutes"`
	UpdatedAt        *string `json:"updated_at,omitempty"`
}

func NewReferenceResponse(e Employee, withUpdatedAt bool) ReferenceResponse {
	resp := ReferenceResponse{
		EmployeeID:       e.ID,
		ReferenceMinutes: e.ReferenceMinutes,
	}
	if withUpdatedAt {
		updated := e.UpdatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &updated
	}
	return resp
}

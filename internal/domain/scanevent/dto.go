package scanevent

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/validator"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// ========================================
// INGESTION DTOs
// ========================================

type SubmitScanRequest struct {
	EmployeeID string  `json:"-"`
	Direction  string  `json:"direction"`
	UserAgent  *string `json:"-"`
	IPAddress  *string `json:"-"`
}

// Validate normalises Direction to upper case and checks it.
func (r *SubmitScanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	r.Direction = strings.ToUpper(strings.TrimSpace(r.Direction))
	if r.Direction == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: "direction is required",
		})
	} else if !validator.IsInSlice(r.Direction, []string{string(DirectionIn), string(DirectionOut)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "direction",
			Message: ErrInvalidDirection.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IngestResult is the outcome of one submitted scan.
type IngestResult struct {
	Accepted        bool            `json:"accepted"`
	Ignored         bool            `json:"ignored"`
	Reason          *string         `json:"reason,omitempty"`
	CooldownSeconds *int            `json:"cooldown_seconds,omitempty"`
	StatusBefore    PresenceStatus  `json:"status_before"`
	StatusAfter     PresenceStatus  `json:"status_after"`
	Warning         *string         `json:"warning"`
	Event           *EventResponse  `json:"event,omitempty"`
	ExtraEvents     []EventResponse `json:"extra_events,omitempty"`
	ServerTime      string          `json:"server_time"`
}

// CooldownResponse is the body of a refused IN during the cooldown.
type CooldownResponse struct {
	Accepted          bool           `json:"accepted"`
	Ignored           bool           `json:"ignored"`
	Reason            string         `json:"reason"`
	RetryAfterSeconds int            `json:"retry_after_seconds"`
	StatusBefore      PresenceStatus `json:"status_before"`
	StatusAfter       PresenceStatus `json:"status_after"`
}

func NewCooldownResponse(err *CooldownError) CooldownResponse {
	return CooldownResponse{
		Reason:            ReasonCooldownAfterOut,
		RetryAfterSeconds: err.RetryAfterSeconds,
		StatusBefore:      err.StatusBefore,
		StatusAfter:       err.StatusBefore,
	}
}

type EventResponse struct {
	ID               string  `json:"scan_event_id"`
	ClientID         string  `json:"client_id"`
	ScanTagID        *string `json:"scantag_id,omitempty"`
	EmployeeID       string  `json:"employee_id"`
	Direction        string  `json:"direction"`
	ScannedAt        string  `json:"scanned_at"`
	Source           string  `json:"source"`
	AnomalyCode      *string `json:"anomaly_code"`
	MeasurementValid bool    `json:"measurement_valid"`
	IsSystem         bool    `json:"is_system"`
	CreatedAt        string  `json:"created_at"`
}

func NewEventResponse(e ScanEvent) EventResponse {
	var code *string
	if e.AnomalyCode != nil {
		c := string(*e.AnomalyCode)
		code = &c
	}
	return EventResponse{
		ID:               e.ID,
		ClientID:         e.ClientID,
		ScanTagID:        e.ScanTagID,
		EmployeeID:       e.EmployeeID,
		Direction:        string(e.Direction),
		ScannedAt:        e.ScannedAt.UTC().Format(time.RFC3339Nano),
		Source:           e.Source,
		AnomalyCode:      code,
		MeasurementValid: e.MeasurementValid,
		IsSystem:         e.IsSystem,
		CreatedAt:        e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// ========================================
// HISTORY DTOs
// ========================================

type HistoryFilter struct {
	EmployeeID string `json:"-"`
	Limit      int    `json:"limit"`
}

// Validate clamps Limit into [1, MaxHistoryLimit], defaulting to
// DefaultHistoryLimit.
func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if f.Limit < 1 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		f.Limit = MaxHistoryLimit
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type HistoryResponse struct {
	EmployeeID    string          `json:"employee_id"`
	CurrentStatus PresenceStatus  `json:"current_status"`
	Events        []EventResponse `json:"events"`
}

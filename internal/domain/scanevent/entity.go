package scanevent

import (
	"time"
)

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

type AnomalyCode string

const (
	AnomalyOutWithoutIn         AnomalyCode = "OUT_WITHOUT_IN"
	AnomalyInAfterIn            AnomalyCode = "IN_AFTER_IN"
	AnomalyAutoClosedPreviousIn AnomalyCode = "AUTO_CLOSED_PREVIOUS_IN"
	AnomalyOutAfterOut          AnomalyCode = "OUT_AFTER_OUT"
)

// Warnings are advisory; the scan was still recorded.
const (
	WarningInAfterInAutoClosed    = "IN_AFTER_IN_AUTO_CLOSED"
	WarningOutTreatedAsIn         = "OUT_TREATED_AS_IN_NO_MEASUREMENT"
	WarningOutAfterOutIgnoredMeas = "OUT_AFTER_OUT_IGNORED_FOR_MEASUREMENT"
)

// Reasons explain why no row was written.
const (
	ReasonDuplicateWithinCooldown = "DUPLICATE_WITHIN_COOLDOWN"
	ReasonCooldownAfterOut        = "COOLDOWN_AFTER_OUT"
)

// SourceMyPunctoo is stamped on every event written by this service.
const SourceMyPunctoo = "mypunctoo"

// ScanEvent is one persisted badge punch. Rows are immutable once written.
type ScanEvent struct {
	ID               string
	ClientID         string
	ScanTagID        *string
	EmployeeID       string
	Direction        Direction
	ScannedAt        time.Time
	Source           string
	UserAgent        *string
	IPAddress        *string
	AnomalyCode      *AnomalyCode
	MeasurementValid bool
	IsSystem         bool
	CreatedAt        time.Time
}

// HasAnomaly reports whether the event carries the given anomaly code.
func (e ScanEvent) HasAnomaly(code AnomalyCode) bool {
	return e.AnomalyCode != nil && *e.AnomalyCode == code
}

// Less orders events by (scanned_at, created_at, id) ascending.
func Less(a, b ScanEvent) bool {
	if !a.ScannedAt.Equal(b.ScannedAt) {
		return a.ScannedAt.Before(b.ScannedAt)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

package scanevent

// PresenceStatus is the externally visible presence of an employee.
type PresenceStatus string

const (
	StatusIn      PresenceStatus = "IN"
	StatusOut     PresenceStatus = "OUT"
	StatusUnknown PresenceStatus = "UNKNOWN"
)

// DeriveStatus maps the most recent event of an employee to a presence
// status. An OUT flagged OUT_WITHOUT_IN counts as IN; no event is UNKNOWN.
// Ingestion, history and the presence dashboard all go through here.
func DeriveStatus(latest *ScanEvent) PresenceStatus {
	if latest == nil {
		return StatusUnknown
	}
	switch latest.Direction {
	case DirectionIn:
		return StatusIn
	case DirectionOut:
		if latest.HasAnomaly(AnomalyOutWithoutIn) {
			return StatusIn
		}
		return StatusOut
	default:
		return StatusUnknown
	}
}

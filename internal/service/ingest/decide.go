package ingest

import (
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
)

const (
	DoubleTapWindow = 10 * time.Second
	CooldownWindow  = 60 * time.Minute

	// autoFixOffset separates the synthetic OUT from the real IN so that the
	// pair keeps a strict order on scanned_at.
	autoFixOffset = time.Millisecond
)

type Outcome int

const (
	OutcomeAccept Outcome = iota
	OutcomeIgnore
	OutcomeCooldown
)

// Decision is what the state machine wants done for one scan. Rows are
// templates without ids or ownership; the caller stamps and inserts them in
// order, in a single transaction.
type Decision struct {
	Outcome           Outcome
	Rows              []scanevent.ScanEvent
	Warning           string
	Reason            string
	RetryAfterSeconds int
	StatusBefore      scanevent.PresenceStatus
}

// Decide applies the ingestion rules to the employee's latest event. It has
// no side effects.
func Decide(last *scanevent.ScanEvent, direction scanevent.Direction, now time.Time) Decision {
	d := Decision{StatusBefore: scanevent.DeriveStatus(last)}

	if last == nil {
		if direction == scanevent.DirectionOut {
			d.Rows = []scanevent.ScanEvent{newRow(scanevent.DirectionOut, now, scanevent.AnomalyOutWithoutIn)}
			d.Warning = scanevent.WarningOutTreatedAsIn
			return d
		}
		d.Rows = []scanevent.ScanEvent{newValidRow(direction, now)}
		return d
	}

	// A clock behind the latest event is held at it, so rows never sort
	// before what is already in the log.
	if now.Before(last.ScannedAt) {
		now = last.ScannedAt
	}
	elapsed := now.Sub(last.ScannedAt)

	if elapsed < DoubleTapWindow {
		d.Outcome = OutcomeIgnore
		d.Reason = scanevent.ReasonDuplicateWithinCooldown
		return d
	}

	if direction == scanevent.DirectionIn && last.Direction == scanevent.DirectionOut && elapsed < CooldownWindow {
		d.Outcome = OutcomeCooldown
		d.Reason = scanevent.ReasonCooldownAfterOut
		d.RetryAfterSeconds = int(CooldownWindow/time.Second) - int(elapsed/time.Second)
		return d
	}

	switch {
	case direction == scanevent.DirectionIn && last.Direction == scanevent.DirectionIn:
		d.Rows = []scanevent.ScanEvent{
			newSystemRow(scanevent.DirectionOut, now, scanevent.AnomalyAutoClosedPreviousIn),
			newRow(scanevent.DirectionIn, now.Add(autoFixOffset), scanevent.AnomalyInAfterIn),
		}
		d.Warning = scanevent.WarningInAfterInAutoClosed
	case direction == scanevent.DirectionOut && last.Direction == scanevent.DirectionOut:
		d.Rows = []scanevent.ScanEvent{newRow(scanevent.DirectionOut, now, scanevent.AnomalyOutAfterOut)}
		d.Warning = scanevent.WarningOutAfterOutIgnoredMeas
	default:
		// IN after OUT past the cooldown, or OUT after IN.
		d.Rows = []scanevent.ScanEvent{newValidRow(direction, now)}
	}

	return d
}

// StatusAfter is the presence status once the decision is applied.
func (d Decision) StatusAfter() scanevent.PresenceStatus {
	if len(d.Rows) == 0 {
		return d.StatusBefore
	}
	return scanevent.DeriveStatus(&d.Rows[len(d.Rows)-1])
}

func newValidRow(direction scanevent.Direction, at time.Time) scanevent.ScanEvent {
	return scanevent.ScanEvent{
		Direction:        direction,
		ScannedAt:        at,
		Source:           scanevent.SourceMyPunctoo,
		MeasurementValid: true,
	}
}

// newRow builds an anomalous row, which is never valid for measurement.
func newRow(direction scanevent.Direction, at time.Time, code scanevent.AnomalyCode) scanevent.ScanEvent {
	row := newValidRow(direction, at)
	row.AnomalyCode = &code
	row.MeasurementValid = false
	return row
}

func newSystemRow(direction scanevent.Direction, at time.Time, code scanevent.AnomalyCode) scanevent.ScanEvent {
	row := newRow(direction, at, code)
	row.IsSystem = true
	return row
}

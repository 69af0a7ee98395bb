package ingest

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func anomaly(code scanevent.AnomalyCode) *scanevent.AnomalyCode {
	return &code
}

func lastEvent(direction scanevent.Direction, at time.Time, code *scanevent.AnomalyCode) *scanevent.ScanEvent {
	return &scanevent.ScanEvent{
		ID:               "last",
		Direction:        direction,
		ScannedAt:        at,
		AnomalyCode:      code,
		MeasurementValid: code == nil,
	}
}

// apply simulates the persisted log by returning the last row a decision
// would write, or the previous last when nothing is written.
func apply(last *scanevent.ScanEvent, d Decision) *scanevent.ScanEvent {
	if len(d.Rows) == 0 {
		return last
	}
	row := d.Rows[len(d.Rows)-1]
	return &row
}

func TestDecide_FirstEvent(t *testing.T) {
	t.Run("first IN is valid", func(t *testing.T) {
		d := Decide(nil, scanevent.DirectionIn, t0)

		assert.Equal(t, OutcomeAccept, d.Outcome)
		require.Len(t, d.Rows, 1)
		assert.Equal(t, scanevent.DirectionIn, d.Rows[0].Direction)
		assert.Nil(t, d.Rows[0].AnomalyCode)
		assert.True(t, d.Rows[0].MeasurementValid)
		assert.False(t, d.Rows[0].IsSystem)
		assert.Equal(t, t0, d.Rows[0].ScannedAt)
		assert.Empty(t, d.Warning)
		assert.Equal(t, scanevent.StatusUnknown, d.StatusBefore)
		assert.Equal(t, scanevent.StatusIn, d.StatusAfter())
	})

	t.Run("first OUT is treated as IN without measurement", func(t *testing.T) {
		d := Decide(nil, scanevent.DirectionOut, t0)

		assert.Equal(t, OutcomeAccept, d.Outcome)
		require.Len(t, d.Rows, 1)
		assert.Equal(t, scanevent.DirectionOut, d.Rows[0].Direction)
		assert.True(t, d.Rows[0].HasAnomaly(scanevent.AnomalyOutWithoutIn))
		assert.False(t, d.Rows[0].MeasurementValid)
		assert.Equal(t, scanevent.WarningOutTreatedAsIn, d.Warning)
		assert.Equal(t, scanevent.StatusIn, d.StatusAfter())
	})
}

func TestDecide_DoubleTap(t *testing.T) {
	tests := []struct {
		name      string
		last      scanevent.Direction
		direction scanevent.Direction
		elapsed   time.Duration
	}{
		{"IN then IN", scanevent.DirectionIn, scanevent.DirectionIn, 5 * time.Second},
		{"IN then OUT", scanevent.DirectionIn, scanevent.DirectionOut, 0},
		{"OUT then IN", scanevent.DirectionOut, scanevent.DirectionIn, 9*time.Second + 999*time.Millisecond},
		{"OUT then OUT", scanevent.DirectionOut, scanevent.DirectionOut, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := lastEvent(tt.last, t0, nil)
			d := Decide(last, tt.direction, t0.Add(tt.elapsed))

			assert.Equal(t, OutcomeIgnore, d.Outcome)
			assert.Empty(t, d.Rows)
			assert.Equal(t, scanevent.ReasonDuplicateWithinCooldown, d.Reason)
			assert.Equal(t, d.StatusBefore, d.StatusAfter())
		})
	}
}

func TestDecide_DoubleTapWindowBoundary(t *testing.T) {
	last := lastEvent(scanevent.DirectionIn, t0, nil)

	d := Decide(last, scanevent.DirectionOut, t0.Add(DoubleTapWindow))

	assert.Equal(t, OutcomeAccept, d.Outcome)
	require.Len(t, d.Rows, 1)
	assert.True(t, d.Rows[0].MeasurementValid)
}

func TestDecide_ClockBehindLastEvent(t *testing.T) {
	behind := t0.Add(-time.Millisecond)

	t.Run("IN after IN is a double tap", func(t *testing.T) {
		d := Decide(lastEvent(scanevent.DirectionIn, t0, nil), scanevent.DirectionIn, behind)

		assert.Equal(t, OutcomeIgnore, d.Outcome)
		assert.Empty(t, d.Rows)
		assert.Equal(t, scanevent.ReasonDuplicateWithinCooldown, d.Reason)
	})

	t.Run("IN after OUT does not skip the windows", func(t *testing.T) {
		d := Decide(lastEvent(scanevent.DirectionOut, t0, nil), scanevent.DirectionIn, behind)

		assert.Equal(t, OutcomeIgnore, d.Outcome)
		assert.Empty(t, d.Rows)
	})

	t.Run("a minute of lag behind an OUT is not accepted", func(t *testing.T) {
		d := Decide(lastEvent(scanevent.DirectionOut, t0.Add(time.Minute), nil), scanevent.DirectionIn, t0)

		assert.NotEqual(t, OutcomeAccept, d.Outcome)
		assert.Empty(t, d.Rows)
	})

	t.Run("rows are stamped at the last event, not before it", func(t *testing.T) {
		last := lastEvent(scanevent.DirectionIn, t0.Add(-time.Hour), nil)
		d := Decide(last, scanevent.DirectionOut, t0.Add(-2*time.Hour))

		assert.Equal(t, OutcomeIgnore, d.Outcome)

		d = Decide(last, scanevent.DirectionOut, t0)
		require.Len(t, d.Rows, 1)
		assert.False(t, d.Rows[0].ScannedAt.Before(last.ScannedAt))
	})
}

func TestDecide_Cooldown(t *testing.T) {
	last := lastEvent(scanevent.DirectionOut, t0, nil)

	t.Run("IN 30 minutes after OUT is refused", func(t *testing.T) {
		d := Decide(last, scanevent.DirectionIn, t0.Add(30*time.Minute))

		assert.Equal(t, OutcomeCooldown, d.Outcome)
		assert.Empty(t, d.Rows)
		assert.Equal(t, scanevent.ReasonCooldownAfterOut, d.Reason)
		assert.Equal(t, 1800, d.RetryAfterSeconds)
		assert.Equal(t, scanevent.StatusOut, d.StatusBefore)
	})

	t.Run("partial seconds are floored", func(t *testing.T) {
		d := Decide(last, scanevent.DirectionIn, t0.Add(59*time.Minute+59*time.Second+500*time.Millisecond))

		assert.Equal(t, OutcomeCooldown, d.Outcome)
		assert.Equal(t, 1, d.RetryAfterSeconds)
	})

	t.Run("IN 61 minutes after OUT is accepted", func(t *testing.T) {
		d := Decide(last, scanevent.DirectionIn, t0.Add(61*time.Minute))

		assert.Equal(t, OutcomeAccept, d.Outcome)
		require.Len(t, d.Rows, 1)
		assert.Equal(t, scanevent.DirectionIn, d.Rows[0].Direction)
		assert.Nil(t, d.Rows[0].AnomalyCode)
		assert.True(t, d.Rows[0].MeasurementValid)
		assert.Equal(t, scanevent.StatusIn, d.StatusAfter())
	})

	t.Run("exactly 60 minutes is accepted", func(t *testing.T) {
		d := Decide(last, scanevent.DirectionIn, t0.Add(CooldownWindow))

		assert.Equal(t, OutcomeAccept, d.Outcome)
	})

	t.Run("cooldown does not apply to OUT", func(t *testing.T) {
		d := Decide(last, scanevent.DirectionOut, t0.Add(30*time.Minute))

		assert.Equal(t, OutcomeAccept, d.Outcome)
	})

	t.Run("cooldown also follows an orphan OUT", func(t *testing.T) {
		orphan := lastEvent(scanevent.DirectionOut, t0, anomaly(scanevent.AnomalyOutWithoutIn))
		d := Decide(orphan, scanevent.DirectionIn, t0.Add(10*time.Minute))

		assert.Equal(t, OutcomeCooldown, d.Outcome)
		assert.Equal(t, 3000, d.RetryAfterSeconds)
		assert.Equal(t, scanevent.StatusIn, d.StatusBefore)
	})
}

func TestDecide_InAfterInAutoFix(t *testing.T) {
	last := lastEvent(scanevent.DirectionIn, t0, nil)
	now := t0.Add(5 * time.Minute)

	d := Decide(last, scanevent.DirectionIn, now)

	assert.Equal(t, OutcomeAccept, d.Outcome)
	require.Len(t, d.Rows, 2)

	systemOut := d.Rows[0]
	assert.Equal(t, scanevent.DirectionOut, systemOut.Direction)
	assert.Equal(t, now, systemOut.ScannedAt)
	assert.True(t, systemOut.HasAnomaly(scanevent.AnomalyAutoClosedPreviousIn))
	assert.False(t, systemOut.MeasurementValid)
	assert.True(t, systemOut.IsSystem)

	realIn := d.Rows[1]
	assert.Equal(t, scanevent.DirectionIn, realIn.Direction)
	assert.Equal(t, now.Add(time.Millisecond), realIn.ScannedAt)
	assert.True(t, realIn.HasAnomaly(scanevent.AnomalyInAfterIn))
	assert.False(t, realIn.MeasurementValid)
	assert.False(t, realIn.IsSystem)

	assert.Equal(t, scanevent.WarningInAfterInAutoClosed, d.Warning)
	assert.Equal(t, scanevent.StatusIn, d.StatusBefore)
	assert.Equal(t, scanevent.StatusIn, d.StatusAfter())
}

func TestDecide_OutAfterIn(t *testing.T) {
	last := lastEvent(scanevent.DirectionIn, t0, nil)

	d := Decide(last, scanevent.DirectionOut, t0.Add(8*time.Hour))

	assert.Equal(t, OutcomeAccept, d.Outcome)
	require.Len(t, d.Rows, 1)
	assert.Nil(t, d.Rows[0].AnomalyCode)
	assert.True(t, d.Rows[0].MeasurementValid)
	assert.Empty(t, d.Warning)
	assert.Equal(t, scanevent.StatusOut, d.StatusAfter())
}

func TestDecide_OutAfterOut(t *testing.T) {
	tests := []struct {
		name         string
		last         *scanevent.ScanEvent
		statusBefore scanevent.PresenceStatus
	}{
		{"after valid OUT", lastEvent(scanevent.DirectionOut, t0, nil), scanevent.StatusOut},
		{"after orphan OUT", lastEvent(scanevent.DirectionOut, t0, anomaly(scanevent.AnomalyOutWithoutIn)), scanevent.StatusIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.last, scanevent.DirectionOut, t0.Add(2*time.Hour))

			assert.Equal(t, OutcomeAccept, d.Outcome)
			require.Len(t, d.Rows, 1)
			assert.True(t, d.Rows[0].HasAnomaly(scanevent.AnomalyOutAfterOut))
			assert.False(t, d.Rows[0].MeasurementValid)
			assert.Equal(t, scanevent.WarningOutAfterOutIgnoredMeas, d.Warning)
			assert.Equal(t, tt.statusBefore, d.StatusBefore)
			assert.Equal(t, scanevent.StatusOut, d.StatusAfter())
		})
	}
}

func TestDecide_Sequences(t *testing.T) {
	t.Run("double tap persists one event", func(t *testing.T) {
		first := Decide(nil, scanevent.DirectionIn, t0)
		require.Len(t, first.Rows, 1)

		second := Decide(apply(nil, first), scanevent.DirectionIn, t0.Add(5*time.Second))
		assert.Equal(t, OutcomeIgnore, second.Outcome)
		assert.Empty(t, second.Rows)
	})

	t.Run("cooldown then success", func(t *testing.T) {
		out := Decide(lastEvent(scanevent.DirectionIn, t0.Add(-8*time.Hour), nil), scanevent.DirectionOut, t0)
		last := apply(nil, out)

		early := Decide(last, scanevent.DirectionIn, t0.Add(30*time.Minute))
		assert.Equal(t, OutcomeCooldown, early.Outcome)
		assert.Equal(t, 1800, early.RetryAfterSeconds)

		// Nothing is written on refusal, so the OUT is still the last event.
		late := Decide(apply(last, early), scanevent.DirectionIn, t0.Add(61*time.Minute))
		assert.Equal(t, OutcomeAccept, late.Outcome)
		require.Len(t, late.Rows, 1)
	})
}

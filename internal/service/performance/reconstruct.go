package performance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
)

// openInterval is the unmatched IN of the current pass.
type openInterval struct {
	start    scanevent.ScanEvent
	extraINs int
}

// Reconstruct pairs one employee's events, already ordered ascending, into
// performances in a single pass. Events with an unknown direction are
// skipped. The result depends only on the input.
func Reconstruct(events []scanevent.ScanEvent) []performance.Performance {
	perfs := []performance.Performance{}
	var open *openInterval

	for _, ev := range events {
		switch ev.Direction {
		case scanevent.DirectionIn:
			if open == nil {
				open = &openInterval{start: ev}
				continue
			}
			open.extraINs++

		case scanevent.DirectionOut:
			if open == nil {
				perfs = append(perfs, orphanOut(ev))
				continue
			}
			perfs = append(perfs, closed(open, ev))
			open = nil
		}
	}

	if open != nil {
		perfs = append(perfs, openShift(open))
	}

	return perfs
}

func closed(open *openInterval, end scanevent.ScanEvent) performance.Performance {
	start := open.start
	p := base(start.EmployeeID)
	p.StartedAt = timePtr(start.ScannedAt)
	p.EndedAt = timePtr(end.ScannedAt)
	p.StartEventID = stringPtr(start.ID)
	p.EndEventID = stringPtr(end.ID)
	p.EffectiveMinutes = effectiveMinutes(start.ScannedAt, end.ScannedAt)
	p.RegistrationComplete = true
	p.Measurable = start.MeasurementValid && end.MeasurementValid

	if !p.Measurable {
		p.AttentionReasons = append(p.AttentionReasons, performance.ReasonNotMeasurable)
	}
	if start.AnomalyCode != nil {
		p.AttentionReasons = append(p.AttentionReasons, performance.ReasonStartPrefix+string(*start.AnomalyCode))
	}
	if end.AnomalyCode != nil {
		p.AttentionReasons = append(p.AttentionReasons, performance.ReasonEndPrefix+string(*end.AnomalyCode))
	}
	if open.extraINs > 0 {
		p.AttentionReasons = append(p.AttentionReasons, performance.ReasonInWhileOpen)
	}
	p.Attention = len(p.AttentionReasons) > 0

	return p
}

func orphanOut(end scanevent.ScanEvent) performance.Performance {
	p := base(end.EmployeeID)
	p.EndedAt = timePtr(end.ScannedAt)
	p.EndEventID = stringPtr(end.ID)
	p.Attention = true

	p.AttentionReasons = append(p.AttentionReasons, performance.ReasonOutWithoutIn)
	if !end.MeasurementValid {
		p.AttentionReasons = append(p.AttentionReasons, performance.ReasonNotMeasurable)
	}
	if end.AnomalyCode != nil {
		p.AttentionReasons = append(p.AttentionReasons, performance.ReasonEndPrefix+string(*end.AnomalyCode))
	}

	return p
}

func openShift(open *openInterval) performance.Performance {
	start := open.start
	p := base(start.EmployeeID)
	p.StartedAt = timePtr(start.ScannedAt)
	p.StartEventID = stringPtr(start.ID)
	p.Attention = true

	p.AttentionReasons = append(p.AttentionReasons, performance.ReasonOpenShift)
	if open.extraINs > 0 {
		p.AttentionReasons = append(p.AttentionReasons, performance.ReasonInWhileOpen)
	}
	if start.AnomalyCode != nil {
		p.AttentionReasons = append(p.AttentionReasons, performance.ReasonStartPrefix+string(*start.AnomalyCode))
	}
	if !start.MeasurementValid {
		p.AttentionReasons = append(p.AttentionReasons, performance.ReasonNotMeasurable)
	}

	return p
}

func base(employeeID string) performance.Performance {
	return performance.Performance{
		EmployeeID:       employeeID,
		AttentionReasons: []string{},
	}
}

// effectiveMinutes rounds half away from zero.
func effectiveMinutes(start, end time.Time) *int {
	minutes := int(math.Round(end.Sub(start).Minutes()))
	return &minutes
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func stringPtr(s string) *string {
	return &s
}

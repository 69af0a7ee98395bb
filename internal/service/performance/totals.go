package performance

import (
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/performance"
)

// Totals aggregates performances per employee, keeping the order in which
// employees first appear. Minute sums only count measurable performances;
// difference and overtime sums stay nil while no performance defines them.
func Totals(perfs []performance.Performance) []performance.PeriodTotal {
	totals := []performance.PeriodTotal{}
	index := make(map[string]int)

	for _, p := range perfs {
		i, ok := index[p.EmployeeID]
		if !ok {
			i = len(totals)
			index[p.EmployeeID] = i
			totals = append(totals, performance.PeriodTotal{
				EmployeeID:       p.EmployeeID,
				EmployeeName:     p.EmployeeName,
				ReferenceMinutes: copyInt(p.ReferenceMinutes),
			})
		}
		t := &totals[i]

		t.PerformanceCount++
		if p.Attention {
			t.AttentionCount++
		}
		if p.IsOpenShift() {
			t.OpenShiftCount++
		}
		if !p.Measurable {
			continue
		}

		t.MeasurableCount++
		if p.EffectiveMinutes != nil {
			t.EffectiveMinutes += *p.EffectiveMinutes
		}
		if p.DifferenceMinutes != nil {
			t.DifferenceMinutes = addInt(t.DifferenceMinutes, *p.DifferenceMinutes)
		}
		if p.OvertimeMinutes != nil {
			t.OvertimeMinutes = addInt(t.OvertimeMinutes, *p.OvertimeMinutes)
		}
	}

	return totals
}

func addInt(sum *int, v int) *int {
	if sum == nil {
		return &v
	}
	total := *sum + v
	return &total
}

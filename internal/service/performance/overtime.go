package performance

import (
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/performance"
)

// AttachOvertime compares a performance with the employee's reference
// duration. Difference and overtime stay nil unless the performance is
// measurable and a reference is configured; no default is ever assumed.
func AttachOvertime(p performance.Performance, referenceMinutes *int) performance.Performance {
	p.ReferenceMinutes = copyInt(referenceMinutes)
	p.DifferenceMinutes = nil
	p.OvertimeMinutes = nil

	if !p.Measurable || referenceMinutes == nil || p.EffectiveMinutes == nil {
		return p
	}

	difference := *p.EffectiveMinutes - *referenceMinutes
	overtime := max(difference, 0)
	p.DifferenceMinutes = &difference
	p.OvertimeMinutes = &overtime

	return p
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrReferenceMinutesMissing = errors.New("reference_minutes is required (number or null)")
	ErrReferenceMinutesRange   = errors.New("reference_minutes must be between 1 and 1440, or null")
)

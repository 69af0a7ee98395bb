package employee

import (
	"strings"
	"time"
)

type Employee struct {
	ID        string
	ClientID  string
	FirstName *string
	LastName  *string
	Email     *string
	// ReferenceMinutes is the HR-entered expected shift length. Nil means
	// not configured; it is never defaulted.
	ReferenceMinutes *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DisplayName joins first and last name, skipping empty parts.
func (e Employee) DisplayName() string {
	var parts []string
	if e.FirstName != nil && strings.TrimSpace(*e.FirstName) != "" {
		parts = append(parts, strings.TrimSpace(*e.FirstName))
	}
	if e.LastName != nil && strings.TrimSpace(*e.LastName) != "" {
		parts = append(parts, strings.TrimSpace(*e.LastName))
	}
	return strings.Join(parts, " ")
}

package presence

import (
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
)

type EmployeePresence struct {
	EmployeeID        string                   `json:"employee_id"`
	FirstName         *string                  `json:"first_name"`
	LastName          *string                  `json:"last_name"`
	Email             *string                  `json:"email"`
	DisplayName       string                   `json:"display_name"`
	EmployeeCreatedAt string                   `json:"employee_created_at"`
	EmployeeUpdatedAt string                   `json:"employee_updated_at"`
	LastScanEventID   *string                  `json:"last_scan_event_id"`
	LastDirection     *string                  `json:"last_direction"`
	Since             *string                  `json:"since"`
	MeasurementValid  bool                     `json:"measurement_valid"`
	AnomalyCode       *string                  `json:"anomaly_code"`
	IsSystem          bool                     `json:"is_system"`
	CurrentStatus     scanevent.PresenceStatus `json:"current_status"`
}

// Summary counts employees by current status. Attention counts employees
// whose latest event is invalid for measurement or carries an anomaly.
type Summary struct {
	In        int `json:"in"`
	Out       int `json:"out"`
	NoScans   int `json:"no_scans"`
	Attention int `json:"attention"`
}

type DashboardResponse struct {
	Timestamp string             `json:"timestamp"`
	Summary   Summary            `json:"summary"`
	Employees []EmployeePresence `json:"employees"`
}

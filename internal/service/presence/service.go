package presence

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/presence"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
	"golang.org/x/sync/errgroup"
)

type PresenceServiceImpl struct {
	scanevent.ScanEventRepository
	employee.EmployeeRepository
	now func() time.Time
}

// statusRank orders IN first, then OUT, then employees without scans.
var statusRank = map[scanevent.PresenceStatus]int{
	scanevent.StatusIn:      0,
	scanevent.StatusOut:     1,
	scanevent.StatusUnknown: 2,
}

// Dashboard implements presence.PresenceService.
func (s *PresenceServiceImpl) Dashboard(ctx context.Context) (presence.DashboardResponse, error) {
	gate, err := client.FromContext(ctx)
	if err != nil {
		return presence.DashboardResponse{}, err
	}
	clientID := gate.Client.ID

	var (
		employees []employee.Employee
		latest    map[string]scanevent.ScanEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.EmployeeRepository.ListByClient(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		latest, err = s.ScanEventRepository.LatestByClient(gctx, clientID)
		return err
	})
	if err := g.Wait(); err != nil {
		return presence.DashboardResponse{}, err
	}

	resp := presence.DashboardResponse{
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
		Employees: make([]presence.EmployeePresence, 0, len(employees)),
	}

	created := make(map[string]time.Time, len(employees))
	for _, emp := range employees {
		created[emp.ID] = emp.CreatedAt

		row := presence.EmployeePresence{
			EmployeeID:        emp.ID,
			FirstName:         emp.FirstName,
			LastName:          emp.LastName,
			Email:             emp.Email,
			DisplayName:       emp.DisplayName(),
			EmployeeCreatedAt: emp.CreatedAt.UTC().Format(time.RFC3339),
			EmployeeUpdatedAt: emp.UpdatedAt.UTC().Format(time.RFC3339),
			MeasurementValid:  true,
			CurrentStatus:     scanevent.StatusUnknown,
		}

		if ev, ok := latest[emp.ID]; ok {
			id := ev.ID
			direction := string(ev.Direction)
			since := ev.ScannedAt.UTC().Format(time.RFC3339Nano)
			row.LastScanEventID = &id
			row.LastDirection = &direction
			row.Since = &since
			row.MeasurementValid = ev.MeasurementValid
			row.IsSystem = ev.IsSystem
			if ev.AnomalyCode != nil {
				code := string(*ev.AnomalyCode)
				row.AnomalyCode = &code
			}
			row.CurrentStatus = scanevent.DeriveStatus(&ev)

			if !ev.MeasurementValid || ev.AnomalyCode != nil {
				resp.Summary.Attention++
			}
		}

		switch row.CurrentStatus {
		case scanevent.StatusIn:
			resp.Summary.In++
		case scanevent.StatusOut:
			resp.Summary.Out++
		default:
			resp.Summary.NoScans++
		}

		resp.Employees = append(resp.Employees, row)
	}

	sort.SliceStable(resp.Employees, func(i, j int) bool {
		a, b := resp.Employees[i], resp.Employees[j]
		if statusRank[a.CurrentStatus] != statusRank[b.CurrentStatus] {
			return statusRank[a.CurrentStatus] < statusRank[b.CurrentStatus]
		}
		return created[a.EmployeeID].After(created[b.EmployeeID])
	})

	return resp, nil
}

func NewPresenceService(
	scanEventRepo scanevent.ScanEventRepository,
	employeeRepo employee.EmployeeRepository,
) presence.PresenceService {
	return &PresenceServiceImpl{
		ScanEventRepository: scanEventRepo,
		EmployeeRepository:  employeeRepo,
		now:                 time.Now,
	}
}

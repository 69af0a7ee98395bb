package performance

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

type PerformanceServiceImpl struct {
	scanevent.ScanEventRepository
	employee.EmployeeRepository
	metrics *metrics.Metrics
}

// List implements performance.PerformanceService.
func (s *PerformanceServiceImpl) List(ctx context.Context, filter performance.PerformanceFilter) (performance.ListPerformanceResponse, error) {
	perfs, err := s.compute(ctx, &filter)
	if err != nil {
		return performance.ListPerformanceResponse{}, err
	}

	resp := performance.ListPerformanceResponse{
		From:         filter.From,
		To:           filter.To,
		Count:        len(perfs),
		Performances: make([]performance.PerformanceResponse, 0, len(perfs)),
	}
	for _, p := range perfs {
		resp.Performances = append(resp.Performances, performance.NewPerformanceResponse(p))
	}

	return resp, nil
}

// Totals implements performance.PerformanceService.
func (s *PerformanceServiceImpl) Totals(ctx context.Context, filter performance.PerformanceFilter) (performance.ListPeriodTotalResponse, error) {
	perfs, err := s.compute(ctx, &filter)
	if err != nil {
		return performance.ListPeriodTotalResponse{}, err
	}

	return performance.ListPeriodTotalResponse{
		From:   filter.From,
		To:     filter.To,
		Totals: Totals(perfs),
	}, nil
}

// compute reads the range, reconstructs per employee and attaches each
// employee's reference. Employees come in directory order.
func (s *PerformanceServiceImpl) compute(ctx context.Context, filter *performance.PerformanceFilter) ([]performance.Performance, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	gate, err := client.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	clientID := gate.Client.ID

	if filter.EmployeeID != nil {
		if _, err := s.EmployeeRepository.GetByID(ctx, *filter.EmployeeID, clientID); err != nil {
			return nil, err
		}
	}

	from, to := filter.Range()

	var (
		employees []employee.Employee
		events    []scanevent.ScanEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.EmployeeRepository.ListByClient(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.ScanEventRepository.ListRange(gctx, clientID, filter.EmployeeID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byEmployee := make(map[string][]scanevent.ScanEvent)
	var unknown []string
	for _, ev := range events {
		byEmployee[ev.EmployeeID] = append(byEmployee[ev.EmployeeID], ev)
	}

	known := make(map[string]bool, len(employees))
	for _, emp := range employees {
		known[emp.ID] = true
	}
	for id := range byEmployee {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		employees = append(employees, employee.Employee{ID: id})
	}

	perfs := []performance.Performance{}
	attention := 0
	for _, emp := range employees {
		evs, ok := byEmployee[emp.ID]
		if !ok {
			continue
		}
		sort.SliceStable(evs, func(i, j int) bool {
			return scanevent.Less(evs[i], evs[j])
		})

		name := emp.DisplayName()
		for _, p := range Reconstruct(evs) {
			p.EmployeeName = name
			p = AttachOvertime(p, emp.ReferenceMinutes)
			if p.Attention {
				attention++
			}
			perfs = append(perfs, p)
		}
	}

	s.metrics.ObservePerformances(len(perfs), attention)

	return perfs, nil
}

func NewPerformanceService(
	scanEventRepo scanevent.ScanEventRepository,
	employeeRepo employee.EmployeeRepository,
	m *metrics.Metrics,
) performance.PerformanceService {
	return &PerformanceServiceImpl{
		ScanEventRepository: scanEventRepo,
		EmployeeRepository:  employeeRepo,
		metrics:             m,
	}
}

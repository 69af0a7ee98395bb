package reference

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/employee"
)

type ReferenceServiceImpl struct {
	employee.EmployeeRepository
}

// GetReference implements employee.ReferenceService.
func (s *ReferenceServiceImpl) GetReference(ctx context.Context, employeeID string) (employee.ReferenceResponse, error) {
	gate, err := client.FromContext(ctx)
	if err != nil {
		return employee.ReferenceResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, gate.Client.ID)
	if err != nil {
		return employee.ReferenceResponse{}, err
	}

	return employee.NewReferenceResponse(emp, false), nil
}

// UpdateReference implements employee.ReferenceService.
func (s *ReferenceServiceImpl) UpdateReference(ctx context.Context, req employee.UpdateReferenceRequest) (employee.ReferenceResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ReferenceResponse{}, err
	}

	gate, err := client.FromContext(ctx)
	if err != nil {
		return employee.ReferenceResponse{}, err
	}

	emp, err := s.EmployeeRepository.UpdateReferenceMinutes(ctx, req.EmployeeID, gate.Client.ID, req.Minutes())
	if err != nil {
		return employee.ReferenceResponse{}, err
	}

	slog.Info("Reference duration updated",
		"client_id", gate.Client.ID,
		"employee_id", emp.ID,
		"reference_minutes", emp.ReferenceMinutes,
	)

	return employee.NewReferenceResponse(emp, true), nil
}

func NewReferenceService(employeeRepo employee.EmployeeRepository) employee.ReferenceService {
	return &ReferenceServiceImpl{EmployeeRepository: employeeRepo}
}

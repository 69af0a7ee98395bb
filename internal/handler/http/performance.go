package http

import (
	"net/http"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/handler/http/response"
)

type PerformanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Totals(w http.ResponseWriter, r *http.Request)
}

type performanceHandlerImpl struct {
	performanceService performance.PerformanceService
}

func NewPerformanceHandler(performanceService performance.PerformanceService) PerformanceHandler {
	return &performanceHandlerImpl{
		performanceService: performanceService,
	}
}

func filterFromQuery(r *http.Request) performance.PerformanceFilter {
	query := r.URL.Query()
	filter := performance.PerformanceFilter{
		From: query.Get("from"),
		To:   query.Get("to"),
	}
	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	return filter
}

// List implements PerformanceHandler.
func (h *performanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.performanceService.List(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Totals implements PerformanceHandler.
func (h *performanceHandlerImpl) Totals(w http.ResponseWriter, r *http.Request) {
	result, err := h.performanceService.Totals(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

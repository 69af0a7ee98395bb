package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReferenceHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type referenceHandlerImpl struct {
	referenceService employee.ReferenceService
}

func NewReferenceHandler(referenceService employee.ReferenceService) ReferenceHandler {
	return &referenceHandlerImpl{
		referenceService: referenceService,
	}
}

// Get implements ReferenceHandler.
func (h *referenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.referenceService.GetReference(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements ReferenceHandler.
func (h *referenceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateReferenceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.referenceService.UpdateReference(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reference duration updated", result)
}

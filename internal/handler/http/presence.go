package http

import (
	"net/http"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/presence"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/handler/http/response"
)

type PresenceHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type presenceHandlerImpl struct {
	presenceService presence.PresenceService
}

func NewPresenceHandler(presenceService presence.PresenceService) PresenceHandler {
	return &presenceHandlerImpl{
		presenceService: presenceService,
	}
}

// Dashboard implements PresenceHandler.
func (h *presenceHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.presenceService.Dashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

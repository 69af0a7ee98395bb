package http

import (
	"net/http"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/handler/http/response"
)

type AccessHandler interface {
	Access(w http.ResponseWriter, r *http.Request)
}

type accessHandlerImpl struct {
	gateService client.GateService
}

func NewAccessHandler(gateService client.GateService) AccessHandler {
	return &accessHandlerImpl{
		gateService: gateService,
	}
}

// Access reports whether the caller may use mypunctoo. A refusal is a
// successful answer with allowed=false.
func (h *accessHandlerImpl) Access(w http.ResponseWriter, r *http.Request) {
	email, err := middleware.EmailFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.gateService.Access(r.Context(), email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

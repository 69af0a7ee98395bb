package http

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScanEventHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type scanEventHandlerImpl struct {
	ingestService scanevent.IngestService
}

func NewScanEventHandler(ingestService scanevent.IngestService) ScanEventHandler {
	return &scanEventHandlerImpl{
		ingestService: ingestService,
	}
}

// Submit implements ScanEventHandler.
func (h *scanEventHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req scanevent.SubmitScanRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("Failed to decode scan request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.EmployeeID = chi.URLParam(r, "employeeID")
	if ua := r.UserAgent(); ua != "" {
		req.UserAgent = &ua
	}
	req.IPAddress = clientIP(r)

	result, err := h.ingestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Ignored {
		response.SuccessWithMessage(w, "Duplicate scan ignored", result)
		return
	}

	response.Created(w, "Scan recorded", result)
}

// History implements ScanEventHandler.
func (h *scanEventHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := scanevent.HistoryFilter{
		EmployeeID: chi.URLParam(r, "employeeID"),
	}

	// An unparsable limit falls back to the default page size.
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}

	result, err := h.ingestService.History(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{Count: len(result.Events)})
}

// clientIP takes the first X-Forwarded-For hop, falling back to the peer
// address. IPv4-mapped IPv6 addresses are unmapped; unparsable values are
// dropped.
func clientIP(r *http.Request) *string {
	raw := ""
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		raw = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if raw == "" {
		raw = r.RemoteAddr
		if host, _, err := net.SplitHostPort(raw); err == nil {
			raw = host
		}
	}

	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return nil
	}
	ip := addr.Unmap().WithZone("").String()
	return &ip
}

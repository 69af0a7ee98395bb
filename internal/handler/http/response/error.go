package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/scanevent"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Cooldown refusal carries the retry delay
	var cooldownErr *scanevent.CooldownError
	if errors.As(err, &cooldownErr) {
		RetryLater(w, scanevent.ReasonCooldownAfterOut, cooldownErr.Error(),
			cooldownErr.RetryAfterSeconds, scanevent.NewCooldownResponse(cooldownErr))
		return
	}

	switch {
	// Scan event domain errors
	case errors.Is(err, scanevent.ErrConcurrentScan):
		ServiceUnavailable(w, "CONCURRENT_SCAN", scanevent.ErrConcurrentScan.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Gate errors
	case errors.Is(err, client.ErrNoCustomerAccount):
		NotFoundWithCode(w, client.ReasonNoCustomerAccount, err.Error())
	case errors.Is(err, client.ErrNotEnabled):
		ForbiddenWithCode(w, client.ReasonNotEnabled, err.Error())
	case errors.Is(err, client.ErrNoActiveScanTag):
		ForbiddenWithCode(w, client.ReasonNoActiveScanTag, err.Error())
	case errors.Is(err, client.ErrEmailRequired):
		Unauthorized(w, "Email claim is required")
	case errors.Is(err, client.ErrInvalidEmail):
		Unauthorized(w, "Email claim is not a valid address")
	case errors.Is(err, client.ErrClientContextMissing):
		Unauthorized(w, "Client could not be resolved")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

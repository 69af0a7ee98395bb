package gate

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/validator"
)

type GateServiceImpl struct {
	client.ClientRepository
}

// Resolve implements client.GateService.
func (s *GateServiceImpl) Resolve(ctx context.Context, email string) (client.Context, error) {
	email = validator.NormalizeEmail(email)
	if validator.IsEmpty(email) {
		return client.Context{}, client.ErrEmailRequired
	}
	if !validator.IsValidEmail(email) {
		return client.Context{}, client.ErrInvalidEmail
	}

	cl, err := s.ClientRepository.GetCustomerByEmail(ctx, email)
	if err != nil {
		return client.Context{}, err
	}

	if !cl.MyPunctooEnabled {
		return client.Context{}, client.ErrNotEnabled
	}

	tag, err := s.ClientRepository.GetActiveScanTag(ctx, cl.ID)
	if err != nil {
		return client.Context{}, err
	}

	return client.Context{Client: cl, ScanTag: tag}, nil
}

// Access implements client.GateService. Gate refusals are reported in the
// response; only unexpected failures are returned as errors.
func (s *GateServiceImpl) Access(ctx context.Context, email string) (client.AccessResponse, error) {
	gateCtx, err := s.Resolve(ctx, email)
	if err != nil {
		reason := client.Reason(err)
		if reason == "" {
			return client.AccessResponse{}, err
		}
		slog.Debug("mypunctoo access refused", "reason", reason)
		return client.AccessResponse{Allowed: false, Reason: &reason}, nil
	}

	clientID := gateCtx.Client.ID
	scanTagID := gateCtx.ScanTag.ID
	return client.AccessResponse{
		Allowed:   true,
		ClientID:  &clientID,
		ScanTagID: &scanTagID,
	}, nil
}

func NewGateService(clientRepo client.ClientRepository) client.GateService {
	return &GateServiceImpl{ClientRepository: clientRepo}
}

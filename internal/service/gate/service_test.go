package gate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClientRepo struct {
	clients map[string]client.Client
	tags    map[string]client.ScanTag
	err     error
}

func (f *fakeClientRepo) GetCustomerByEmail(ctx context.Context, email string) (client.Client, error) {
	if f.err != nil {
		return client.Client{}, f.err
	}
	c, ok := f.clients[strings.ToLower(email)]
	if !ok {
		return client.Client{}, client.ErrNoCustomerAccount
	}
	return c, nil
}

func (f *fakeClientRepo) GetActiveScanTag(ctx context.Context, clientID string) (client.ScanTag, error) {
	t, ok := f.tags[clientID]
	if !ok {
		return client.ScanTag{}, client.ErrNoActiveScanTag
	}
	return t, nil
}

func newRepo() *fakeClientRepo {
	return &fakeClientRepo{
		clients: map[string]client.Client{
			"hr@acme.test":     {ID: "c-acme", Email: "hr@acme.test", MyPunctooEnabled: true},
			"hr@disabled.test": {ID: "c-disabled", Email: "hr@disabled.test", MyPunctooEnabled: false},
			"hr@untagged.test": {ID: "c-untagged", Email: "hr@untagged.test", MyPunctooEnabled: true},
		},
		tags: map[string]client.ScanTag{
			"c-acme":     {ID: "tag-acme", ClientID: "c-acme", Status: client.ScanTagStatusActive},
			"c-disabled": {ID: "tag-disabled", ClientID: "c-disabled", Status: client.ScanTagStatusActive},
		},
	}
}

func TestGateService_Resolve(t *testing.T) {
	svc := NewGateService(newRepo())
	ctx := context.Background()

	t.Run("enabled client with active tag", func(t *testing.T) {
		got, err := svc.Resolve(ctx, "  HR@Acme.test ")
		require.NoError(t, err)
		assert.Equal(t, "c-acme", got.Client.ID)
		assert.Equal(t, "tag-acme", got.ScanTag.ID)
	})

	tests := []struct {
		name  string
		email string
		want  error
	}{
		{"empty email", "   ", client.ErrEmailRequired},
		{"malformed email", "hr@acme", client.ErrInvalidEmail},
		{"not an email", "hr", client.ErrInvalidEmail},
		{"unknown email", "nobody@acme.test", client.ErrNoCustomerAccount},
		{"not enabled", "hr@disabled.test", client.ErrNotEnabled},
		{"no active tag", "hr@untagged.test", client.ErrNoActiveScanTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Resolve(ctx, tt.email)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGateService_Access(t *testing.T) {
	svc := NewGateService(newRepo())
	ctx := context.Background()

	t.Run("allowed", func(t *testing.T) {
		resp, err := svc.Access(ctx, "hr@acme.test")
		require.NoError(t, err)
		assert.True(t, resp.Allowed)
		assert.Nil(t, resp.Reason)
		assert.Equal(t, "c-acme", *resp.ClientID)
		assert.Equal(t, "tag-acme", *resp.ScanTagID)
	})

	tests := []struct {
		email  string
		reason string
	}{
		{"nobody@acme.test", client.ReasonNoCustomerAccount},
		{"hr@disabled.test", client.ReasonNotEnabled},
		{"hr@untagged.test", client.ReasonNoActiveScanTag},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			resp, err := svc.Access(ctx, tt.email)
			require.NoError(t, err)
			assert.False(t, resp.Allowed)
			require.NotNil(t, resp.Reason)
			assert.Equal(t, tt.reason, *resp.Reason)
		})
	}

	t.Run("storage failure is an error", func(t *testing.T) {
		repo := newRepo()
		repo.err = errors.New("connection refused")

		_, err := NewGateService(repo).Access(ctx, "hr@acme.test")
		assert.EqualError(t, err, "connection refused")
	})

	t.Run("missing email is an error", func(t *testing.T) {
		_, err := svc.Access(ctx, "")
		assert.ErrorIs(t, err, client.ErrEmailRequired)
	})

	t.Run("malformed email is an error", func(t *testing.T) {
		_, err := svc.Access(ctx, "not-an-email")
		assert.ErrorIs(t, err, client.ErrInvalidEmail)
	})
}

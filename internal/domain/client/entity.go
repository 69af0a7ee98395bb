package client

import (
	"context"
	"time"
)

const (
	TypeCustomer        = "CUSTOMER"
	ScanTagStatusActive = "ACTIVE"
)

type Client struct {
	ID                 string
	Type               string
	CompanyName        *string
	Email              string
	MyPunctooEnabled   bool
	MyPunctooEnabledAt *time.Time
}

// ScanTag is the physical QR/NFC tag a client's employees scan.
type ScanTag struct {
	ID        string
	ClientID  string
	QRURLIn   *string
	QRURLOut  *string
	Status    string
	CreatedAt time.Time
}

// Context is what the gate resolves for an authorised request: the client
// and the scan tag to stamp on new events.
type Context struct {
	Client  Client
	ScanTag ScanTag
}

type ctxKey struct{}

// WithContext stores the resolved gate context on ctx.
func WithContext(ctx context.Context, c Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the gate context set by the client middleware.
func FromContext(ctx context.Context) (Context, error) {
	c, ok := ctx.Value(ctxKey{}).(Context)
	if !ok || c.Client.ID == "" {
		return Context{}, ErrClientContextMissing
	}
	return c, nil
}

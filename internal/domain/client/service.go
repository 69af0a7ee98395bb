package client

import "context"

// GateService resolves whether a client may use mypunctoo and which scan tag
// context applies.
type GateService interface {
	Resolve(ctx context.Context, email string) (Context, error)
	Access(ctx context.Context, email string) (AccessResponse, error)
}

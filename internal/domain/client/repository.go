package client

import "context"

type ClientRepository interface {
	// GetCustomerByEmail matches on lower-cased email and client_type CUSTOMER.
	GetCustomerByEmail(ctx context.Context, email string) (Client, error)

	// GetActiveScanTag returns the most recently created ACTIVE tag.
	GetActiveScanTag(ctx context.Context, clientID string) (ScanTag, error)
}

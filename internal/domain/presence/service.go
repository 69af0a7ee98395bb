package presence

import "context"

// PresenceService builds the live who-is-in dashboard of a client.
type PresenceService interface {
	Dashboard(ctx context.Context) (DashboardResponse, error)
}

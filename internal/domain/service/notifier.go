package service

import "context"

// Notifier dispatches fire-and-forget notifications to a user. Implementations
// must never block the caller's primary operation; failures are logged, not
// propagated.
type Notifier interface {
	Notify(ctx context.Context, userID, eventType string, payload map[string]string)
}

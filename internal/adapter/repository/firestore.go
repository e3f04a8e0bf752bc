package repository

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"homefood/pkg/logger"
)

// storeTimeout bounds every Firestore round trip so callers surface a failure
// instead of hanging on the store.
var storeTimeout = 5 * time.Second

// SetStoreTimeout overrides the per-operation store timeout. Called once at
// startup from configuration.
func SetStoreTimeout(d time.Duration) {
	if d > 0 {
		storeTimeout = d
	}
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// readWithRetry runs an idempotent read, retrying once on a transient
// failure. Not-found is final and never retried.
func readWithRetry(op string, read func() error) error {
	err := read()
	if err == nil || isNotFound(err) {
		return err
	}

	logger.Warn("Retrying %s after transient store error: %v", op, err)
	return read()
}

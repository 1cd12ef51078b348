package usecase

import "context"

// Notifier abstracts notification delivery so use cases stay agnostic of the
// store and any retry machinery behind it. Delivery is best-effort: callers
// must never treat a Notifier error as fatal to an already-committed
// mutation.
type Notifier interface {
	Notify(ctx context.Context, toUserID, message string) error
}

package notify

import "context"

// Haptics triggers device vibration feedback for a freshly surfaced
// alert. Implementations are fire-and-forget: failures are logged, not
// returned, and a missing device is not an error.
type Haptics interface {
	Trigger(ctx context.Context)
}

// Noop satisfies Haptics on platforms without vibration support.
type Noop struct{}

func (Noop) Trigger(context.Context) {}

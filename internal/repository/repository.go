package repository

import (
	"context"

	"github.com/rmaia/floodwatch/internal/models"
)

// Archive persists accepted alerts so the notification history
// survives restarts. Live state (routes, feed, toast) stays in memory.
type Archive interface {
	Save(ctx context.Context, a models.Alert) error
	ListRecent(ctx context.Context, limit int) ([]models.Alert, error)
}

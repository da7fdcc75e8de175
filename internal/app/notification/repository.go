package notification

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	SaveIntent(ctx context.Context, intent Intent) error
	FindPending(ctx context.Context, limit int) ([]Intent, error)
	MarkSent(ctx context.Context, id uuid.UUID, messageId int) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
	ChatIdForUser(ctx context.Context, userId int64) (int64, error)
}

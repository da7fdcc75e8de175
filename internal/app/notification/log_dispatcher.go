package notification

import (
	"context"

	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

// LogDispatcher writes intents to the log instead of a chat. Used when no bot
// token is configured.
type LogDispatcher struct {
	logger logger.LoggerInterface
}

func NewLogDispatcher(logger logger.LoggerInterface) *LogDispatcher {
	return &LogDispatcher{
		logger: logger,
	}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, intent Intent) (int, error) {
	d.logger.Println("[", intent.Kind, "] user:", intent.UserId, "-", intent.Title, "-", intent.Message)

	return 0, nil
}

package notification

import (
	"context"

	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

const PendingBatchLimit = 100

// Service runs the outbox: it persists every intent first and only then tries
// delivery, so an intent survives a dispatcher outage.
type Service struct {
	repository Repository
	dispatcher Dispatcher
	logger     logger.LoggerInterface
}

func NewService(repository Repository, dispatcher Dispatcher, logger logger.LoggerInterface) Service {
	return Service{
		repository: repository,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Persist intent and attempt delivery right away.
func (s *Service) Deliver(ctx context.Context, intent Intent) error {
	if err := s.repository.SaveIntent(ctx, intent); err != nil {
		return err
	}

	return s.dispatch(ctx, intent)
}

// Retry intents stuck in pending state.
func (s *Service) FlushPending(ctx context.Context) (int, error) {
	intents, err := s.repository.FindPending(ctx, PendingBatchLimit)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, intent := range intents {
		if err := s.dispatch(ctx, intent); err == nil {
			delivered++
		}
	}

	return delivered, nil
}

func (s *Service) dispatch(ctx context.Context, intent Intent) error {
	messageId, err := s.dispatcher.Dispatch(ctx, intent)
	if err != nil {
		s.logger.Println("Unable to dispatch notification", intent.Id, ":", err)

		if markErr := s.repository.MarkFailed(ctx, intent.Id); markErr != nil {
			s.logger.Println("Unable to mark notification failed:", markErr)
		}

		return err
	}

	if err := s.repository.MarkSent(ctx, intent.Id, messageId); err != nil {
		s.logger.Println("Unable to mark notification sent:", err)
		return err
	}

	return nil
}

package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ka4en3/smartcatcher/internal/app/notification"
)

type noopLogger struct{}

func (l noopLogger) Println(v ...any) {}

type memoryRepository struct {
	saved  []notification.Intent
	sent   []uuid.UUID
	failed []uuid.UUID
}

func (r *memoryRepository) SaveIntent(ctx context.Context, intent notification.Intent) error {
	r.saved = append(r.saved, intent)

	return nil
}

func (r *memoryRepository) FindPending(ctx context.Context, limit int) ([]notification.Intent, error) {
	pending := []notification.Intent{}
	for _, intent := range r.saved {
		if intent.Status == notification.StatusPending {
			pending = append(pending, intent)
		}
	}

	return pending, nil
}

func (r *memoryRepository) MarkSent(ctx context.Context, id uuid.UUID, messageId int) error {
	r.sent = append(r.sent, id)

	return nil
}

func (r *memoryRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	r.failed = append(r.failed, id)

	return nil
}

func (r *memoryRepository) ChatIdForUser(ctx context.Context, userId int64) (int64, error) {
	return userId, nil
}

type flakyDispatcher struct {
	err       error
	delivered []notification.Intent
}

func (d *flakyDispatcher) Dispatch(ctx context.Context, intent notification.Intent) (int, error) {
	if d.err != nil {
		return 0, d.err
	}

	d.delivered = append(d.delivered, intent)

	return 42, nil
}

func TestDeliverPersistsBeforeDispatch(t *testing.T) {
	repository := &memoryRepository{}
	dispatcher := &flakyDispatcher{}
	service := notification.NewService(repository, dispatcher, noopLogger{})

	intent := notification.NewIntent(1, 2, 3, notification.KindPriceDrop)

	if err := service.Deliver(context.Background(), intent); err != nil {
		t.Fatalf("Invalid result, got error: %v.", err)
	}

	if len(repository.saved) != 1 {
		t.Errorf("Invalid saved count, got: %d, instead of: %d.", len(repository.saved), 1)
	}

	if len(repository.sent) != 1 || repository.sent[0] != intent.Id {
		t.Errorf("Invalid sent marks: %v.", repository.sent)
	}

	if len(dispatcher.delivered) != 1 {
		t.Errorf("Invalid delivered count, got: %d, instead of: %d.", len(dispatcher.delivered), 1)
	}
}

func TestDeliverMarksFailureButKeepsIntent(t *testing.T) {
	repository := &memoryRepository{}
	dispatcher := &flakyDispatcher{err: errors.New("chat unreachable")}
	service := notification.NewService(repository, dispatcher, noopLogger{})

	intent := notification.NewIntent(1, 2, 3, notification.KindPriceThreshold)

	if err := service.Deliver(context.Background(), intent); err == nil {
		t.Fatal("Invalid result, expected an error")
	}

	if len(repository.saved) != 1 {
		t.Errorf("Invalid saved count, got: %d, instead of: %d.", len(repository.saved), 1)
	}

	if len(repository.failed) != 1 || repository.failed[0] != intent.Id {
		t.Errorf("Invalid failed marks: %v.", repository.failed)
	}
}

func TestFlushPending(t *testing.T) {
	repository := &memoryRepository{
		saved: []notification.Intent{
			notification.NewIntent(1, 2, 3, notification.KindPriceDrop),
			notification.NewIntent(4, 5, 6, notification.KindPriceDrop),
		},
	}

	dispatcher := &flakyDispatcher{}
	service := notification.NewService(repository, dispatcher, noopLogger{})

	delivered, err := service.FlushPending(context.Background())
	if err != nil {
		t.Fatalf("Invalid result, got error: %v.", err)
	}

	if delivered != 2 {
		t.Errorf("Invalid delivered count, got: %d, instead of: %d.", delivered, 2)
	}

	if len(repository.sent) != 2 {
		t.Errorf("Invalid sent marks: %v.", repository.sent)
	}
}

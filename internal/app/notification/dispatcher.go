package notification

import "context"

// Dispatcher delivers an intent to the user. Implementations return the
// transport's message id when they have one.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent Intent) (messageId int, err error)
}

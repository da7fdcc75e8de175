package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ka4en3/smartcatcher/internal/app/database"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

type PostgresRepository struct {
	db     *database.Postgres
	logger logger.LoggerInterface
}

func NewPostgresRepository(db *database.Postgres, logger logger.LoggerInterface) PostgresRepository {
	return PostgresRepository{
		db:     db,
		logger: logger,
	}
}

// Add new outbox row to database.
func (r *PostgresRepository) SaveIntent(ctx context.Context, intent Intent) error {
	sql := `INSERT INTO notifications (
		id,
		user_id,
		subscription_id,
		product_id,
		brand_name,
		kind,
		title,
		message,
		old_price,
		new_price,
		currency,
		status,
		created_at
	) VALUES (
		@id,
		@user_id,
		@subscription_id,
		@product_id,
		@brand_name,
		@kind,
		@title,
		@message,
		@old_price,
		@new_price,
		@currency,
		@status,
		@created_at
	)`

	args := pgx.NamedArgs{
		"id":              intent.Id,
		"user_id":         intent.UserId,
		"subscription_id": intent.SubscriptionId,
		"product_id":      intent.ProductId,
		"brand_name":      nullableString(intent.BrandName),
		"kind":            intent.Kind,
		"title":           intent.Title,
		"message":         intent.Message,
		"old_price":       intent.OldPrice,
		"new_price":       intent.NewPrice,
		"currency":        intent.Currency,
		"status":          intent.Status,
		"created_at":      intent.CreatedAt,
	}

	_, err := r.db.Connection.Exec(ctx, sql, args)
	if err != nil {
		r.logger.Println("Unable to save notification:", err)
	}

	return err
}

// Find pending outbox rows, oldest first.
func (r *PostgresRepository) FindPending(ctx context.Context, limit int) ([]Intent, error) {
	sql := `SELECT * FROM notifications
		WHERE status = @status
		ORDER BY created_at ASC
		LIMIT @limit`

	args := pgx.NamedArgs{
		"status": StatusPending,
		"limit":  limit,
	}

	rows, err := r.db.Connection.Query(ctx, sql, args)
	if err != nil {
		r.logger.Println("Unable to execute query:", err)
		return nil, err
	}

	models, err := pgx.CollectRows(rows, r.rowToModel)
	if err != nil {
		r.logger.Println("Unable to collect rows:", err)
		return nil, err
	}

	return models, nil
}

// Mark outbox row delivered.
func (r *PostgresRepository) MarkSent(ctx context.Context, id uuid.UUID, messageId int) error {
	sql := `UPDATE notifications SET (
		status,
		telegram_message_id,
		sent_at
	)=(
		@status,
		@telegram_message_id,
		@sent_at
	) WHERE id = @id`

	args := pgx.NamedArgs{
		"id":                  id,
		"status":              StatusSent,
		"telegram_message_id": messageId,
		"sent_at":             time.Now(),
	}

	_, err := r.db.Connection.Exec(ctx, sql, args)

	return err
}

// Mark outbox row undeliverable.
func (r *PostgresRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	sql := "UPDATE notifications SET status = @status WHERE id = @id"

	args := pgx.NamedArgs{
		"id":     id,
		"status": StatusFailed,
	}

	_, err := r.db.Connection.Exec(ctx, sql, args)

	return err
}

// Resolve user's chat id for delivery.
func (r *PostgresRepository) ChatIdForUser(ctx context.Context, userId int64) (int64, error) {
	sql := "SELECT telegram_chat_id FROM users WHERE id = @id"

	args := pgx.NamedArgs{
		"id": userId,
	}

	row := r.db.Connection.QueryRow(ctx, sql, args)

	var chatId int64
	if err := row.Scan(&chatId); err != nil {
		return 0, err
	}

	return chatId, nil
}

// Scan data from row to model.
func (r *PostgresRepository) rowToModel(row pgx.CollectableRow) (Intent, error) {
	model := Intent{}

	var brandName *string
	var telegramMessageId *int

	err := row.Scan(
		&model.Id,
		&model.UserId,
		&model.SubscriptionId,
		&model.ProductId,
		&brandName,
		&model.Kind,
		&model.Title,
		&model.Message,
		&model.OldPrice,
		&model.NewPrice,
		&model.Currency,
		&model.Status,
		&telegramMessageId,
		&model.CreatedAt,
		&model.SentAt,
	)

	if brandName != nil {
		model.BrandName = *brandName
	}

	return model, err
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

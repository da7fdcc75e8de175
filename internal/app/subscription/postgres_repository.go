package subscription

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

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

// Find model by id.
func (r *PostgresRepository) FindById(ctx context.Context, id int64) (Subscription, error) {
	sql := "SELECT * FROM subscriptions WHERE id = @id"

	args := pgx.NamedArgs{
		"id": id,
	}

	return r.fetchModel(ctx, sql, args)
}

// Find active subscriptions watching a concrete product.
func (r *PostgresRepository) FindForProduct(ctx context.Context, productId int64) ([]Subscription, error) {
	sql := `SELECT * FROM subscriptions
		WHERE is_active = TRUE AND type = @type AND product_id = @product_id`

	args := pgx.NamedArgs{
		"type":       TypeProduct,
		"product_id": productId,
	}

	return r.fetchModels(ctx, sql, args)
}

// Find active subscriptions watching a brand.
func (r *PostgresRepository) FindForBrand(ctx context.Context, brandName string) ([]Subscription, error) {
	sql := `SELECT * FROM subscriptions
		WHERE is_active = TRUE AND type = @type AND LOWER(brand_name) = LOWER(@brand_name)`

	args := pgx.NamedArgs{
		"type":       TypeBrand,
		"brand_name": brandName,
	}

	return r.fetchModels(ctx, sql, args)
}

// Find user's active subscriptions with limit and offset.
func (r *PostgresRepository) FindForUser(ctx context.Context, userId int64, page int, perPage int) []Subscription {
	sql := `SELECT * FROM subscriptions
		WHERE is_active = TRUE AND user_id = @user_id
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"user_id": userId,
		"limit":   perPage,
		"offset":  (page - 1) * perPage,
	}

	models, err := r.fetchModels(ctx, sql, args)
	if err != nil {
		return []Subscription{}
	}

	return models
}

// Get user's active subscriptions count.
func (r *PostgresRepository) GetCountForUser(ctx context.Context, userId int64) int {
	sql := "SELECT COUNT(*) FROM subscriptions WHERE is_active = TRUE AND user_id = @user_id"

	args := pgx.NamedArgs{
		"user_id": userId,
	}

	row := r.db.Connection.QueryRow(ctx, sql, args)

	var count int
	if err := row.Scan(&count); err != nil {
		r.logger.Println("Unable to count subscriptions:", err)
		return 0
	}

	return count
}

// Add new item to database.
func (r *PostgresRepository) Insert(ctx context.Context, model Subscription) (Subscription, error) {
	sql := `INSERT INTO subscriptions (
		user_id,
		type,
		product_id,
		brand_name,
		price_threshold,
		percentage_threshold,
		is_active,
		created_at
	) VALUES (
		@user_id,
		@type,
		@product_id,
		@brand_name,
		@price_threshold,
		@percentage_threshold,
		@is_active,
		@created_at
	) RETURNING id`

	args := pgx.NamedArgs{
		"user_id":              model.UserId,
		"type":                 model.Type,
		"product_id":           model.ProductId,
		"brand_name":           nullableString(model.BrandName),
		"price_threshold":      nullableDecimal(model.PriceThreshold),
		"percentage_threshold": model.PercentageThreshold,
		"is_active":            true,
		"created_at":           time.Now(),
	}

	row := r.db.Connection.QueryRow(ctx, sql, args)

	var id int64
	if err := row.Scan(&id); err != nil {
		return Subscription{}, err
	}

	return r.FindById(ctx, id)
}

// Replace both thresholds with the model's values.
func (r *PostgresRepository) UpdateThresholds(ctx context.Context, model Subscription) (Subscription, error) {
	sql := `UPDATE subscriptions SET (
		price_threshold,
		percentage_threshold,
		updated_at
	)=(
		@price_threshold,
		@percentage_threshold,
		@updated_at
	) WHERE id = @id`

	args := pgx.NamedArgs{
		"id":                   model.Id,
		"price_threshold":      nullableDecimal(model.PriceThreshold),
		"percentage_threshold": model.PercentageThreshold,
		"updated_at":           time.Now(),
	}

	if _, err := r.db.Connection.Exec(ctx, sql, args); err != nil {
		return Subscription{}, err
	}

	return r.FindById(ctx, model.Id)
}

// Soft-disable model, it no longer matches any price evaluation.
func (r *PostgresRepository) SoftDelete(ctx context.Context, id int64) bool {
	sql := "UPDATE subscriptions SET is_active = FALSE, updated_at = @updated_at WHERE id = @id"

	args := pgx.NamedArgs{
		"id":         id,
		"updated_at": time.Now(),
	}

	_, err := r.db.Connection.Exec(ctx, sql, args)

	return err == nil
}

// Execute SQL and fetch single model.
func (r *PostgresRepository) fetchModel(ctx context.Context, sql string, args pgx.NamedArgs) (Subscription, error) {
	model := Subscription{}

	rows, err := r.db.Connection.Query(ctx, sql, args)
	if err != nil {
		return model, err
	}

	model, err = pgx.CollectExactlyOneRow(rows, r.rowToModel)
	if err == pgx.ErrNoRows {
		return Subscription{}, nil
	}

	if err != nil {
		return Subscription{}, err
	}

	return model, nil
}

// Execute SQL and fetch multiple models.
func (r *PostgresRepository) fetchModels(ctx context.Context, sql string, args pgx.NamedArgs) ([]Subscription, error) {
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

// Scan data from row to model.
func (r *PostgresRepository) rowToModel(row pgx.CollectableRow) (Subscription, error) {
	model := Subscription{}

	var brandName *string

	err := row.Scan(
		&model.Id,
		&model.UserId,
		&model.Type,
		&model.ProductId,
		&brandName,
		&model.PriceThreshold,
		&model.PercentageThreshold,
		&model.IsActive,
		&model.CreatedAt,
		&model.UpdatedAt,
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

func nullableDecimal(value *decimal.Decimal) any {
	if value == nil {
		return nil
	}

	return *value
}

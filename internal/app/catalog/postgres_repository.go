package catalog

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
func (r *PostgresRepository) FindById(ctx context.Context, id int64) (TrackedProduct, error) {
	sql := "SELECT * FROM products WHERE id = @id"

	args := pgx.NamedArgs{
		"id": id,
	}

	return r.fetchModel(ctx, sql, args)
}

// Find model by normalized URL.
func (r *PostgresRepository) FindByUrl(ctx context.Context, url string) (TrackedProduct, error) {
	sql := "SELECT * FROM products WHERE url = @url"

	args := pgx.NamedArgs{
		"url": url,
	}

	return r.fetchModel(ctx, sql, args)
}

// Find active models in staleness order, never-scanned first.
func (r *PostgresRepository) FindDueForScan(ctx context.Context, limit int) ([]TrackedProduct, error) {
	sql := `SELECT * FROM products
		WHERE is_active = TRUE
		ORDER BY last_scraped_at ASC NULLS FIRST
		LIMIT @limit`

	args := pgx.NamedArgs{
		"limit": limit,
	}

	return r.fetchModels(ctx, sql, args)
}

// Find active models sharing a brand name.
func (r *PostgresRepository) FindActiveByBrand(ctx context.Context, brand string) ([]TrackedProduct, error) {
	sql := "SELECT * FROM products WHERE is_active = TRUE AND brand = @brand"

	args := pgx.NamedArgs{
		"brand": brand,
	}

	return r.fetchModels(ctx, sql, args)
}

// Add new item to database.
func (r *PostgresRepository) Insert(ctx context.Context, model TrackedProduct) (TrackedProduct, error) {
	sql := `INSERT INTO products (
		url,
		title,
		brand,
		current_price,
		currency,
		store_name,
		external_id,
		image_url,
		is_active,
		created_at
	) VALUES (
		@url,
		@title,
		@brand,
		@current_price,
		@currency,
		@store_name,
		@external_id,
		@image_url,
		@is_active,
		@created_at
	) RETURNING id`

	args := pgx.NamedArgs{
		"url":           model.Url,
		"title":         model.Title,
		"brand":         nullableString(model.Brand),
		"current_price": nullablePrice(model.CurrentPrice),
		"currency":      model.Currency,
		"store_name":    model.StoreName,
		"external_id":   nullableString(model.ExternalId),
		"image_url":     nullableString(model.ImageUrl),
		"is_active":     true,
		"created_at":    time.Now(),
	}

	row := r.db.Connection.QueryRow(ctx, sql, args)

	var id int64
	if err := row.Scan(&id); err != nil {
		return TrackedProduct{}, err
	}

	return r.FindById(ctx, id)
}

// Update current price and append history row in a single transaction.
func (r *PostgresRepository) RecordPriceChange(ctx context.Context, productId int64, price decimal.Decimal, currency string) error {
	transaction, err := r.db.Connection.Begin(ctx)
	if err != nil {
		r.logger.Println("Unable to begin transaction:", err)
		return err
	}

	defer transaction.Rollback(ctx)

	updateSql := `UPDATE products SET (
		current_price,
		currency,
		updated_at
	)=(
		@current_price,
		@currency,
		@updated_at
	) WHERE id = @id`

	updateArgs := pgx.NamedArgs{
		"id":            productId,
		"current_price": price,
		"currency":      currency,
		"updated_at":    time.Now(),
	}

	if _, err := transaction.Exec(ctx, updateSql, updateArgs); err != nil {
		return err
	}

	insertSql := `INSERT INTO price_history (product_id, price, currency, recorded_at)
		VALUES (@product_id, @price, @currency, @recorded_at)`

	insertArgs := pgx.NamedArgs{
		"product_id":  productId,
		"price":       price,
		"currency":    currency,
		"recorded_at": time.Now(),
	}

	if _, err := transaction.Exec(ctx, insertSql, insertArgs); err != nil {
		return err
	}

	return transaction.Commit(ctx)
}

// Advance last-scan timestamp regardless of price outcome.
func (r *PostgresRepository) MarkScanned(ctx context.Context, productId int64) error {
	sql := "UPDATE products SET last_scraped_at = @last_scraped_at WHERE id = @id"

	args := pgx.NamedArgs{
		"id":              productId,
		"last_scraped_at": time.Now(),
	}

	_, err := r.db.Connection.Exec(ctx, sql, args)

	return err
}

// Fetch price samples, newest first.
func (r *PostgresRepository) PriceHistory(ctx context.Context, productId int64, limit int) ([]PriceSample, error) {
	sql := `SELECT id, product_id, price, currency, recorded_at FROM price_history
		WHERE product_id = @product_id
		ORDER BY recorded_at DESC
		LIMIT @limit`

	args := pgx.NamedArgs{
		"product_id": productId,
		"limit":      limit,
	}

	rows, err := r.db.Connection.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (PriceSample, error) {
		sample := PriceSample{}
		err := row.Scan(&sample.Id, &sample.ProductId, &sample.Price, &sample.Currency, &sample.RecordedAt)
		return sample, err
	})
}

// Soft-disable model, it is never selected for scanning again.
func (r *PostgresRepository) Deactivate(ctx context.Context, productId int64) bool {
	sql := "UPDATE products SET is_active = FALSE, updated_at = @updated_at WHERE id = @id"

	args := pgx.NamedArgs{
		"id":         productId,
		"updated_at": time.Now(),
	}

	_, err := r.db.Connection.Exec(ctx, sql, args)

	return err == nil
}

// Execute SQL and fetch single model.
func (r *PostgresRepository) fetchModel(ctx context.Context, sql string, args pgx.NamedArgs) (TrackedProduct, error) {
	model := TrackedProduct{}

	rows, err := r.db.Connection.Query(ctx, sql, args)
	if err != nil {
		return model, err
	}

	model, err = pgx.CollectExactlyOneRow(rows, r.rowToModel)
	if err == pgx.ErrNoRows {
		return TrackedProduct{}, nil
	}

	if err != nil {
		return TrackedProduct{}, err
	}

	return model, nil
}

// Execute SQL and fetch multiple models.
func (r *PostgresRepository) fetchModels(ctx context.Context, sql string, args pgx.NamedArgs) ([]TrackedProduct, error) {
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
func (r *PostgresRepository) rowToModel(row pgx.CollectableRow) (TrackedProduct, error) {
	model := TrackedProduct{}

	var brand, externalId, imageUrl *string
	var currentPrice *decimal.Decimal

	err := row.Scan(
		&model.Id,
		&model.Url,
		&model.Title,
		&brand,
		&currentPrice,
		&model.Currency,
		&model.StoreName,
		&externalId,
		&imageUrl,
		&model.IsActive,
		&model.LastScrapedAt,
		&model.CreatedAt,
		&model.UpdatedAt,
	)

	if brand != nil {
		model.Brand = *brand
	}
	if externalId != nil {
		model.ExternalId = *externalId
	}
	if imageUrl != nil {
		model.ImageUrl = *imageUrl
	}
	model.CurrentPrice = currentPrice

	return model, err
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func nullablePrice(value *decimal.Decimal) any {
	if value == nil {
		return nil
	}

	return *value
}

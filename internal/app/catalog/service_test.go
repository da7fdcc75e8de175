package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ka4en3/smartcatcher/internal/app/catalog"
	"github.com/ka4en3/smartcatcher/internal/app/scraping"
)

type noopLogger struct{}

func (l noopLogger) Println(v ...any) {}

type memoryRepository struct {
	lastLookupUrl string
	inserted      []catalog.TrackedProduct
}

func (r *memoryRepository) FindById(ctx context.Context, id int64) (catalog.TrackedProduct, error) {
	return catalog.TrackedProduct{}, nil
}

func (r *memoryRepository) FindByUrl(ctx context.Context, url string) (catalog.TrackedProduct, error) {
	r.lastLookupUrl = url

	return catalog.TrackedProduct{}, nil
}

func (r *memoryRepository) FindDueForScan(ctx context.Context, limit int) ([]catalog.TrackedProduct, error) {
	return nil, nil
}

func (r *memoryRepository) FindActiveByBrand(ctx context.Context, brand string) ([]catalog.TrackedProduct, error) {
	return nil, nil
}

func (r *memoryRepository) Insert(ctx context.Context, model catalog.TrackedProduct) (catalog.TrackedProduct, error) {
	model.Id = int64(len(r.inserted) + 1)
	r.inserted = append(r.inserted, model)

	return model, nil
}

func (r *memoryRepository) RecordPriceChange(ctx context.Context, productId int64, price decimal.Decimal, currency string) error {
	return nil
}

func (r *memoryRepository) MarkScanned(ctx context.Context, productId int64) error {
	return nil
}

func (r *memoryRepository) PriceHistory(ctx context.Context, productId int64, limit int) ([]catalog.PriceSample, error) {
	return nil, nil
}

func (r *memoryRepository) Deactivate(ctx context.Context, productId int64) bool {
	return true
}

func TestFindByUrlNormalizes(t *testing.T) {
	repository := &memoryRepository{}
	service := catalog.NewService(repository, noopLogger{})

	if _, err := service.FindByUrl(context.Background(), "  HTTPS://Shop.Example/Item/1  "); err != nil {
		t.Fatalf("Invalid result, got error: %v.", err)
	}

	expected := "https://shop.example/item/1"
	if repository.lastLookupUrl != expected {
		t.Errorf("Invalid lookup URL, got: %s, instead of: %s.", repository.lastLookupUrl, expected)
	}
}

func TestCreateFromListing(t *testing.T) {
	repository := &memoryRepository{}
	service := catalog.NewService(repository, noopLogger{})

	price := decimal.NewFromInt(42)
	listing := scraping.ScrapedListing{
		Title:      "Smart Watch",
		Brand:      "TechGear",
		Price:      &price,
		Currency:   "USD",
		ExternalId: "w-42",
	}

	model, err := service.CreateFromListing(context.Background(), "HTTPS://Shop.Example/Watch", listing, "demo")
	if err != nil {
		t.Fatalf("Invalid result, got error: %v.", err)
	}

	if !model.Exists() {
		t.Error("Invalid result, model has no id")
	}

	if model.Url != "https://shop.example/watch" {
		t.Errorf("Invalid URL, got: %s.", model.Url)
	}

	if model.StoreName != "demo" {
		t.Errorf("Invalid store, got: %s, instead of: %s.", model.StoreName, "demo")
	}

	if !model.HasPrice() {
		t.Error("Invalid result, model has no price")
	}
}

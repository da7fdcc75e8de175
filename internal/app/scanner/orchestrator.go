package scanner

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ka4en3/smartcatcher/internal/app/catalog"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
	"github.com/ka4en3/smartcatcher/internal/app/notification"
	"github.com/ka4en3/smartcatcher/internal/app/scraping"
)

type ProductSource interface {
	FindById(ctx context.Context, id int64) (catalog.TrackedProduct, error)
	DueForScan(ctx context.Context, limit int) ([]catalog.TrackedProduct, error)
	FindByUrl(ctx context.Context, url string) (catalog.TrackedProduct, error)
	ActiveByBrand(ctx context.Context, brand string) ([]catalog.TrackedProduct, error)
	CreateFromListing(ctx context.Context, url string, listing scraping.ScrapedListing, storeName string) (catalog.TrackedProduct, error)
	RecordPriceChange(ctx context.Context, productId int64, price decimal.Decimal, currency string) error
	MarkScanned(ctx context.Context, productId int64) error
}

type Notifier interface {
	Deliver(ctx context.Context, intent notification.Intent) error
}

// ScanReport counts one batch run. Checked only counts products whose scrape
// succeeded.
type ScanReport struct {
	Checked int
	Updated int
}

// Orchestrator drives scan batches: pick stale products, scrape each through
// its adapter, persist price changes and fan matching notifications out. A
// product that fails keeps its stale timestamp and surfaces again next batch.
type Orchestrator struct {
	products      ProductSource
	router        scraping.Router
	evaluator     Evaluator
	notifications Notifier
	logger        logger.LoggerInterface
	batchLimit    int
}

func NewOrchestrator(products ProductSource, router scraping.Router, evaluator Evaluator, notifications Notifier, logger logger.LoggerInterface, batchLimit int) Orchestrator {
	return Orchestrator{
		products:      products,
		router:        router,
		evaluator:     evaluator,
		notifications: notifications,
		logger:        logger,
		batchLimit:    batchLimit,
	}
}

// ScanBatch processes the stalest active products, never-scanned first.
func (o *Orchestrator) ScanBatch(ctx context.Context) (ScanReport, error) {
	products, err := o.products.DueForScan(ctx, o.batchLimit)
	if err != nil {
		return ScanReport{}, err
	}

	return o.scanProducts(ctx, products), nil
}

// ScanBrand processes every active product of one brand.
func (o *Orchestrator) ScanBrand(ctx context.Context, brand string) (ScanReport, error) {
	products, err := o.products.ActiveByBrand(ctx, brand)
	if err != nil {
		return ScanReport{}, err
	}

	return o.scanProducts(ctx, products), nil
}

// ScanOne scrapes a single URL, creating the tracked product when it is new.
func (o *Orchestrator) ScanOne(ctx context.Context, url string) (catalog.TrackedProduct, error) {
	adapter, err := o.router.Resolve(url)
	if err != nil {
		return catalog.TrackedProduct{}, err
	}

	product, err := o.products.FindByUrl(ctx, url)
	if err != nil {
		return catalog.TrackedProduct{}, err
	}

	if !product.Exists() {
		listing, err := adapter.Scrape(ctx, url)
		if err != nil {
			return catalog.TrackedProduct{}, err
		}

		return o.products.CreateFromListing(ctx, url, listing, adapter.Name())
	}

	if _, err := o.scanProduct(ctx, product, adapter); err != nil {
		return catalog.TrackedProduct{}, err
	}

	return o.products.FindByUrl(ctx, url)
}

// Scan products one by one. A failing product never aborts the batch.
func (o *Orchestrator) scanProducts(ctx context.Context, products []catalog.TrackedProduct) ScanReport {
	report := ScanReport{}

	for _, product := range products {
		adapter, err := o.router.Resolve(product.Url)
		if err != nil {
			o.logger.Println("Skipping product", product.Id, ":", err)
			continue
		}

		updated, err := o.scanProduct(ctx, product, adapter)
		if err != nil {
			o.logger.Println("Unable to scan product", product.Id, ":", err)
			continue
		}

		report.Checked++
		if updated {
			report.Updated++
		}
	}

	o.logger.Println("Scan finished, checked:", report.Checked, "updated:", report.Updated)

	return report
}

// Run one product through the scan cycle. Returns whether the price changed.
func (o *Orchestrator) scanProduct(ctx context.Context, product catalog.TrackedProduct, adapter scraping.Adapter) (bool, error) {
	cycle := newScanCycle()

	cycle.advance(ctx, eventScrape)

	listing, err := adapter.Scrape(ctx, product.Url)
	if err != nil {
		return false, fmt.Errorf("%s phase: %w", cycle.phase(), err)
	}

	cycle.advance(ctx, eventCompare)

	updated := false

	if listing.Price != nil && o.priceChanged(product, *listing.Price) {
		cycle.advance(ctx, eventPersist)

		if err := o.products.RecordPriceChange(ctx, product.Id, *listing.Price, listing.Currency); err != nil {
			return false, fmt.Errorf("%s phase: %w", cycle.phase(), err)
		}

		updated = true

		cycle.advance(ctx, eventNotify)
		o.fanOut(ctx, product, *listing.Price, listing.Currency)
	}

	cycle.advance(ctx, eventMark)

	if err := o.products.MarkScanned(ctx, product.Id); err != nil {
		return updated, fmt.Errorf("%s phase: %w", cycle.phase(), err)
	}

	cycle.advance(ctx, eventFinish)

	return updated, nil
}

func (o *Orchestrator) priceChanged(product catalog.TrackedProduct, newPrice decimal.Decimal) bool {
	return product.CurrentPrice == nil || !newPrice.Equal(*product.CurrentPrice)
}

// EvaluateAndNotify re-runs subscription matching for a price change and
// pushes every resulting intent out. Exposed for on-demand re-evaluation.
func (o *Orchestrator) EvaluateAndNotify(ctx context.Context, productId int64, oldPrice *decimal.Decimal, newPrice decimal.Decimal, currency string) ([]notification.Intent, error) {
	product, err := o.products.FindById(ctx, productId)
	if err != nil {
		return nil, err
	}

	return o.deliverIntents(ctx, o.evaluator.Evaluate(ctx, product, oldPrice, newPrice, currency)), nil
}

// Evaluate subscriptions and push out every matching intent. Delivery errors
// are logged, the outbox keeps failed intents for retry.
func (o *Orchestrator) fanOut(ctx context.Context, product catalog.TrackedProduct, newPrice decimal.Decimal, currency string) {
	o.deliverIntents(ctx, o.evaluator.Evaluate(ctx, product, product.CurrentPrice, newPrice, currency))
}

func (o *Orchestrator) deliverIntents(ctx context.Context, intents []notification.Intent) []notification.Intent {
	for _, intent := range intents {
		if err := o.notifications.Deliver(ctx, intent); err != nil {
			o.logger.Println("Unable to deliver notification for subscription", intent.SubscriptionId, ":", err)
		}
	}

	return intents
}

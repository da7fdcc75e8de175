package app

import (
	"context"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ka4en3/smartcatcher/internal/app/catalog"
	"github.com/ka4en3/smartcatcher/internal/app/config"
	"github.com/ka4en3/smartcatcher/internal/app/database"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
	"github.com/ka4en3/smartcatcher/internal/app/notification"
	"github.com/ka4en3/smartcatcher/internal/app/scanner"
	"github.com/ka4en3/smartcatcher/internal/app/scraping"
	"github.com/ka4en3/smartcatcher/internal/app/subscription"
)

// WorkerApp is the long-running scan process: every interval it picks the
// stalest tracked products, re-scrapes them and fans price alerts out.
type WorkerApp struct {
	config        config.Config
	db            *database.Postgres
	orchestrator  scanner.Orchestrator
	notifications notification.Service
	logger        logger.LoggerInterface
	mutex         *sync.Mutex
}

func NewWorkerApp(cfg config.Config, logger logger.LoggerInterface) WorkerApp {
	db, err := database.NewPostgres(cfg.DatabaseDsn)
	if err != nil {
		log.Fatalln(err)
	}

	productRepository := catalog.NewPostgresRepository(db, logger)
	products := catalog.NewService(&productRepository, logger)

	subscriptionRepository := subscription.NewPostgresRepository(db, logger)
	subscriptions := subscription.NewService(&subscriptionRepository, logger)

	notificationRepository := notification.NewPostgresRepository(db, logger)
	notifications := notification.NewService(
		&notificationRepository,
		newDispatcher(cfg, &notificationRepository, logger),
		logger,
	)

	fetcher := scraping.NewFetcher(scraping.FetchConfig{
		UserAgent:         cfg.ScraperUserAgent,
		Timeout:           cfg.ScraperTimeout,
		RequestDelay:      cfg.ScraperRequestDelay,
		RetryAttempts:     cfg.ScraperRetryAttempts,
		RateLimitFallback: cfg.RateLimitFallback,
	}, logger)

	router := scraping.NewRouter(
		scraping.NewDemoAdapter(),
		scraping.NewWebScraperIOAdapter(fetcher, logger),
		scraping.NewEbayAdapter(fetcher, scraping.EbayConfig{
			ClientId:     cfg.EbayClientId,
			ClientSecret: cfg.EbayClientSecret,
			BaseUrl:      cfg.EbayBaseUrl,
		}, logger),
		scraping.NewEtsyAdapter(fetcher, scraping.EtsyConfig{
			ApiKey:  cfg.EtsyApiKey,
			BaseUrl: cfg.EtsyBaseUrl,
		}, logger),
	)

	evaluator := scanner.NewEvaluator(&subscriptions, logger)
	orchestrator := scanner.NewOrchestrator(&products, router, evaluator, &notifications, logger, cfg.ScanBatchLimit)

	return WorkerApp{
		config:        cfg,
		db:            db,
		orchestrator:  orchestrator,
		notifications: notifications,
		logger:        logger,
		mutex:         new(sync.Mutex),
	}
}

// Run scans immediately, then on every tick until the process dies.
func (app *WorkerApp) Run() {
	defer app.db.CloseConnection()

	app.logger.Println("Worker started, scanning every", app.config.ScanIntervalMinutes, "minutes")

	app.runCycle()

	ticker := time.NewTicker(time.Duration(app.config.ScanIntervalMinutes) * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		app.runCycle()
	}
}

// Run one batch. Overlapping runs are skipped, a slow batch must finish
// before the next one starts.
func (app *WorkerApp) runCycle() {
	if !app.mutex.TryLock() {
		app.logger.Println("Previous scan is still running, skipping this tick")
		return
	}

	defer app.mutex.Unlock()

	ctx := context.Background()

	if delivered, err := app.notifications.FlushPending(ctx); err != nil {
		app.logger.Println("Unable to flush pending notifications:", err)
	} else if delivered > 0 {
		app.logger.Println("Delivered", delivered, "pending notifications")
	}

	if _, err := app.orchestrator.ScanBatch(ctx); err != nil {
		app.logger.Println("Scan batch failed:", err)
	}
}

// Pick delivery transport: Telegram when a token is configured, log output
// otherwise.
func newDispatcher(cfg config.Config, repository notification.Repository, logger logger.LoggerInterface) notification.Dispatcher {
	if cfg.TelegramBotToken == "" {
		logger.Println("No bot token configured, notifications go to the log")
		return notification.NewLogDispatcher(logger)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatalln("Unable to connect to Telegram:", err)
	}

	logger.Println("Dispatching notifications as @", bot.Self.UserName)

	return notification.NewTelegramDispatcher(bot, repository, logger)
}

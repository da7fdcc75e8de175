package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ka4en3/smartcatcher/internal/app/config"
	"github.com/ka4en3/smartcatcher/internal/app/database"
	"github.com/ka4en3/smartcatcher/internal/app/helpers"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
)

const ConsoleAppKeyword = "catcher101"

type ConsoleApp struct {
	config config.Config
	db     *database.Postgres
	logger logger.LoggerInterface
}

func NewConsoleApp(cfg config.Config, logger logger.LoggerInterface) (ConsoleApp, error) {
	return ConsoleApp{
		config: cfg,
		logger: logger,
	}, nil
}

func (app ConsoleApp) Run() error {
	fmt.Println("starting console...")

	var err error
	app.db, err = database.NewPostgres(app.config.DatabaseDsn)

	defer app.db.CloseConnection()

	if err != nil {
		return err
	}

	app.listenToCommands()

	return nil
}

func (app ConsoleApp) listenToCommands() {
	args := os.Args[1:]

	if len(args) < 2 {
		fmt.Println("Not enough arguments")
		return
	}

	if args[0] != ConsoleAppKeyword {
		fmt.Println("Invalid keyword")
		return
	}

	command := args[1]

	switch command {
	case "migrate":
		app.db.Migrate()
	case "migrate:rollback":
		app.db.RollbackMigrations()
	case "create:migration":
		if (len(args) < 3) || (strings.TrimSpace(args[2]) == "") {
			fmt.Printf("No migration name given")
			return
		}

		database.CreateNewMigration(strings.TrimSpace(args[2]))
	case "scan:url":
		if (len(args) < 3) || (strings.TrimSpace(args[2]) == "") {
			fmt.Printf("No URL given")
			return
		}

		app.scanUrl(strings.TrimSpace(args[2]))
	case "scan:brand":
		if (len(args) < 3) || (strings.TrimSpace(args[2]) == "") {
			fmt.Printf("No brand name given")
			return
		}

		app.scanBrand(strings.TrimSpace(args[2]))
	default:
		fmt.Printf("Unknown command \"%s\"\n", command)
	}
}

// Scrape one URL on demand, tracking the product when it is new.
func (app ConsoleApp) scanUrl(url string) {
	worker := NewWorkerApp(app.config, app.logger)

	product, err := worker.orchestrator.ScanOne(context.Background(), url)
	if err != nil {
		fmt.Println("Scan failed:", err)
		return
	}

	price := "no price yet"
	if product.CurrentPrice != nil {
		price = helpers.FormatMoney(*product.CurrentPrice, product.Currency)
	}

	fmt.Println("Tracked:", product.Title, "-", price)
}

// Re-scrape every active product of a brand on demand.
func (app ConsoleApp) scanBrand(brand string) {
	worker := NewWorkerApp(app.config, app.logger)

	report, err := worker.orchestrator.ScanBrand(context.Background(), brand)
	if err != nil {
		fmt.Println("Scan failed:", err)
		return
	}

	fmt.Println("Checked:", report.Checked, "updated:", report.Updated)
}

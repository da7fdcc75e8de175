package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ka4en3/smartcatcher/internal/app/config"
	"github.com/ka4en3/smartcatcher/internal/app/helpers"
	"github.com/ka4en3/smartcatcher/internal/app/logger"
	"github.com/ka4en3/smartcatcher/internal/pkg/app"
)

func main() {
	if err := loadEnv(); err != nil {
		log.Fatalln("Unable to load .env file:", err)
	}

	if checkIsCliMode() {
		runConsoleApp()
		return
	}

	runWorkerApp()
}

func loadEnv() error {
	rootDir, err := helpers.GetRootDir()

	if err != nil {
		return err
	}

	filePath := filepath.Join(rootDir, ".env")

	return godotenv.Load(filePath)
}

func checkIsCliMode() bool {
	args := os.Args[1:]

	return len(args) > 1 && args[0] == app.ConsoleAppKeyword
}

func runConsoleApp() {
	logger := logger.NewFileLogger("console.log", false)

	app, err := app.NewConsoleApp(config.Load(), logger)
	if err != nil {
		log.Fatal(err)
	}

	err = app.Run()
	if err != nil {
		log.Fatal(err)
	}
}

func runWorkerApp() {
	logger := logger.NewFileLogger("worker.log", false)

	app := app.NewWorkerApp(config.Load(), logger)
	app.Run()
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkhoard/linkhoard/app/ai"
	"github.com/linkhoard/linkhoard/app/api"
	"github.com/linkhoard/linkhoard/app/bot"
	"github.com/linkhoard/linkhoard/app/cfg"
	"github.com/linkhoard/linkhoard/app/database"
	"github.com/linkhoard/linkhoard/app/extract"
	"github.com/linkhoard/linkhoard/app/pipeline"
	"github.com/linkhoard/linkhoard/app/platform"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Linkhoard server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	collectionRepo := database.NewCollectionRepository(db)
	itemRepo := database.NewItemRepository(db)

	classifier := platform.NewClassifier()
	if appCfg.PatternsFile != "" {
		if err := classifier.LoadCustomPatterns(appCfg.PatternsFile); err != nil {
			slog.Error("Failed to load classification patterns", "file", appCfg.PatternsFile, "error", err)
			os.Exit(1)
		}
	}

	httpClient := &http.Client{}
	aiClient := ai.NewClient(appCfg.AnthropicAPIKey, appCfg.AnthropicModel)

	processor := pipeline.NewProcessor(
		classifier,
		extract.NewExtractor(httpClient, appCfg.UserAgent),
		extract.NewTranscriptFetcher(httpClient, appCfg.UserAgent),
		ai.NewSummarizer(aiClient),
		ai.NewAnalyzer(aiClient),
		pipeline.NewCollectionResolver(collectionRepo),
		itemRepo,
		time.Duration(appCfg.ProcessTimeout)*time.Second,
	)
	importer := pipeline.NewFeedImporter(httpClient, appCfg.UserAgent, processor)

	var botHandler *bot.Handler
	if appCfg.TelegramBotToken != "" {
		botHandler = bot.NewHandler(bot.NewClient(appCfg.TelegramBotToken), processor, appCfg.BaseUrl)
		slog.Info("Telegram bot enabled")
	} else {
		slog.Info("Telegram bot disabled (TELEGRAM_BOT_TOKEN not set)")
	}

	apiHandler := api.NewHandler(collectionRepo, itemRepo, processor, importer, botHandler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey, appCfg.BaseUrl)

	httpServer := &http.Server{
		Addr:        ":" + appCfg.Port,
		Handler:     server,
		ReadTimeout: 30 * time.Second,
		// Writes stay open for the duration of a pipeline run plus the SSE
		// stream, so no write timeout is set here.
		IdleTimeout: 120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Server shutdown complete")
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dbarbosa/libanac/internal/cli"
	"github.com/dbarbosa/libanac/internal/config"
	"github.com/dbarbosa/libanac/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	level := slog.LevelWarn
	if os.Getenv("SINTAC_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := logging.NewSlogLogger(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/conlife/utils"
)

const appName = "conlife"

func main() {
	config, err := utils.ParseArgs(appName, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		utils.PrintUsage(os.Stderr, appName)
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		utils.PrintUsage(os.Stderr, appName)
		os.Exit(2)
	}

	logger, err := utils.NewLogger(os.Stderr, config.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	grid, renderer, stats, err := initializeGame(config, os.Stdout, logger)
	if err != nil {
		logger.Error("failed to initialize game", slog.Any("err", err))
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runGame(ctx, config, grid, renderer, stats, logger); err != nil {
		logger.Error("game stopped", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("shutting down",
		slog.Int("generations", stats.TotalGenerations),
		slog.Duration("runtime", stats.Runtime()),
		slog.Float64("avg_population", stats.AveragePopulation),
	)
}

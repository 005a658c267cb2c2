package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/conlife/model"
	"github.com/sheikhrachel/conlife/utils"
)

// initializeGame builds the grid and stamps every configured placement onto
// it. Any placement error is returned and should abort startup.
func initializeGame(config utils.Config, out io.Writer, logger *slog.Logger) (
	*model.Grid,
	*model.TerminalRenderer,
	*utils.Stats,
	error,
) {
	grid := model.NewGrid(config.Width, config.Height)

	for _, spec := range config.Objects {
		placement, err := model.ParsePlacement(spec)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := placement.Apply(grid); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "[initializeGame] failed to place %q", spec)
		}
		logger.Info("loaded object",
			slog.String("pattern", placement.Pattern.Name()),
			slog.Int("x", placement.X),
			slog.Int("y", placement.Y),
			slog.Int("cells", len(placement.Pattern.LiveCells())),
		)
	}

	logger.Info("grid ready",
		slog.Int("width", grid.Width()),
		slog.Int("height", grid.Height()),
		slog.Int("living", grid.CountLivingCells()),
	)

	return grid, &model.TerminalRenderer{Out: out}, utils.NewStats(), nil
}

// runGame draws the grid every frame and advances it whenever the cadence
// fires, until ctx is cancelled or the generation limit is reached.
func runGame(
	ctx context.Context,
	config utils.Config,
	grid *model.Grid,
	renderer *model.TerminalRenderer,
	stats *utils.Stats,
	logger *slog.Logger,
) error {
	var (
		cadence       = utils.NewCadence(config.SecondsPerGeneration)
		ticker        = time.NewTicker(config.FrameRate)
		lastFrame     = time.Now()
		lastAdvance   = lastFrame
		stagnantCount = 0
	)
	defer ticker.Stop()

	if err := drawFrame(renderer, grid, stats); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastFrame)
			lastFrame = now
			if !cadence.Tick(dt) {
				continue
			}

			stagnantCount = advanceGeneration(grid, stagnantCount, config, logger)
			stats.Update(grid.Generation(), grid.CountLivingCells(), now.Sub(lastAdvance))
			lastAdvance = now

			if err := drawFrame(renderer, grid, stats); err != nil {
				return err
			}

			if config.MaxGenerations > 0 && grid.Generation() >= config.MaxGenerations {
				logger.Info("reached maximum generations limit", slog.Int("limit", config.MaxGenerations))
				return nil
			}
		}
	}
}

// advanceGeneration steps the grid once and tracks how many consecutive
// generations have repeated a recent state.
func advanceGeneration(grid *model.Grid, stagnantCount int, config utils.Config, logger *slog.Logger) int {
	grid.UpdateHistory()
	grid.Advance()

	if !grid.IsStagnant() {
		return 0
	}

	stagnantCount++
	if stagnantCount == config.StagnationThreshold {
		logger.Warn("grid is stagnant",
			slog.Int("generation", grid.Generation()),
			slog.Int("living", grid.CountLivingCells()),
		)
	}
	if grid.CountLivingCells() == 0 && stagnantCount == 1 {
		logger.Info("population extinct", slog.Int("generation", grid.Generation()))
	}
	return stagnantCount
}

// drawFrame clears the screen and renders the grid with a status line
func drawFrame(renderer *model.TerminalRenderer, grid *model.Grid, stats *utils.Stats) error {
	if err := renderer.Clear(); err != nil {
		return errors.Wrap(err, "[drawFrame] failed to clear screen")
	}

	living := grid.CountLivingCells()
	density := float64(living) / float64(grid.Width()*grid.Height()) * 100
	if _, err := fmt.Fprintf(renderer.Out, "Gen: %d | Living: %d | Density: %.1f%% | %.1f gen/sec | Avg Pop: %.1f\n",
		grid.Generation(), living, density, stats.GenerationsPerSecond, stats.AveragePopulation); err != nil {
		return errors.Wrap(err, "[drawFrame] failed to write status")
	}

	return errors.Wrap(renderer.Display(grid), "[drawFrame] failed to render grid")
}

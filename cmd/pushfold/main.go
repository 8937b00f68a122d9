package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/pushfold/app"
	"github.com/luca-patrignani/pushfold/config"
	"github.com/luca-patrignani/pushfold/domain/scenario"
	"github.com/luca-patrignani/pushfold/store"
	"github.com/luca-patrignani/pushfold/store/sqlite"
)

const (
	menuEditor  = "Edit ranges"
	menuTrainer = "Train"
	menuStats   = "Statistics"
	menuReset   = "Reset all ranges"
	menuQuit    = "Quit"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "pushfold: %v\n", err)
		os.Exit(2)
	}

	pterm.DefaultLogger.Level = logLevel(cfg.LogLevel)
	// Create a new slog logger with the default PTerm logger as handler
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pushfold stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	seed, err := cfg.RandSeed()
	if err != nil {
		return err
	}
	logger.Debug("dealer seeded", "seed", seed)
	editor := app.NewEditor(st, logger)
	trainer := app.NewTrainer(st, scenario.NewSampler(rand.New(rand.NewSource(seed))), logger)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Push", pterm.FgGreen.ToStyle()),
		putils.LettersFromStringWithStyle("Fold", pterm.FgRed.ToStyle()),
	).Render()

	filters := scenario.DefaultFilters()
	for {
		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("What do you want to do?").
			WithOptions([]string{menuEditor, menuTrainer, menuStats, menuReset, menuQuit}).
			Show()
		if err != nil {
			return err
		}
		switch choice {
		case menuEditor:
			err = editRanges(ctx, editor)
		case menuTrainer:
			filters, err = train(ctx, trainer, filters)
		case menuStats:
			err = showStats(ctx, trainer)
		case menuReset:
			err = resetRanges(ctx, editor)
		case menuQuit:
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !userFacing(err) {
				return err
			}
			pterm.Error.Println(err.Error())
		}
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.Store, error) {
	opts := []store.Option{store.WithLogger(logger), store.WithPreset(cfg.Preset)}
	if cfg.Store == config.StoreMemory {
		logger.Info("using in-memory storage, nothing will be kept")
		return store.NewMemory(opts...), nil
	}
	st, err := sqlite.Open(ctx, cfg.DBPath, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("storage opened", "path", cfg.DBPath)
	return st, nil
}

// userFacing reports errors that ask the user to change their input rather
// than stopping the program.
func userFacing(err error) bool {
	return errors.Is(err, scenario.ErrEmptyFilter) ||
		errors.Is(err, scenario.ErrNoValidScenario) ||
		errors.Is(err, app.ErrNothingParsed) ||
		errors.Is(err, errUnknownHand)
}

func logLevel(level string) pterm.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return pterm.LogLevelDebug
	case "warn":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	default:
		return pterm.LogLevelInfo
	}
}

func resetRanges(ctx context.Context, editor *app.Editor) error {
	confirm, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText("Delete every saved range and restore the defaults?").
		WithDefaultValue(false).
		Show()
	if err != nil || !confirm {
		return err
	}
	ranges, err := editor.ResetAll(ctx)
	if err != nil {
		return err
	}
	pterm.Success.Printfln("Ranges reset, %d default range(s) restored", len(ranges))
	return nil
}

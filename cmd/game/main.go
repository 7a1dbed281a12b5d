package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jinyier/jinyier/internal/artist"
	"github.com/jinyier/jinyier/internal/config"
	"github.com/jinyier/jinyier/internal/engine"
	"github.com/jinyier/jinyier/internal/spectate"
	"github.com/jinyier/jinyier/internal/store"
	"github.com/jinyier/jinyier/internal/tui"
)

// portraitArtist describes adversaries and paints the beast.
type portraitArtist interface {
	engine.AdversaryDescriber
	tui.Artist
}

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	snapshots, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info("starting", "store", cfg.Store, "seed", seed, "gemini", cfg.HasGemini())

	var painter portraitArtist = artist.NewSketcher(rand.New(rand.NewPCG(seed, 2)))
	if cfg.HasGemini() {
		gem, err := artist.NewGemini(ctx, cfg.GeminiAPIKey, cfg.ImageModel, rand.New(rand.NewPCG(seed, 2)), logger)
		if err != nil {
			return fmt.Errorf("create gemini client: %w", err)
		}
		defer gem.Close()
		painter = gem
	}

	timings := engine.DefaultTimings()
	timings.Tick = cfg.TickInterval
	game := engine.New(engine.Options{
		Roller:    rand.New(rand.NewPCG(seed, 1)),
		Describer: painter,
		Store:     snapshots,
		Logger:    logger,
		Timings:   timings,
	})
	defer game.Reset()

	if cfg.SpectateAddr != "" {
		hub := spectate.NewHub(logger)
		go hub.Run(ctx)
		go func() {
			if err := hub.ListenAndServe(ctx, cfg.SpectateAddr); err != nil {
				logger.Error("spectator feed stopped", "error", err)
			}
		}()
		game.Subscribe(hub.BroadcastEvent)
	}

	if err := tui.Run(game, painter); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// newLogger writes to a file because the terminal belongs to the UI.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

func openStore(cfg *config.Config) (engine.SnapshotStore, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite:
		db, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	case config.StoreMemory:
		return store.NewMemory(), func() {}, nil
	default:
		return store.NewFile(cfg.SaveDir), func() {}, nil
	}
}

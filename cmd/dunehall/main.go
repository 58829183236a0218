// Package main is the entry point for the Dunehall showcase.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/dunehall/internal/assets"
	"github.com/Faultbox/dunehall/internal/config"
	"github.com/Faultbox/dunehall/internal/engine/heightfield"
	"github.com/Faultbox/dunehall/internal/engine/scene"
	"github.com/Faultbox/dunehall/internal/game"
	"github.com/Faultbox/dunehall/internal/logger"
	"github.com/Faultbox/dunehall/internal/store"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, cfgPath, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Dunehall ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg, cfgPath); err != nil {
		logger.Error("showcase error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("showcase closed normally")
}

func run(cfg *config.Config, cfgPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	table := assets.DefaultPlacements()
	if cfg.Scene.Placements != "" {
		var err error
		table, err = assets.LoadPlacements(cfg.Scene.Placements)
		if err != nil {
			return err
		}
	}

	field := heightfield.New(cfg.Terrain.Dunes)
	s := scene.Build(table, field, cfg.Scene.Layout)
	for id, c := range s.Clearance() {
		if c < 0 {
			logger.Warn("drum below terrain", zap.String("id", id), zap.Float64("clearance", c))
		}
	}

	g, err := game.New(cfg, s, store.New())
	if err != nil {
		return fmt.Errorf("creating showcase: %w", err)
	}
	defer g.Close()

	if cfg.Game.HotReload {
		if cfgPath == "" {
			logger.Warn("hot reload needs a config file; pass --config")
		} else {
			updates, err := config.Watch(ctx, cfgPath)
			if err != nil {
				return fmt.Errorf("watching %s: %w", cfgPath, err)
			}
			g.Frame().Reloads(updates)
			logger.Info("watching config", zap.String("path", cfgPath))
		}
	}

	return g.Run(ctx)
}

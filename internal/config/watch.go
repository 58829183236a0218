package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/dunehall/internal/logger"
)

// Watch reports the shading section of the config file at path each time
// the file is written. The parent directory is watched so editors that
// replace the file on save are still seen.
//
// The returned channel holds at most the latest value; a reader that falls
// behind only sees the newest settings. It is closed when ctx is done.
// A file that fails to parse is logged and skipped.
func Watch(ctx context.Context, path string) (<-chan ShadingConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching config directory %s: %w", dir, err)
	}

	out := make(chan ShadingConfig, 1)
	go func() {
		defer close(out)
		defer w.Close()
		log := logger.Named("config")

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := reload(abs)
				if err != nil {
					log.Warn("config reload failed", zap.String("path", abs), zap.Error(err))
					continue
				}
				log.Info("shading reloaded", zap.String("path", abs))
				offer(out, cfg.Shading)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("config watcher error", zap.Error(err))
			}
		}
	}()
	return out, nil
}

func reload(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := Parse(cfg, data); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Shading.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shading: %w", err)
	}
	return cfg, nil
}

// offer replaces any unread value in ch with v.
func offer(ch chan ShadingConfig, v ShadingConfig) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

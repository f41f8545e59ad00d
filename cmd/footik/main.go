package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"
	"slices"

	"github.com/samber/lo"

	"github.com/leterax/go-footik/internal/config"
	"github.com/leterax/go-footik/internal/logger"
	"github.com/leterax/go-footik/pkg/game"
	"github.com/leterax/go-footik/pkg/render"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config (empty for built-in defaults)")
	levelPath := flag.String("level", "", "Level file, overrides world.level")
	watch := flag.Bool("watch", false, "Reload the level when its file changes")
	logLevel := flag.String("loglevel", "", "Log level, overrides logging.level")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *levelPath != "" {
		cfg.World.Level = *levelPath
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	cfg.World.Watch = cfg.World.Watch || *watch

	logCfg := logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Error("failed to open log file", "path", cfg.Logging.File, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logCfg.Output = f
	}
	logger.Init(logCfg)
	log := logger.L()

	if err := run(cfg, log); err != nil {
		log.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	for _, name := range unknownKeys(cfg.Input) {
		log.Warn("binding uses an unknown key", "key", name)
	}

	lvl, err := game.LoadLevel(cfg.World.Level)
	if err != nil {
		return err
	}
	log.Info("level loaded", "name", lvl.Name, "path", cfg.World.Level)

	renderer, err := render.NewRenderer(cfg.Window, cfg.Input, cfg.FootIK.Debug, log.With("component", "render"))
	if err != nil {
		return err
	}
	defer renderer.Cleanup()

	g := game.New(cfg, lvl, log)

	var beforeStep func()
	if cfg.World.Watch {
		watcher, err := game.NewLevelWatcher(cfg.World.Level)
		if err != nil {
			return err
		}
		defer watcher.Close()
		log.Info("watching level", "path", cfg.World.Level)
		beforeStep = reloader(g, watcher, cfg.World.Level, log)
	}

	renderer.Run(g, beforeStep)
	return nil
}

// reloader drains pending watcher events without blocking the frame.
func reloader(g *game.Game, w *game.LevelWatcher, path string, log *slog.Logger) func() {
	return func() {
		for {
			select {
			case changed := <-w.Events:
				if !game.SameFile(changed, path) {
					continue
				}
				lvl, err := game.LoadLevel(path)
				if err != nil {
					log.Warn("level reload failed", "path", path, "error", err)
					continue
				}
				g.ReloadLevel(lvl)
				log.Info("level reloaded", "name", lvl.Name)
			case err := <-w.Errors:
				log.Warn("level watcher", "error", err)
			default:
				return
			}
		}
	}
}

func unknownKeys(cfg config.InputConfig) []string {
	keys := lo.Flatten(lo.Values(cfg.Actions))
	for _, axis := range cfg.Axes {
		keys = append(keys, lo.Map(axis, func(k config.AxisKey, _ int) string { return k.Key })...)
	}
	unknown := lo.Uniq(lo.Reject(keys, func(k string, _ int) bool { return render.KnownKey(k) }))
	slices.Sort(unknown)
	return unknown
}

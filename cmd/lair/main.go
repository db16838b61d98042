package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/leterax/go-lair/internal/config"
	"github.com/leterax/go-lair/internal/logger"
	"github.com/leterax/go-lair/internal/openglhelper"
	"github.com/leterax/go-lair/pkg/assets"
	"github.com/leterax/go-lair/pkg/camera"
	"github.com/leterax/go-lair/pkg/engine"
	"github.com/leterax/go-lair/pkg/input"
	"github.com/leterax/go-lair/pkg/render"
	"github.com/leterax/go-lair/pkg/scene"
)

func init() {
	// GLFW and OpenGL calls must all come from the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults apply when empty)")
	printConfig := flag.Bool("print-config", false, "Print the effective configuration and exit")
	flag.Parse()

	if err := run(*configPath, *printConfig); err != nil {
		fmt.Fprintf(os.Stderr, "lair: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, printConfig bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if printConfig {
		return cfg.Write(os.Stdout)
	}

	log := logger.New(cfg.Logging.Logger())
	slog.SetDefault(log)

	bindings, err := input.NewBindings(cfg.Controls.Bindings, render.ResolveKey)
	if bindings == nil {
		return fmt.Errorf("controls: %w", err)
	}
	if err != nil {
		log.Warn("Skipped invalid key bindings", "err", err)
	}
	if unbound := bindings.Unbound(); len(unbound) > 0 {
		log.Warn("Actions without a key", "actions", unbound)
	}
	state := input.NewState()

	lair := scene.Lair()
	lib := assets.Lair(log)
	lib.MaxTextureSize = cfg.Assets.MaxTextureSize
	if err := lib.LoadTextures(cfg.Assets.TextureDir); err != nil {
		log.Warn("Replaced missing textures with blank", "dir", cfg.Assets.TextureDir, "err", err)
	}

	window, err := openglhelper.NewWindow(openglhelper.WindowConfig{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		VSync:  cfg.Window.VSync,
	}, log)
	if err != nil {
		return err
	}
	defer window.Close()

	renderer, err := render.NewRenderer(window, log)
	if err != nil {
		return err
	}
	defer renderer.Cleanup()

	hotkeys := make(map[input.Key]func())
	if name := cfg.Screenshots.Key; name != "" {
		if key, ok := render.ResolveKey(name); ok {
			renderer.EnableScreenshots(cfg.Screenshots.Dir)
			hotkeys[key] = renderer.RequestScreenshot
		} else {
			log.Warn("Unknown screenshot key, screenshots disabled", "key", name)
		}
	}
	window.SetKeyHandler(render.KeyHandler(input.NewKeyboard(bindings, state), hotkeys))

	if err := renderer.Upload(lair, lib); err != nil {
		return err
	}

	cam := camera.New(cfg.Camera.Camera())
	loop := engine.NewLoop(cfg.Loop.Engine(), cam, lair, state, renderer, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Entering the lair", "objects", lair.Len(), "position", cam.Position())
	return loop.Run(ctx, window, window.Time)
}

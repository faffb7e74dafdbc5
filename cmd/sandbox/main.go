// Command sandbox opens a window and draws one quad per frame with bolt.
//
// Usage:
//
//	sandbox [-config sandbox.toml] [-width 800] [-height 600]
//	sandbox -headless -out frame.png [-frames 1] [-software]
//
// Flags override values from the config file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/bolt"
	"github.com/gogpu/bolt/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		width      = flag.Int("width", 0, "window width")
		height     = flag.Int("height", 0, "window height")
		headless   = flag.Bool("headless", false, "render offscreen and write a PNG")
		out        = flag.String("out", "", "output PNG for headless mode")
		frames     = flag.Int("frames", 0, "frames to render in headless mode")
		backend    = flag.String("backend", "", "GPU backend: vulkan or noop")
		software   = flag.Bool("software", false, "use the CPU renderer in headless mode")
		logLevel   = flag.String("log-level", "", "log level: debug, info, warn, error")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sandbox: %v\n", err)
		os.Exit(2)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "headless":
			cfg.Render.Headless = *headless
		case "out":
			cfg.Render.Output = *out
		case "frames":
			cfg.Render.Frames = *frames
		case "backend":
			cfg.Render.Backend = *backend
		case "software":
			cfg.Render.Software = *software
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "sandbox: %v\n", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	bolt.SetLogger(logger)

	if cfg.Render.Headless {
		err = runHeadless(cfg, logger)
	} else {
		err = runWindow(cfg, logger)
	}
	if err != nil {
		logger.Error("sandbox failed", "err", err)
		os.Exit(1)
	}
}

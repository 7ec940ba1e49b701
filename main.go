package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/antigravity/config"
	"github.com/pthm-cable/antigravity/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window")
	listen := flag.String("listen", "", "Serve the scene to websocket renderers on this address (empty = use config)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Listen:         listenAddr(*listen, cfg),
	}

	if *headless {
		runHeadless(opts, *maxTicks, cfg.Derived.DT32)
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// listenAddr picks the websocket address: the flag wins over the config.
func listenAddr(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.Transport.Listen
}

// runHeadless steps the scene without a window. With a websocket listener
// it runs in real time so remote renderers see live motion; otherwise it
// runs as fast as it can.
func runHeadless(opts game.Options, maxTicks int, dt float32) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"listen", opts.Listen,
		"max_ticks", maxTicks,
	)

	var pace <-chan time.Time
	if opts.Listen != "" {
		ticker := time.NewTicker(time.Duration(float64(dt) * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info("interrupted", "tick", g.Tick())
			return
		default:
		}
		if pace != nil {
			select {
			case <-ctx.Done():
				slog.Info("interrupted", "tick", g.Tick())
				return
			case <-pace:
			}
		}

		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

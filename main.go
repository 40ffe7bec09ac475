package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/telemetry"
)

// runOptions carries the CLI settings into either loop.
type runOptions struct {
	maxTicks uint64
	logStats bool
	outPath  string
	output   *telemetry.OutputManager
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Render on the CPU without a window")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outPath := flag.String("out", "", "Headless: write the final secondary viewport to this PNG")
	width := flag.Int("width", 0, "Window width override (0 = use config)")
	height := flag.Int("height", 0, "Window height override (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if err := cfg.SetScreenSize(*width, *height); err != nil {
		slog.Error("invalid screen size", "error", err)
		os.Exit(1)
	}

	opts := runOptions{
		maxTicks: *maxTicks,
		logStats: *logStats,
		outPath:  *outPath,
	}
	if err := run(cfg, *headless, *outputDir, opts); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, headless bool, outputDir string, opts runOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	if output != nil {
		defer output.Close()
		if err := output.WriteConfig(cfg); err != nil {
			return err
		}
	}
	opts.output = output

	tex, err := buildVolume(cfg, output)
	if err != nil {
		return err
	}

	if headless {
		return runHeadless(ctx, cfg, tex, opts)
	}
	return runGraphical(ctx, cfg, tex, opts)
}

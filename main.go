package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/orbits/audio"
	"github.com/pthm-cable/orbits/config"
	"github.com/pthm-cable/orbits/game"
	"github.com/pthm-cable/orbits/systems"
	"github.com/pthm-cable/orbits/telemetry"
	"github.com/pthm-cable/orbits/terminal"
	"github.com/pthm-cable/orbits/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	term := flag.Bool("terminal", false, "Render in the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed for body colours (0 = time-based)")
	maxSteps := flag.Int64("max-steps", 0, "Stop after N steps (0 = unlimited)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging). The terminal
	// frontend owns stdout, so its logs go to the output dir or nowhere.
	var logOut io.Writer = os.Stdout
	if *term {
		logOut = io.Discard
		if *outputDir != "" {
			if err := os.MkdirAll(*outputDir, 0755); err == nil {
				if f, err := os.Create(filepath.Join(*outputDir, "orbits.log")); err == nil {
					defer f.Close()
					logOut = f
				}
			}
		}
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	var chime *audio.Chime
	if cfg.Audio.Enabled && !*headless {
		chime = initAudio(cfg.Audio)
		if chime != nil {
			defer speaker.Close()
		}
	}

	opts := game.Options{
		Seed:     rngSeed,
		LogStats: *logStats,
		Output:   output,
		OnHalt:   func(systems.Collision) { chime.Play() },
	}

	switch {
	case *headless:
		g := game.New(cfg, opts)
		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"bodies", g.BodyCount(),
			"max_steps", *maxSteps,
			"solver", cfg.Physics.Solver,
		)
		start := time.Now()
		steps := g.RunSteps(*maxSteps)
		slog.Info("headless simulation finished",
			"steps", steps,
			"sim_days", g.SimDays(),
			"halted", g.Halted(),
			"wall_ms", time.Since(start).Milliseconds(),
		)

	case *term:
		screen, err := tcell.NewScreen()
		if err != nil {
			slog.Error("failed to open terminal", "error", err)
			os.Exit(1)
		}
		if err := screen.Init(); err != nil {
			slog.Error("failed to initialise terminal", "error", err)
			os.Exit(1)
		}
		defer screen.Fini()

		g := game.New(cfg, opts)
		terminal.New(screen, g).Run(cfg.Screen.TargetFPS, *maxSteps)

	default:
		rl.SetConfigFlags(rl.FlagWindowResizable)
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g := game.New(cfg, opts)
		ui.NewApp(g, ui.AppOptions{
			MaxSteps:  *maxSteps,
			PromptIn:  os.Stdin,
			PromptOut: os.Stdout,
		}).Run()
	}
}

// initAudio opens the speaker. Failure is logged and leaves sound off.
func initAudio(cfg config.AudioConfig) *audio.Chime {
	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		// Non-fatal, the simulation runs without sound
		slog.Warn("audio initialization failed", "error", err)
		return nil
	}
	return audio.NewChime(cfg, speaker.Play)
}

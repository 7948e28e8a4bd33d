package main

import (
	"flag"
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"github.com/pthm-cable/blobs/camera"
	"github.com/pthm-cable/blobs/config"
	"github.com/pthm-cable/blobs/game"
	"github.com/pthm-cable/blobs/renderer"
	"github.com/pthm-cable/blobs/ui"
)

// Screen layout of the overlay panels.
const (
	panelWidth  = 260
	panelMargin = 10
	graphWidth  = 360
	graphHeight = 160
	zoomStep    = 1.1
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	parallel := flag.Bool("parallel", false, "Run sense/decide on a worker group")

	flag.Parse()

	runID := uuid.NewString()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("run", runID)
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Seed:      *seed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		RunID:     runID,
		Headless:  *headless,
		Parallel:  *parallel,
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	if *headless {
		runHeadless(g, *maxTicks)
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Blobs")
	defer rl.CloseWindow()

	runWindowed(g, *maxTicks)
}

// runHeadless steps as fast as possible until max ticks (or forever).
func runHeadless(g *game.Game, maxTicks int) {
	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"max_ticks", maxTicks,
		"species", g.Species().Len(),
	)

	for {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

// runWindowed ties one simulation tick to each rendered frame, with the
// frame rate following the tick rate knob.
func runWindowed(g *game.Game, maxTicks int) {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	width, height := g.WorldSize()
	cam := camera.New(float64(screenW), float64(screenH), width, height)
	world := renderer.NewWorldRenderer(cam)
	hud := ui.NewHUD(panelMargin, panelMargin, panelWidth)
	controls := ui.NewControlPanel(screenW-panelWidth-panelMargin, panelMargin, panelWidth)
	inspector := ui.NewInspector(screenW-panelWidth-panelMargin, 260, panelWidth)
	graphBounds := rl.Rectangle{
		X:      panelMargin,
		Y:      float32(screenH - graphHeight - panelMargin),
		Width:  graphWidth,
		Height: graphHeight,
	}

	var (
		selected    uint32
		hasSelected bool
	)

	rate := g.Knobs().TargetTickRate
	rl.SetTargetFPS(int32(rate))

	for !rl.WindowShouldClose() {
		if k := g.Knobs(); k.TargetTickRate != rate {
			rate = k.TargetTickRate
			rl.SetTargetFPS(int32(rate))
		}

		action := ui.HandleKeys(g)
		handleCamera(cam)

		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			mouse := rl.GetMousePosition()
			if !controls.Contains(mouse) {
				wx, wy := cam.ScreenToWorld(float64(mouse.X), float64(mouse.Y))
				selected, hasSelected = g.AgentAt(wx, wy)
			}
		}

		g.Update()

		k := g.Knobs()
		rl.BeginDrawing()

		world.Draw(g.Snapshot(), selected, hasSelected)
		renderer.DrawPopulationGraph(g.History(), g.Species(), graphBounds)

		hud.Draw(ui.HUDData{
			Title:       "Blobs",
			Tick:        g.Tick(),
			FPS:         rl.GetFPS(),
			TickRate:    k.TargetTickRate,
			Paused:      k.Paused,
			FoodCount:   g.FoodCount(),
			Populations: g.Populations(),
			Species:     g.Species(),
		})

		if a := controls.Draw(g); a != ui.ActionNone {
			action = a
		}

		if hasSelected {
			if in, ok := g.Inspect(selected); ok {
				inspector.Draw(in)
			} else {
				hasSelected = false
			}
		} else {
			inspector.DrawEmpty()
		}

		rl.EndDrawing()
		g.RecordFrame()

		if action == ui.ActionReset {
			g.Reset()
			hasSelected = false
		}

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}

// handleCamera pans with the right mouse button, zooms with the wheel and
// recenters on C.
func handleCamera(cam *camera.Camera) {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		cam.Pan(-float64(d.X), -float64(d.Y))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.ZoomBy(math.Pow(zoomStep, float64(wheel)))
	}
	if rl.IsKeyPressed(rl.KeyC) {
		cam.Reset()
	}
}

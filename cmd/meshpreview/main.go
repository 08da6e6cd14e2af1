// Mesh preview tool - tune particle and link parameters with sliders.
//
// Usage: go run ./cmd/meshpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/holomesh/config"
	"github.com/pthm-cable/holomesh/inspector"
	"github.com/pthm-cable/holomesh/renderer"
	"github.com/pthm-cable/holomesh/surface"
	"github.com/pthm-cable/holomesh/systems"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	panelWidth   = 360
	previewWidth = windowWidth - panelWidth
)

// slider describes one tunable value.
type slider struct {
	label    string
	format   string
	min, max float32
	value    *float64
	rebuild  bool // Changing it needs a new population
}

// tunedSections is the part of the config the tool edits.
type tunedSections struct {
	Particles config.ParticlesConfig `yaml:"particles"`
	Links     config.LinksConfig     `yaml:"links"`
	Backdrop  config.BackdropConfig  `yaml:"backdrop"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml to start from (empty = defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := *cfg

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Mesh Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	canvas := renderer.NewCanvas(cfg.Screen.Background)
	defer canvas.Unload()

	rng := rand.New(rand.NewSource(1))
	var pop *systems.Population
	var finder *systems.LinkFinder
	rebuild := func() {
		pop = systems.NewPopulation(systems.RulesFromConfig(cfg), systems.SizingFromConfig(cfg), rng)
		pop.Rebuild(previewWidth, windowHeight)
		finder = systems.NewLinkFinder(systems.LinkRulesFromConfig(cfg))
	}
	rebuild()

	sliders := []slider{
		{"Link distance", "%.0f", 30, 250, &cfg.Links.Distance, false},
		{"Link max alpha", "%.3f", 0.01, 0.4, &cfg.Links.MaxAlpha, false},
		{"Link width", "%.1f", 0.3, 3, &cfg.Links.Width, false},
		{"Max speed", "%.2f", 0.02, 1.5, &cfg.Particles.MaxSpeed, true},
		{"Area per particle", "%.0f", 5000, 200000, &cfg.Particles.AreaPerParticle, true},
		{"Edge margin", "%.0f", 0, 100, &cfg.Particles.EdgeMargin, true},
		{"Backdrop inner alpha", "%.2f", 0, 0.5, &cfg.Backdrop.InnerAlpha, false},
	}

	bounds := systems.Bounds{W: previewWidth, H: windowHeight}
	stats := inspector.NewStatsPanel(10, windowHeight-170, previewWidth-20, 160, 300)

	for !rl.WindowShouldClose() {
		stats.HandleInput()
		start := time.Now()

		canvas.BeginFrame()
		canvas.Clear()

		// Preview
		canvas.FillRadialGradient(surface.RadialGradient{
			W:      previewWidth,
			H:      windowHeight,
			InnerX: cfg.Backdrop.InnerX * previewWidth,
			InnerY: cfg.Backdrop.InnerY * windowHeight,
			OuterX: cfg.Backdrop.OuterX * previewWidth,
			OuterY: cfg.Backdrop.OuterY * windowHeight,
			OuterR: previewWidth,
			Inner:  surface.PaintOf(cfg.Backdrop.Color, cfg.Backdrop.InnerAlpha),
			Outer:  surface.PaintOf(cfg.Backdrop.Color, cfg.Backdrop.OuterAlpha),
		})

		pop.Advance(bounds, func(p systems.Particle) {
			canvas.FillCircle(p.Pos.X, p.Pos.Y, p.Look.Size, surface.PaintOf(cfg.Particles.Color, p.Look.Alpha))
		})
		points := pop.Points()
		links := finder.Find(points, func(l systems.Link) {
			a, b := points[l.I], points[l.J]
			canvas.StrokeLine(a.X, a.Y, b.X, b.Y, cfg.Links.Width, surface.PaintOf(cfg.Links.Color, l.Alpha))
		})

		stats.Record(links, pop.Len(), float64(time.Since(start))/float64(time.Millisecond))
		stats.Draw()
		rl.DrawText(fmt.Sprintf("fps: %d", rl.GetFPS()), 10, 10, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewWidth + 15)
		panelY := float32(10)
		rl.DrawRectangle(previewWidth, 0, panelWidth, windowHeight, rl.RayWhite)
		rl.DrawText("Mesh Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		needsRebuild := false
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			current := float32(*s.value)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 100, Height: 20},
				"", "",
				current, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(panelX+panelWidth-90), int32(panelY+2), 16, rl.DarkGray)
			if next != current {
				*s.value = float64(next)
				needsRebuild = needsRebuild || s.rebuild
				finder = systems.NewLinkFinder(systems.LinkRulesFromConfig(cfg))
			}
			panelY += 35
		}
		if needsRebuild {
			rebuild()
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Respawn") {
			rebuild()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			*cfg = defaults
			rebuild()
		}
		panelY += 45

		// Output YAML
		out := tunedYAML(cfg)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(out, "\n") {
			if panelY > windowHeight-40 {
				break
			}
			rl.DrawText(line, int32(panelX), int32(panelY), 12, rl.Gray)
			panelY += 14
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-24), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(out)
		}

		canvas.EndFrame()
	}
}

// tunedYAML renders the edited sections as a config fragment.
func tunedYAML(cfg *config.Config) string {
	data, err := yaml.Marshal(tunedSections{Particles: cfg.Particles, Links: cfg.Links, Backdrop: cfg.Backdrop})
	if err != nil {
		return err.Error()
	}
	return strings.TrimSpace(string(data))
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Particles.MinCount != 40 {
		t.Errorf("expected min_count 40, got %d", cfg.Particles.MinCount)
	}
	if cfg.Particles.AreaPerParticle != 90000 {
		t.Errorf("expected area_per_particle 90000, got %g", cfg.Particles.AreaPerParticle)
	}
	if cfg.Links.Distance != 110 {
		t.Errorf("expected link distance 110, got %g", cfg.Links.Distance)
	}
	if cfg.Links.MaxAlpha != 0.08 {
		t.Errorf("expected link max alpha 0.08, got %g", cfg.Links.MaxAlpha)
	}
	if cfg.Particles.Color != (RGB{125, 211, 252}) {
		t.Errorf("unexpected particle colour %v", cfg.Particles.Color)
	}
	if cfg.Density.Threshold != 0.25 {
		t.Errorf("expected density threshold 0.25, got %g", cfg.Density.Threshold)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := Default()

	if cfg.Derived.ReconcileInterval != 1500*time.Millisecond {
		t.Errorf("expected 1500ms reconcile interval, got %s", cfg.Derived.ReconcileInterval)
	}
	if cfg.Derived.LinkDistanceSq != 110*110 {
		t.Errorf("expected squared link distance 12100, got %g", cfg.Derived.LinkDistanceSq)
	}
	if cfg.Derived.FrameInterval != time.Second/60 {
		t.Errorf("unexpected frame interval %s", cfg.Derived.FrameInterval)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.yaml")
	data := "links:\n  distance: 150\ndensity:\n  interval_ms: 500\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}

	if cfg.Links.Distance != 150 {
		t.Errorf("expected overridden distance 150, got %g", cfg.Links.Distance)
	}
	if cfg.Links.MaxAlpha != 0.08 {
		t.Errorf("expected default max alpha to survive, got %g", cfg.Links.MaxAlpha)
	}
	if cfg.Derived.ReconcileInterval != 500*time.Millisecond {
		t.Errorf("expected derived interval to follow override, got %s", cfg.Derived.ReconcileInterval)
	}
}

func TestLoadRejectsInvalidRanges(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"inverted size", "particles:\n  size_min: 3\n  size_max: 1\n", "size range"},
		{"alpha above one", "particles:\n  alpha_max: 1.5\n", "alpha range"},
		{"zero interval", "density:\n  interval_ms: 0\n", "interval_ms"},
		{"zero distance", "links:\n  distance: 0\n", "links.distance"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Links.Distance = 90

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if loaded.Links.Distance != 90 {
		t.Errorf("expected snapshot distance 90, got %g", loaded.Links.Distance)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	defer func() {
		if recover() == nil {
			t.Error("expected panic from Cfg before Init")
		}
	}()
	Cfg()
}

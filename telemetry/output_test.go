package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/holomesh/config"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// Nil receiver discards writes
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Errorf("WriteWindow on nil: %v", err)
	}
	if err := om.WriteRebuild(RebuildRecord{}); err != nil {
		t.Errorf("WriteRebuild on nil: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Errorf("WriteConfig on nil: %v", err)
	}
	if om.Dir() != "" {
		t.Error("expected empty dir")
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}

func TestOutputManager_HeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := om.WriteWindow(WindowStats{RunID: "r1", Frame: int64(i * 60), Frames: 60}); err != nil {
			t.Fatalf("WriteWindow: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{}.ToCSV("r1", 60)); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.WriteRebuild(RebuildRecord{RunID: "r1", Reason: RebuildInitial, Particles: 40}); err != nil {
		t.Fatalf("WriteRebuild: %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	frames := readLines(t, filepath.Join(dir, FramesFile))
	if len(frames) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(frames))
	}
	if !strings.HasPrefix(frames[0], "run_id,frame,elapsed_sec") {
		t.Errorf("unexpected header %q", frames[0])
	}
	if strings.Count(strings.Join(frames, "\n"), "run_id") != 1 {
		t.Error("header written more than once")
	}

	rebuilds := readLines(t, filepath.Join(dir, RebuildsFile))
	if len(rebuilds) != 2 || !strings.Contains(rebuilds[1], RebuildInitial) {
		t.Errorf("unexpected rebuilds.csv: %v", rebuilds)
	}
	if perf := readLines(t, filepath.Join(dir, PerfFile)); len(perf) != 2 {
		t.Errorf("expected header + 1 perf row, got %d", len(perf))
	}

	if _, err := config.Load(filepath.Join(dir, ConfigFile)); err != nil {
		t.Errorf("config snapshot does not load: %v", err)
	}
}

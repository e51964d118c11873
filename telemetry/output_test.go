package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/orbits/config"
)

func TestNewOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	// Methods are nil-safe.
	if err := om.WriteEvent(NewResetEvent(0, 0, 0)); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := om.WriteEvent(NewPlacedEvent(int64(i), float64(i), uint32(i+1), 1e30)); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteTrajectory([]TrajectoryRow{
		{Step: 1, Entity: 1, X: 1, Y: 2},
		{Step: 1, Entity: 2, X: 3, Y: 4},
	}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndStep: 10, BodyCount: 2}); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{}, 10); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	var events []Event
	readCSV(t, filepath.Join(dir, "events.csv"), &events)
	if len(events) != 3 {
		t.Fatalf("expected 3 events (one header), got %d", len(events))
	}
	if events[2].Name != "placed" || events[2].EntityID != 3 {
		t.Errorf("unexpected event row %+v", events[2])
	}

	var rows []TrajectoryRow
	readCSV(t, filepath.Join(dir, "trajectory.csv"), &rows)
	if len(rows) != 2 || rows[1].X != 3 {
		t.Errorf("unexpected trajectory rows %+v", rows)
	}

	var stats []WindowStats
	readCSV(t, filepath.Join(dir, "telemetry.csv"), &stats)
	if len(stats) != 1 || stats[0].BodyCount != 2 {
		t.Errorf("unexpected telemetry rows %+v", stats)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func readCSV(t *testing.T, path string, out any) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
}

package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/orbits/config"
)

// TrajectoryRow is one body's state at one step.
type TrajectoryRow struct {
	Step    int64   `csv:"step"`
	SimDays float64 `csv:"sim_days"`
	Entity  uint32  `csv:"entity"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	VX      float64 `csv:"vx"`
	VY      float64 `csv:"vy"`
	Mass    float64 `csv:"mass"`
	Radius  float64 `csv:"radius"`
}

// csvFile is an output file that writes its header once.
type csvFile struct {
	name          string
	f             *os.File
	headerWritten bool
}

// write appends records, which must be a slice of csv-tagged structs.
func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, c.f); err != nil {
			return fmt.Errorf("writing %s: %w", c.name, err)
		}
		c.headerWritten = true
		return nil
	}
	// Subsequent writes skip headers
	if err := gocsv.MarshalWithoutHeaders(records, c.f); err != nil {
		return fmt.Errorf("writing %s: %w", c.name, err)
	}
	return nil
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir        string
	telemetry  *csvFile
	perf       *csvFile
	events     *csvFile
	trajectory *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, slot := range []struct {
		dst  **csvFile
		name string
	}{
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.events, "events.csv"},
		{&om.trajectory, "trajectory.csv"},
	} {
		f, err := os.Create(filepath.Join(dir, slot.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", slot.name, err)
		}
		*slot.dst = &csvFile{name: slot.name, f: f}
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.write([]WindowStats{stats})
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteEvent writes an event record to events.csv.
func (om *OutputManager) WriteEvent(e Event) error {
	if om == nil {
		return nil
	}
	return om.events.write([]Event{e})
}

// WriteTrajectory writes one step's rows to trajectory.csv.
func (om *OutputManager) WriteTrajectory(rows []TrajectoryRow) error {
	if om == nil || len(rows) == 0 {
		return nil
	}
	return om.trajectory.write(rows)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.telemetry, om.perf, om.events, om.trajectory} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/blobs/config"
)

// PopulationRow is one species' share of a population sample in population.csv.
type PopulationRow struct {
	Run     string  `csv:"run"`
	Tick    int32   `csv:"tick"`
	Species string  `csv:"species"`
	Count   int     `csv:"count"`
	Percent float64 `csv:"percent"`
}

// csvSink is an output file that writes its header with the first batch of rows.
type csvSink struct {
	name          string
	f             *os.File
	headerWritten bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, f: f}, nil
}

// write marshals rows, which must be a slice of csv-tagged structs.
func (s *csvSink) write(rows any) error {
	var err error
	if !s.headerWritten {
		err = gocsv.Marshal(rows, s.f)
		s.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, s.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// OutputManager writes a run's CSV series and its effective config to a directory.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir   string
	runID string

	population *csvSink
	telemetry  *csvSink
	perf       *csvSink
}

// NewOutputManager creates dir and opens the run's output files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir, runID string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, runID: runID}
	for _, s := range []struct {
		dst  **csvSink
		name string
	}{
		{&om.population, "population.csv"},
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
	} {
		sink, err := openSink(dir, s.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*s.dst = sink
	}
	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WritePopulation appends one row per species for a population sample.
func (om *OutputManager) WritePopulation(sample PopulationSample, names []string) error {
	if om == nil {
		return nil
	}
	rows := make([]PopulationRow, len(sample.Counts))
	for i, n := range sample.Counts {
		rows[i] = PopulationRow{
			Run:     om.runID,
			Tick:    sample.Tick,
			Species: names[i],
			Count:   n,
			Percent: sample.Percent[i],
		}
	}
	return om.population.write(rows)
}

// WriteTelemetry appends one row per species for a stats window.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	rows := make([]SpeciesWindow, len(stats.Species))
	for i, sw := range stats.Species {
		sw.Run = om.runID
		rows[i] = sw
	}
	return om.telemetry.write(rows)
}

// WritePerf appends a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	row := stats.ToCSV(windowEnd)
	row.Run = om.runID
	return om.perf.write([]PerfStatsCSV{row})
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, s := range []*csvSink{om.population, om.telemetry, om.perf} {
		if s == nil {
			continue
		}
		if err := s.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

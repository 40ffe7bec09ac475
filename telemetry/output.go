package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/volume"
)

// FieldStatsCSV is a flat record of density field statistics.
type FieldStatsCSV struct {
	Size       int     `csv:"size"`
	Noise      string  `csv:"noise"`
	Seed       int64   `csv:"seed"`
	Samples    int     `csv:"samples"`
	Mean       float64 `csv:"mean"`
	StdDev     float64 `csv:"stddev"`
	Median     float64 `csv:"median"`
	Max        uint8   `csv:"max"`
	Coverage   float64 `csv:"coverage"`
	GenerateMS int64   `csv:"generate_ms"`
}

// OutputManager writes run output: a config snapshot, field statistics and
// per-window perf records.
type OutputManager struct {
	dir      string
	perfFile *os.File

	perfHeaderWritten bool
}

// NewOutputManager creates the output directory and opens perf.csv.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}

	return &OutputManager{dir: dir, perfFile: f}, nil
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFieldStats writes field.csv with a single record.
func (om *OutputManager) WriteFieldStats(rec FieldStatsCSV) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "field.csv"))
	if err != nil {
		return fmt.Errorf("creating field.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal([]FieldStatsCSV{rec}, f); err != nil {
		return fmt.Errorf("writing field stats: %w", err)
	}
	return nil
}

// NewFieldStatsCSV flattens field statistics for export.
func NewFieldStatsCSV(cfg *config.Config, s volume.FieldStats, generateMS int64) FieldStatsCSV {
	return FieldStatsCSV{
		Size:       cfg.Volume.Size,
		Noise:      cfg.Volume.Noise,
		Seed:       cfg.Volume.Seed,
		Samples:    s.Samples,
		Mean:       s.Mean,
		StdDev:     s.StdDev,
		Median:     s.Median,
		Max:        s.Max,
		Coverage:   s.Coverage,
		GenerateMS: generateMS,
	}
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, tick uint64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(tick)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil || om.perfFile == nil {
		return nil
	}
	return om.perfFile.Close()
}

package volume

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// FieldStats summarizes a density field.
type FieldStats struct {
	Samples  int
	Mean     float64 // in [0, 255]
	StdDev   float64
	Median   float64
	Max      uint8
	Coverage float64 // fraction of samples at or above the threshold
}

// Summarize computes statistics over a field. Threshold is normalized to [0, 1]
// the same way the raymarcher compares samples.
func Summarize(field *DensityField, threshold float64) FieldStats {
	var hist [256]float64
	for _, v := range field.Data {
		hist[v]++
	}

	values := make([]float64, 256)
	for i := range values {
		values[i] = float64(i)
	}

	s := FieldStats{Samples: len(field.Data)}
	if s.Samples == 0 {
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, hist[:])
	s.Median = stat.Quantile(0.5, stat.Empirical, values, hist[:])

	var covered float64
	for i := 255; i >= 0; i-- {
		if hist[i] > 0 && s.Max == 0 {
			s.Max = uint8(i)
		}
		if float64(i)/255 >= threshold {
			covered += hist[i]
		}
	}
	s.Coverage = covered / float64(s.Samples)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("samples", s.Samples),
		slog.Float64("mean", s.Mean),
		slog.Float64("stddev", s.StdDev),
		slog.Float64("median", s.Median),
		slog.Int("max", int(s.Max)),
		slog.Float64("coverage", s.Coverage),
	)
}

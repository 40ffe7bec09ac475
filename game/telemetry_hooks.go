package game

import (
	"log/slog"
	"time"
)

// flushTelemetry writes a perf record at the end of every window and logs a
// summary at most once per log interval.
func (s *Scheduler) flushTelemetry() {
	if s.tick%uint64(s.perfWindow) == 0 && s.outputManager != nil {
		if err := s.outputManager.WritePerf(s.perfCollector.Stats(), s.tick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	if !s.logStats {
		return
	}
	now := time.Now()
	if s.lastLog.IsZero() {
		s.lastLog = now
		return
	}
	if now.Sub(s.lastLog) < s.logInterval {
		return
	}
	s.lastLog = now
	slog.Info("perf",
		"tick", s.tick,
		"frame_index", s.raymarch.FrameIndex,
		"stats", s.perfCollector.Stats(),
	)
}

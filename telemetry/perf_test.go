package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTime advances only when told to.
type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func newFakeCollector(window int) (*PerfCollector, *fakeTime) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = ft.now
	return pc, ft
}

// tick records one tick with the given phase durations, in order.
func tick(pc *PerfCollector, ft *fakeTime, phases map[Phase]time.Duration) {
	pc.StartTick()
	for _, ph := range Phases {
		d, ok := phases[ph]
		if !ok {
			continue
		}
		pc.StartPhase(ph)
		ft.advance(d)
	}
	pc.EndTick()
}

func TestPerfCollectorPhaseSplit(t *testing.T) {
	pc, ft := newFakeCollector(10)
	for i := 0; i < 4; i++ {
		tick(pc, ft, map[Phase]time.Duration{
			PhaseSpin:      100 * time.Microsecond,
			PhasePrimary:   300 * time.Microsecond,
			PhaseSecondary: 600 * time.Microsecond,
		})
	}

	stats := pc.Stats()
	require.Equal(t, 4, stats.Ticks)
	assert.Equal(t, time.Millisecond, stats.AvgTickDuration)
	assert.Equal(t, 300*time.Microsecond, stats.PhaseAvg[PhasePrimary])
	assert.InDelta(t, 60, stats.PhasePct[PhaseSecondary], 1e-9)
	assert.Zero(t, stats.PhasePct[PhaseClock], "untimed phase")
	assert.InDelta(t, 1000, stats.TicksPerSecond, 1e-9)
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc, ft := newFakeCollector(3)

	// Slow ticks fall out of the window
	for i := 0; i < 3; i++ {
		tick(pc, ft, map[Phase]time.Duration{PhaseSpin: 10 * time.Millisecond})
	}
	for i := 0; i < 3; i++ {
		tick(pc, ft, map[Phase]time.Duration{PhaseSpin: time.Millisecond})
	}

	stats := pc.Stats()
	assert.Equal(t, 3, stats.Ticks)
	assert.Equal(t, time.Millisecond, stats.MaxTickDuration, "old slow ticks evicted")
}

func TestPerfCollectorMinMaxP95(t *testing.T) {
	pc, ft := newFakeCollector(20)
	for i := 1; i <= 20; i++ {
		tick(pc, ft, map[Phase]time.Duration{PhasePrimary: time.Duration(i) * time.Millisecond})
	}

	stats := pc.Stats()
	assert.Equal(t, time.Millisecond, stats.MinTickDuration)
	assert.Equal(t, 20*time.Millisecond, stats.MaxTickDuration)
	// Empirical quantile of 1..20 at 0.95 is the 19th value
	assert.Equal(t, 19*time.Millisecond, stats.P95TickDuration)
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	assert.Zero(t, stats.Ticks)
	assert.Zero(t, stats.AvgTickDuration)
	assert.Zero(t, stats.FPS)
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc, ft := newFakeCollector(10)

	// First call only sets the baseline
	pc.RecordFrame()
	assert.Zero(t, pc.Stats().FPS)

	ft.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	assert.Equal(t, 20*time.Millisecond, stats.FrameDuration)
	assert.InDelta(t, 50, stats.FPS, 1e-9)
}

func TestPerfCollectorRealClock(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartTick()
	pc.StartPhase(PhaseSecondary)
	time.Sleep(time.Millisecond)
	pc.EndTick()

	assert.GreaterOrEqual(t, pc.Stats().PhaseAvg[PhaseSecondary], time.Millisecond)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "render_primary", PhasePrimary.String())
	assert.Equal(t, "unknown", Phase(99).String())
	assert.Len(t, Phases, int(NumPhases))
}

func TestPerfStatsToCSV(t *testing.T) {
	var stats PerfStats
	stats.AvgTickDuration = 2 * time.Millisecond
	stats.P95TickDuration = 3 * time.Millisecond
	stats.PhasePct[PhasePrimary] = 60
	stats.PhasePct[PhaseSecondary] = 30

	rec := stats.ToCSV(42)
	assert.Equal(t, uint64(42), rec.Tick)
	assert.Equal(t, int64(2000), rec.AvgTickUS)
	assert.Equal(t, int64(3000), rec.P95TickUS)
	assert.Equal(t, 60.0, rec.PrimaryPct)
	assert.Equal(t, 30.0, rec.SecondaryPct)
	assert.Zero(t, rec.ClockPct)
}

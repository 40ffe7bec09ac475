package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/states/scene"
	"github.com/pthm-cable/states/telemetry"
)

// State is the scheduler lifecycle state.
type State int32

const (
	StateIdle     State = iota // before the first tick
	StateRunning               // ticking every frame
	StateStopping              // stop requested, finishes at the next tick boundary
	StateStopped               // loop exited
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// ErrStopped is returned by Tick once the scheduler has stopped.
var ErrStopped = errors.New("scheduler stopped")

// Frame is the uniform snapshot of one tick, shared read-only by both
// render passes.
type Frame struct {
	Tick       uint64
	Elapsed    float64 // logical seconds
	WallMillis float64

	Raymarch RaymarchUniforms
	Fluid    FluidUniforms

	// States holds the cube, fluid and gas; Atom holds lights only
	States *scene.Scene
	Atom   *scene.Scene
}

// Host drives the loop from the display's per-frame callback.
type Host interface {
	// BeginFrame polls window events, applies resizes and input, and
	// returns false once the window wants to close.
	BeginFrame() bool
	// EndFrame composites the viewports and presents.
	EndFrame()
}

// Options configures a Scheduler.
type Options struct {
	Clock     Clock     // nil = NewClock()
	WallClock WallClock // nil = NewWallClock()

	// GasObserver is the viewport whose camera position feeds the gas
	// program. Defaults to the secondary viewport.
	GasObserver *Viewport

	MaxTicks       uint64 // stop after this many ticks (0 = unlimited)
	PerfWindow     int
	LogStats       bool
	LogIntervalSec float64
	Output         *telemetry.OutputManager
}

// Scheduler advances both viewports from one clock. It is single threaded:
// every method must be called from the render thread, except Stop and State.
type Scheduler struct {
	clock    Clock
	wall     WallClock
	pair     *ViewportPair
	observer *Viewport
	states   *scene.Scene
	atom     *scene.Scene

	raymarch RaymarchUniforms
	fluid    FluidUniforms
	frame    Frame
	tick     uint64
	state    atomic.Int32
	maxTicks uint64

	perfCollector *telemetry.PerfCollector
	perfWindow    int
	outputManager *telemetry.OutputManager
	logStats      bool
	logInterval   time.Duration
	lastLog       time.Time
}

// NewScheduler creates an idle scheduler.
func NewScheduler(pair *ViewportPair, states, atom *scene.Scene, raymarch RaymarchUniforms, fluid FluidUniforms, opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = NewClock()
	}
	if opts.WallClock == nil {
		opts.WallClock = NewWallClock()
	}
	if opts.GasObserver == nil {
		opts.GasObserver = pair.Secondary
	}
	if opts.PerfWindow < 1 {
		opts.PerfWindow = 120
	}

	s := &Scheduler{
		clock:         opts.Clock,
		wall:          opts.WallClock,
		pair:          pair,
		observer:      opts.GasObserver,
		states:        states,
		atom:          atom,
		raymarch:      raymarch,
		fluid:         fluid,
		maxTicks:      opts.MaxTicks,
		perfCollector: telemetry.NewPerfCollector(opts.PerfWindow),
		perfWindow:    opts.PerfWindow,
		outputManager: opts.Output,
		logStats:      opts.LogStats,
		logInterval:   time.Duration(opts.LogIntervalSec * float64(time.Second)),
	}
	s.state.Store(int32(StateIdle))
	return s
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Stop requests a stop at the next tick boundary. An idle scheduler stops
// immediately.
func (s *Scheduler) Stop() {
	if s.state.CompareAndSwap(int32(StateIdle), int32(StateStopped)) {
		return
	}
	s.state.CompareAndSwap(int32(StateRunning), int32(StateStopping))
}

// pausable is implemented by clocks that can freeze logical time.
type pausable interface {
	SetPaused(bool)
	Paused() bool
}

// TogglePause freezes or resumes the logical clock and reports whether it is
// now paused. Wall-time rotation keeps advancing. Clocks that cannot pause
// are left running.
func (s *Scheduler) TogglePause() bool {
	c, ok := s.clock.(pausable)
	if !ok {
		return false
	}
	c.SetPaused(!c.Paused())
	slog.Info("logical clock", "paused", c.Paused(), "tick", s.tick)
	return c.Paused()
}

// TickCount returns the number of completed ticks.
func (s *Scheduler) TickCount() uint64 {
	return s.tick
}

// Raymarch exposes the live gas uniforms. Writes take effect on the next tick.
func (s *Scheduler) Raymarch() *RaymarchUniforms {
	return &s.raymarch
}

// Fluid exposes the live fluid uniforms. Writes take effect on the next tick.
func (s *Scheduler) Fluid() *FluidUniforms {
	return &s.fluid
}

// Frame returns the snapshot of the last completed tick.
func (s *Scheduler) Frame() *Frame {
	return &s.frame
}

// Perf returns the tick timing collector.
func (s *Scheduler) Perf() *telemetry.PerfCollector {
	return s.perfCollector
}

// Tick runs one frame: clock, spin, uniforms, controls, then the primary and
// secondary render passes in that order.
func (s *Scheduler) Tick() error {
	s.perfCollector.StartTick()
	err := s.advance()
	s.perfCollector.EndTick()
	if err != nil {
		return err
	}
	s.afterTick()
	return nil
}

// Run ticks once per host frame until the context is cancelled, the host
// closes, MaxTicks is reached, Stop is called or a render pass fails.
func (s *Scheduler) Run(ctx context.Context, host Host) error {
	defer s.state.Store(int32(StateStopped))

	for {
		if ctx.Err() != nil {
			s.Stop()
		}
		if st := s.State(); st == StateStopping || st == StateStopped {
			slog.Info("scheduler stopping", "tick", s.tick)
			return nil
		}
		if !host.BeginFrame() {
			s.Stop()
			continue
		}

		s.perfCollector.StartTick()
		err := s.advance()
		if err == nil {
			s.perfCollector.StartPhase(telemetry.PhasePresent)
			host.EndFrame()
			s.perfCollector.RecordFrame()
		}
		s.perfCollector.EndTick()
		if err != nil {
			return err
		}
		s.afterTick()
	}
}

func (s *Scheduler) advance() error {
	switch s.State() {
	case StateStopped:
		return ErrStopped
	case StateIdle:
		s.clock.Start()
		s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning))
	}

	// 1. Clocks
	s.perfCollector.StartPhase(telemetry.PhaseClock)
	elapsed := s.clock.Elapsed()
	wallMs := s.wall.NowMillis()

	// 2. Logical-time rotation (solid cube)
	s.perfCollector.StartPhase(telemetry.PhaseSpin)
	s.states.Spin(scene.SourceLogical, elapsed)

	// 3-4. Uniforms, then wall-time rotation of the gas volume
	s.perfCollector.StartPhase(telemetry.PhaseUniforms)
	s.fluid.Elapsed = float32(elapsed)
	s.raymarch.CameraPosition = s.observer.Camera.Position
	s.raymarch.Clamp()
	s.states.Spin(scene.SourceWall, wallMs)
	s.raymarch.FrameIndex++

	// 5. Orbit damping
	s.perfCollector.StartPhase(telemetry.PhaseControls)
	for _, v := range s.pair.Each() {
		if v.Controls != nil {
			v.Controls.Update()
		}
	}

	s.frame = Frame{
		Tick:       s.tick + 1,
		Elapsed:    elapsed,
		WallMillis: wallMs,
		Raymarch:   s.raymarch,
		Fluid:      s.fluid,
		States:     s.states,
		Atom:       s.atom,
	}

	// 6. Render passes, primary first
	phases := [2]telemetry.Phase{telemetry.PhasePrimary, telemetry.PhaseSecondary}
	for i, v := range s.pair.Each() {
		s.perfCollector.StartPhase(phases[i])
		if v.Pass == nil {
			continue
		}
		if err := v.Pass.Render(v, &s.frame); err != nil {
			s.state.Store(int32(StateStopped))
			return fmt.Errorf("rendering %s viewport at tick %d: %w", v.Name, s.frame.Tick, err)
		}
	}
	return nil
}

func (s *Scheduler) afterTick() {
	s.tick++
	s.flushTelemetry()
	if s.maxTicks > 0 && s.tick >= s.maxTicks {
		slog.Info("max ticks reached", "tick", s.tick)
		s.Stop()
	}
}

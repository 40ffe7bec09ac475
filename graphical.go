package main

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/states/config"
	"github.com/pthm-cable/states/game"
	"github.com/pthm-cable/states/renderer"
	"github.com/pthm-cable/states/ui"
	"github.com/pthm-cable/states/volume"
)

const controlsLegend = "Tab: tuning | F1: HUD | F2: perf | H: keys | P: pause | drag: orbit | wheel: zoom"

// runGraphical opens the window, builds the GPU programs and runs the loop
// until the window closes.
func runGraphical(ctx context.Context, cfg *config.Config, tex *volume.VolumeTexture, opts runOptions) error {
	if err := renderer.OpenWindow(cfg, "States of Matter"); err != nil {
		return err
	}
	defer renderer.CloseWindow()

	gpuTex, err := renderer.UploadVolume(tex)
	if err != nil {
		return err
	}
	defer gpuTex.Unload()

	solid, err := renderer.NewSolidProgram()
	if err != nil {
		return err
	}
	defer solid.Unload()
	fluid, err := renderer.NewFluidProgram(cfg.Fluid.Segments)
	if err != nil {
		return err
	}
	defer fluid.Unload()
	gas, err := renderer.NewGasProgram(gpuTex)
	if err != nil {
		return err
	}
	defer gas.Unload()

	atomPass := renderer.NewAtomPass(rl.Black)
	defer atomPass.Unload()
	statesPass := renderer.NewStatesPass(solid, fluid, gas)
	defer statesPass.Unload()

	pair := newViewportPair(cfg, atomPass, statesPass)
	sched, err := newScheduler(cfg, pair, opts)
	if err != nil {
		return err
	}
	overlay := newOverlay(sched, cfg.Fluid.TrackPointer)

	host := renderer.NewHost(pair, atomPass, statesPass, renderer.HostOptions{
		Fluid:         sched.Fluid(),
		TrackPointer:  cfg.Fluid.TrackPointer,
		Overlay:       overlay.draw,
		InputCaptured: overlay.capturesPointer,
	})
	if err := host.Resize(); err != nil {
		return fmt.Errorf("initial resize: %w", err)
	}

	if err := sched.Run(ctx, host); err != nil {
		return err
	}
	return host.Err()
}

// overlay draws the debug UI over the composited viewports.
type overlay struct {
	sched    *game.Scheduler
	overlays *ui.OverlayRegistry
	hud      *ui.HUD
	perf     *ui.PerfPanel
	help     *ui.HelpPanel
	tuning   *ui.TuningPanel
}

func newOverlay(sched *game.Scheduler, trackPointer bool) *overlay {
	return &overlay{
		sched:    sched,
		overlays: ui.NewOverlayRegistry(),
		hud:      ui.NewHUD(),
		perf:     ui.NewPerfPanel(0, 10),
		help:     ui.NewHelpPanel(10, 130, 280),
		tuning:   ui.NewTuningPanel(10, 130, 280, sched.Raymarch(), sched.Fluid(), trackPointer),
	}
}

func (o *overlay) draw() {
	o.overlays.PollKeys()
	if rl.IsKeyPressed(rl.KeyP) {
		o.sched.TogglePause()
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	frame := o.sched.Frame()

	if o.overlays.IsEnabled(ui.OverlayHUD) {
		o.hud.Draw(ui.HUDData{
			Title:      "States of Matter",
			Tick:       o.sched.TickCount(),
			FrameIndex: frame.Raymarch.FrameIndex,
			Elapsed:    frame.Elapsed,
			FPS:        rl.GetFPS(),
			State:      o.sched.State().String(),
		})
		o.hud.DrawControls(h, controlsLegend)
	}
	if o.overlays.IsEnabled(ui.OverlayPerf) {
		o.perf.SetPosition(w-320, 10)
		o.perf.Draw(o.sched.Perf().Stats())
	}

	y := int32(130)
	if o.overlays.IsEnabled(ui.OverlayHelp) {
		o.help.SetPosition(10, y)
		y = o.help.Draw(o.overlays) + 10
	}
	if o.overlays.IsEnabled(ui.OverlayTuning) {
		o.tuning.SetPosition(10, y)
		o.tuning.Draw()
	}
}

func (o *overlay) capturesPointer() bool {
	return o.overlays.IsEnabled(ui.OverlayTuning) && o.tuning.Contains(rl.GetMousePosition())
}

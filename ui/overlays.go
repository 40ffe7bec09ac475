package ui

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayTuning OverlayID = "tuning"
	OverlayHUD    OverlayID = "hud"
	OverlayPerf   OverlayID = "perf"
	OverlayHelp   OverlayID = "help"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // Keyboard key to toggle (0 = no key)
	KeyLabel string // e.g. "Tab"
	Category string // "tuning" or "info"
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays. The HUD
// starts enabled.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.Register(OverlayDescriptor{
		ID: OverlayTuning, Name: "Tuning panel", Key: rl.KeyTab, KeyLabel: "Tab", Category: "tuning",
	})
	reg.Register(OverlayDescriptor{
		ID: OverlayHUD, Name: "HUD", Key: rl.KeyF1, KeyLabel: "F1", Category: "info",
	})
	reg.Register(OverlayDescriptor{
		ID: OverlayPerf, Name: "Perf phases", Key: rl.KeyF2, KeyLabel: "F2", Category: "info",
	})
	reg.Register(OverlayDescriptor{
		ID: OverlayHelp, Name: "Keys", Key: rl.KeyH, KeyLabel: "H", Category: "info",
	})
	reg.SetEnabled(OverlayHUD, true)
	return reg
}

// Register adds an overlay, disabled.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled sets an overlay's state. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns the overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress toggles the overlay bound to key. Returns the overlay, its
// new state and whether a toggle happened.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// PollKeys toggles overlays for every bound key pressed this frame.
func (r *OverlayRegistry) PollKeys() {
	r.pollKeys(rl.IsKeyPressed)
}

func (r *OverlayRegistry) pollKeys(pressed func(key int32) bool) {
	for _, desc := range r.descriptors {
		if desc.Key == 0 || !pressed(desc.Key) {
			continue
		}
		if id, on, ok := r.HandleKeyPress(desc.Key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}
}

// Package configurator runs the full normalization pipeline over a raw
// configuration: shape, then sections, then seat-derived console slots,
// then accessories. Every stage consumes only the previous stage's output
// plus static tables, so the whole pass is a pure reducer that is safe to
// re-run on every field change.
package configurator

import (
	"comfora/core-go/internal/accessory"
	"comfora/core-go/internal/catalog"
	"comfora/core-go/internal/console"
	"comfora/core-go/internal/pricing"
	"comfora/core-go/internal/sections"
	"comfora/core-go/internal/shape"
)

// RawConfiguration is the loosely-typed value arriving from the UI layer
// or historical storage. Every field tolerates the encodings old payloads
// carry; Normalize repairs all of them.
type RawConfiguration struct {
	Shape     string                               `json:"shape"`
	Sections  sections.RawMap                      `json:"sections"`
	Console   console.Raw                          `json:"console"`
	Lounger   accessory.RawLounger                 `json:"lounger"`
	Recliners map[string]accessory.RawReclinerZone `json:"recliners"`
}

// Configuration is the fully-normalized, internally-consistent value.
type Configuration struct {
	Shape     shape.Shape             `json:"shape"`
	Sections  sections.Map            `json:"sections"`
	Console   console.Config          `json:"console"`
	Lounger   accessory.LoungerConfig `json:"lounger"`
	Recliners accessory.ReclinerMap   `json:"recliners"`
}

// Derived is the seat/slot state the UI needs to render pickers. It is
// recomputed from the normalized value, never stored.
type Derived struct {
	TotalSeats     int                 `json:"total_seats"`
	MaxConsoles    int                 `json:"max_consoles"`
	LegalSlots     []console.LegalSlot `json:"legal_slots"`
	ActiveSections []shape.Tag         `json:"active_sections"`
}

// Normalize repairs a raw configuration into a consistent one. Total and
// idempotent: normalizing an already-normalized value is a no-op.
func Normalize(raw RawConfiguration) Configuration {
	sh := shape.Canonical(raw.Shape)
	secs := sections.Normalize(sh, raw.Sections)
	return Configuration{
		Shape:     sh,
		Sections:  secs,
		Console:   console.Reconcile(sh, secs, console.FromRaw(raw.Console)),
		Lounger:   accessory.NormalizeLounger(sh, accessory.LoungerFromRaw(raw.Lounger)),
		Recliners: accessory.NormalizeRecliners(sh, raw.Recliners),
	}
}

// Derive computes the seat count, console capacity and legal slot catalog
// for a normalized configuration.
func Derive(cfg Configuration) Derived {
	seats := sections.TotalSeats(cfg.Sections)
	return Derived{
		TotalSeats:     seats,
		MaxConsoles:    console.MaxConsoles(seats),
		LegalSlots:     console.LegalSlots(cfg.Shape, cfg.Sections),
		ActiveSections: shape.ActiveSections(cfg.Shape),
	}
}

// Price maps a normalized configuration and a catalog snapshot to the
// full price and fabric breakdown.
func Price(cfg Configuration, cat *catalog.Snapshot) pricing.Breakdown {
	return pricing.Calculate(pricing.Input{
		Sections:  cfg.Sections,
		Console:   cfg.Console,
		Lounger:   cfg.Lounger,
		Recliners: cfg.Recliners,
	}, cat)
}

// AsRaw converts a normalized configuration back to the raw form, for
// feeding a stored value through the pipeline again.
func (c Configuration) AsRaw() RawConfiguration {
	return RawConfiguration{
		Shape:     string(c.Shape),
		Sections:  c.Sections.AsRaw(),
		Console:   c.Console.AsRaw(),
		Lounger:   c.Lounger.AsRaw(),
		Recliners: c.Recliners.AsRaw(),
	}
}

package console

import (
	"fmt"
	"strconv"
	"strings"

	"comfora/core-go/internal/sections"
	"comfora/core-go/internal/shape"
)

// Slot is one console position together with its attached accessory.
// Placement and accessory live in the same record so the two can never
// drift out of lockstep. The zero value is the "unplaced" placeholder
// that keeps slot indexes stable when a placement becomes illegal.
type Slot struct {
	Zone        shape.Zone `json:"zone,omitempty"`
	AfterSeat   int        `json:"after_seat,omitempty"`
	AccessoryID string     `json:"accessory_id,omitempty"`
}

// IsPlaced reports whether the slot holds a concrete placement.
func (s Slot) IsPlaced() bool {
	return s.Zone != "" && s.AfterSeat >= 1
}

// Config is the normalized console state. Quantity is always recomputed
// from the seat count, never taken from input, and Slots is sized to it
// exactly.
type Config struct {
	Required bool   `json:"required"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Slots    []Slot `json:"slots"`
}

// Raw is the loosely-typed console state from stored configurations.
type Raw struct {
	Required any       `json:"required"`
	Size     string    `json:"size"`
	Slots    []RawSlot `json:"slots"`
}

// RawSlot tolerates loose zone spellings and stringly seat numbers.
type RawSlot struct {
	Zone        string `json:"zone"`
	AfterSeat   any    `json:"after_seat"`
	AccessoryID string `json:"accessory_id"`
}

// LegalSlot is one entry of the legal placement catalog for the current
// shape and section map.
type LegalSlot struct {
	Zone      shape.Zone `json:"zone"`
	AfterSeat int        `json:"after_seat"`
	Label     string     `json:"label"`
}

// DefaultSize is used when a stored console size is blank.
const DefaultSize = "standard"

// MaxConsoles is the hard cap on simultaneous console units: one fewer
// than the seat count, never negative. A console sits between two seats.
func MaxConsoles(totalSeats int) int {
	if totalSeats <= 1 {
		return 0
	}
	return totalSeats - 1
}

// LegalSlots enumerates every placement the current shape and sections
// permit, in zone order then seat order. A zone with n seats contributes
// slots after seats 1..n-1; a zone with one seat or none contributes
// nothing.
func LegalSlots(s shape.Shape, m sections.Map) []LegalSlot {
	var out []LegalSlot
	for _, zone := range shape.ActiveZones(s) {
		n := sections.ZoneSeats(m, zone)
		for after := 1; after < n; after++ {
			out = append(out, LegalSlot{
				Zone:      zone,
				AfterSeat: after,
				Label:     slotLabel(zone, after),
			})
		}
	}
	return out
}

// FromRaw coerces the loose form into typed values without applying any
// placement rules; Reconcile does the repairing.
func FromRaw(raw Raw) Config {
	slots := make([]Slot, 0, len(raw.Slots))
	for _, rs := range raw.Slots {
		slot := Slot{AccessoryID: strings.TrimSpace(rs.AccessoryID)}
		if zone, ok := shape.CanonicalZone(rs.Zone); ok {
			slot.Zone = zone
			slot.AfterSeat = coerceSeatNumber(rs.AfterSeat)
		}
		if !slot.IsPlaced() {
			slot = Slot{}
		}
		slots = append(slots, slot)
	}
	return Config{
		Required: truthy(raw.Required),
		Size:     coerceSize(raw.Size),
		Slots:    slots,
	}
}

// Reconcile repairs a console config against the current shape and
// sections. It resizes the slot list to exactly MaxConsoles (padding with
// placeholders, truncating from the tail), nulls placements that are no
// longer legal, and forces later duplicates of a (zone, afterSeat) pair to
// the placeholder with the first occurrence winning. Non-null placements
// keep their relative order and their slot index. Idempotent.
func Reconcile(s shape.Shape, m sections.Map, cfg Config) Config {
	max := MaxConsoles(sections.TotalSeats(m))
	size := coerceSize(cfg.Size)

	if !cfg.Required || max == 0 {
		return Config{Required: false, Size: size, Quantity: 0, Slots: []Slot{}}
	}

	legal := make(map[string]struct{})
	for _, ls := range LegalSlots(s, m) {
		legal[slotKey(ls.Zone, ls.AfterSeat)] = struct{}{}
	}

	slots := make([]Slot, max)
	copy(slots, cfg.Slots)

	seen := make(map[string]struct{}, max)
	for i, slot := range slots {
		if !slot.IsPlaced() {
			slots[i] = Slot{}
			continue
		}
		key := slotKey(slot.Zone, slot.AfterSeat)
		if _, ok := legal[key]; !ok {
			slots[i] = Slot{}
			continue
		}
		if _, dup := seen[key]; dup {
			slots[i] = Slot{}
			continue
		}
		seen[key] = struct{}{}
	}

	return Config{Required: true, Size: size, Quantity: max, Slots: slots}
}

// AsRaw converts a normalized config back to the raw form.
func (c Config) AsRaw() Raw {
	slots := make([]RawSlot, len(c.Slots))
	for i, s := range c.Slots {
		slots[i] = RawSlot{Zone: string(s.Zone), AfterSeat: s.AfterSeat, AccessoryID: s.AccessoryID}
	}
	return Raw{Required: c.Required, Size: c.Size, Slots: slots}
}

func slotKey(z shape.Zone, after int) string {
	return string(z) + "#" + strconv.Itoa(after)
}

func slotLabel(z shape.Zone, after int) string {
	return fmt.Sprintf("After seat %d (%s)", after, zoneDisplay(z))
}

func zoneDisplay(z shape.Zone) string {
	switch z {
	case shape.ZoneFront:
		return "Front"
	case shape.ZoneLeft:
		return "Left"
	case shape.ZoneRight:
		return "Right"
	case shape.ZoneCombo:
		return "Combo"
	default:
		return string(z)
	}
}

func coerceSize(size string) string {
	s := strings.TrimSpace(size)
	if s == "" {
		return DefaultSize
	}
	return s
}

func coerceSeatNumber(value any) int {
	switch v := value.(type) {
	case int:
		if v >= 1 {
			return v
		}
	case int64:
		if v >= 1 {
			return int(v)
		}
	case float64:
		if v >= 1 {
			return int(v)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 1 {
			return n
		}
	}
	return 0
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "1", "required", "on":
			return true
		}
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	}
	return false
}

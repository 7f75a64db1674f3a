package accessory

import (
	"sort"
	"strconv"
	"strings"

	"comfora/core-go/internal/shape"
)

// ReclinerZoneConfig is the normalized recliner state for one zone.
type ReclinerZoneConfig struct {
	Required          bool      `json:"required"`
	NumberOfRecliners int       `json:"number_of_recliners"`
	Positioning       Placement `json:"positioning"`
}

// ReclinerMap always carries one entry per zone in the universe; zones
// not active for the current shape hold the default record.
type ReclinerMap map[shape.Zone]ReclinerZoneConfig

// RawReclinerZone is the loosely-typed per-zone form.
type RawReclinerZone struct {
	Required          any    `json:"required"`
	NumberOfRecliners any    `json:"number_of_recliners"`
	Positioning       string `json:"positioning"`
}

// DefaultReclinerZone is the reset state: count and positioning are
// meaningless without required, so the whole record is forced back.
func DefaultReclinerZone() ReclinerZoneConfig {
	return ReclinerZoneConfig{Required: false, NumberOfRecliners: 0, Positioning: PlacementLHS}
}

// NormalizeRecliners repairs per-zone recliner state for the shape.
// Inactive zones and not-required zones get the full default; required
// zones clamp the count to at least one. Idempotent.
func NormalizeRecliners(s shape.Shape, raw map[string]RawReclinerZone) ReclinerMap {
	// Alias spellings of the same zone ("left" and "lhs") dedup first-wins
	// over the sorted key order, so the winner never depends on map
	// iteration order.
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	byZone := make(map[shape.Zone]RawReclinerZone, len(raw))
	for _, key := range keys {
		zone, ok := shape.CanonicalZone(key)
		if !ok {
			continue
		}
		if _, dup := byZone[zone]; dup {
			continue
		}
		byZone[zone] = raw[key]
	}

	allZones := []shape.Zone{shape.ZoneFront, shape.ZoneLeft, shape.ZoneRight, shape.ZoneCombo}
	out := make(ReclinerMap, len(allZones))
	for _, zone := range allZones {
		if !shape.IsZoneActive(s, zone) {
			out[zone] = DefaultReclinerZone()
			continue
		}
		rz, present := byZone[zone]
		if !present || !truthy(rz.Required) {
			out[zone] = DefaultReclinerZone()
			continue
		}
		out[zone] = ReclinerZoneConfig{
			Required:          true,
			NumberOfRecliners: coerceReclinerCount(rz.NumberOfRecliners),
			Positioning:       coercePlacement(rz.Positioning),
		}
	}
	return out
}

// AsRaw converts a normalized map back to the raw form.
func (m ReclinerMap) AsRaw() map[string]RawReclinerZone {
	out := make(map[string]RawReclinerZone, len(m))
	for zone, cfg := range m {
		out[string(zone)] = RawReclinerZone{
			Required:          cfg.Required,
			NumberOfRecliners: cfg.NumberOfRecliners,
			Positioning:       string(cfg.Positioning),
		}
	}
	return out
}

// TotalRecliners sums recliner units across required zones.
func (m ReclinerMap) TotalRecliners() int {
	total := 0
	for _, cfg := range m {
		if cfg.Required {
			total += cfg.NumberOfRecliners
		}
	}
	return total
}

func coerceReclinerCount(value any) int {
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
	return 1
}

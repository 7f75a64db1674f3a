package sections

import (
	"sort"
	"strconv"
	"strings"

	"comfora/core-go/internal/shape"
)

// Section is one structural zone after normalization. Every tag in the
// universe is always present in a Map; inactive tags carry the explicit
// "none" sentinel rather than being omitted, so consumers never probe
// for missing keys.
type Section struct {
	Seater   string `json:"seater"`
	Quantity int    `json:"quantity"`
}

// Map holds one Section per tag in the universe.
type Map map[shape.Tag]Section

// RawSection is the loosely-typed form arriving from stored configurations
// and UI events. Quantity tolerates numbers, numeric strings and garbage.
type RawSection struct {
	Seater   string `json:"seater"`
	Quantity any    `json:"quantity"`
}

// RawMap keys raw sections by loose tag spelling ("F", "f", " l1 ").
type RawMap map[string]RawSection

// Normalize repairs a raw section map into a shape-consistent one. It is
// total and idempotent: inactive tags are reset to "none", illegal seater
// values are coerced to the tag default, quantities are floored to 1.
func Normalize(s shape.Shape, raw RawMap) Map {
	// Alias spellings of the same tag ("F" and "front") dedup first-wins
	// over the sorted key order, so the winner never depends on map
	// iteration order.
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	byTag := make(map[shape.Tag]RawSection, len(raw))
	for _, key := range keys {
		tag, ok := canonicalTag(key)
		if !ok {
			continue
		}
		if _, dup := byTag[tag]; dup {
			continue
		}
		byTag[tag] = raw[key]
	}

	out := make(Map, len(shape.AllTags()))
	for _, tag := range shape.AllTags() {
		if !shape.IsActive(s, tag) {
			out[tag] = Section{Seater: shape.SeaterNone, Quantity: 1}
			continue
		}
		rs := byTag[tag]
		out[tag] = Section{
			Seater:   coerceSeater(s, tag, rs.Seater),
			Quantity: coerceQuantity(rs.Quantity),
		}
	}
	return out
}

// AsRaw converts a normalized map back to the raw form, for re-running the
// pipeline over an already-normalized value.
func (m Map) AsRaw() RawMap {
	out := make(RawMap, len(m))
	for tag, sec := range m {
		out[string(tag)] = RawSection{Seater: sec.Seater, Quantity: sec.Quantity}
	}
	return out
}

// TotalSeats sums physical seats over the seat-bearing tags. Corner and
// backrest joints never contribute.
func TotalSeats(m Map) int {
	total := 0
	for _, tag := range shape.SeatBearingTags {
		sec, ok := m[tag]
		if !ok {
			continue
		}
		qty := sec.Quantity
		if qty < 1 {
			qty = 1
		}
		total += shape.ParseSeatCount(sec.Seater) * qty
	}
	return total
}

// ZoneSeats returns the seat count of the single section backing a zone.
func ZoneSeats(m Map, z shape.Zone) int {
	tag, ok := shape.ZoneSectionTag(z)
	if !ok {
		return 0
	}
	sec, ok := m[tag]
	if !ok {
		return 0
	}
	return shape.ParseSeatCount(sec.Seater)
}

func canonicalTag(key string) (shape.Tag, bool) {
	switch strings.ToUpper(strings.TrimSpace(key)) {
	case "F", "FRONT":
		return shape.TagF, true
	case "L1":
		return shape.TagL1, true
	case "L2":
		return shape.TagL2, true
	case "R1":
		return shape.TagR1, true
	case "R2":
		return shape.TagR2, true
	case "C1":
		return shape.TagC1, true
	case "C2":
		return shape.TagC2, true
	default:
		return "", false
	}
}

// coerceSeater keeps a raw value only when it is a member of the allowed
// option set for (shape, tag); anything else becomes the tag default.
// Matching is case-insensitive and the canonical spelling always wins, so
// stale values from a previous shape can never survive.
func coerceSeater(s shape.Shape, tag shape.Tag, raw string) string {
	allowed := shape.AllowedSeaterOptions(s, tag)
	want := strings.ToLower(strings.TrimSpace(raw))
	for _, opt := range allowed {
		if strings.ToLower(opt) == want {
			return opt
		}
	}
	return allowed[0]
}

func coerceQuantity(value any) int {
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

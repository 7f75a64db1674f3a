package accessory

import (
	"strconv"
	"strings"

	"comfora/core-go/internal/shape"
)

// Placement is the side a lounger or recliner occupies.
type Placement string

const (
	PlacementLHS  Placement = "LHS"
	PlacementRHS  Placement = "RHS"
	PlacementBoth Placement = "Both"
)

// DefaultLoungerSize is the reference lounger length; pricing increments
// count upward from it in six-inch steps.
const DefaultLoungerSize = `5'6"`

// LoungerConfig is the normalized lounger state. Quantity always equals
// NumberOfLoungers.
type LoungerConfig struct {
	Required         bool      `json:"required"`
	NumberOfLoungers int       `json:"number_of_loungers"`
	Size             string    `json:"size"`
	Placement        Placement `json:"placement"`
	Storage          bool      `json:"storage"`
	Quantity         int       `json:"quantity"`
}

// RawLounger tolerates the loose encodings stored configurations carry:
// required as bool/string, counts as numbers or labels like "2 Nos.".
type RawLounger struct {
	Required         any    `json:"required"`
	NumberOfLoungers any    `json:"number_of_loungers"`
	Size             string `json:"size"`
	Placement        string `json:"placement"`
	Storage          any    `json:"storage"`
}

// DefaultLounger is the full not-required record. Returning the whole
// default rather than patching fields keeps stale values from leaking
// back in when the lounger is re-enabled later.
func DefaultLounger() LoungerConfig {
	return LoungerConfig{
		Required:         false,
		NumberOfLoungers: 1,
		Size:             DefaultLoungerSize,
		Placement:        PlacementLHS,
		Storage:          false,
		Quantity:         1,
	}
}

// LoungerFromRaw coerces loose types without applying shape rules.
func LoungerFromRaw(raw RawLounger) LoungerConfig {
	return LoungerConfig{
		Required:         truthy(raw.Required),
		NumberOfLoungers: coerceLoungerCount(raw.NumberOfLoungers),
		Size:             strings.TrimSpace(raw.Size),
		Placement:        coercePlacement(raw.Placement),
		Storage:          truthy(raw.Storage),
	}
}

// NormalizeLounger repairs a lounger config for the shape. Not-required
// yields the full default. An L-shape has a single free flank, so it caps
// the count at one and restricts placement to LHS. Two loungers always
// occupy both flanks. Idempotent.
func NormalizeLounger(s shape.Shape, cfg LoungerConfig) LoungerConfig {
	if !cfg.Required {
		return DefaultLounger()
	}

	count := cfg.NumberOfLoungers
	if count != 2 {
		count = 1
	}
	if s == shape.LShape {
		count = 1
	}

	size := cfg.Size
	if strings.TrimSpace(size) == "" {
		size = DefaultLoungerSize
	}

	out := LoungerConfig{
		Required:         true,
		NumberOfLoungers: count,
		Size:             size,
		Storage:          cfg.Storage,
		Quantity:         count,
	}

	if count == 2 {
		out.Placement = PlacementBoth
		return out
	}

	legal := singleLoungerPlacements(s)
	out.Placement = legal[0]
	for _, p := range legal {
		if p == cfg.Placement {
			out.Placement = p
			break
		}
	}
	return out
}

// AsRaw converts a normalized lounger back to the raw form.
func (c LoungerConfig) AsRaw() RawLounger {
	return RawLounger{
		Required:         c.Required,
		NumberOfLoungers: c.NumberOfLoungers,
		Size:             c.Size,
		Placement:        string(c.Placement),
		Storage:          c.Storage,
	}
}

func singleLoungerPlacements(s shape.Shape) []Placement {
	if s == shape.LShape {
		return []Placement{PlacementLHS}
	}
	return []Placement{PlacementLHS, PlacementRHS}
}

func coerceLoungerCount(value any) int {
	switch v := value.(type) {
	case int:
		return clampLoungerCount(v)
	case int64:
		return clampLoungerCount(int(v))
	case float64:
		return clampLoungerCount(int(v))
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		// Labels like "1 No." and "2 Nos." come from the option picker.
		s = strings.TrimSuffix(s, "nos.")
		s = strings.TrimSuffix(s, "no.")
		s = strings.TrimSpace(s)
		if n, err := strconv.Atoi(s); err == nil {
			return clampLoungerCount(n)
		}
	}
	return 1
}

func clampLoungerCount(n int) int {
	if n >= 2 {
		return 2
	}
	return 1
}

func coercePlacement(value string) Placement {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lhs", "left", "l":
		return PlacementLHS
	case "rhs", "right", "r":
		return PlacementRHS
	case "both", "b":
		return PlacementBoth
	default:
		return PlacementLHS
	}
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

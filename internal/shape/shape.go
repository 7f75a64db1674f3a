package shape

import (
	"strconv"
	"strings"
)

// Shape is the base silhouette of a modular seating product. It decides
// which sections exist at all; every downstream rule keys off it.
type Shape string

const (
	Standard Shape = "standard"
	LShape   Shape = "l_shape"
	UShape   Shape = "u_shape"
	Combo    Shape = "combo"
)

// SeaterNone marks a section that does not exist under the current shape.
const SeaterNone = "none"

// Canonical maps loose historical encodings of a shape ("L SHAPE", "l-shape",
// "U_Shape", booleans sneaking in from old payloads) to the closed enum.
// Unknown or empty values fall back to Standard.
func Canonical(value any) Shape {
	s, ok := value.(string)
	if !ok {
		return Standard
	}
	switch normalizeKey(s) {
	case "standard", "straight", "std":
		return Standard
	case "lshape", "lshaped", "l":
		return LShape
	case "ushape", "ushaped", "u":
		return UShape
	case "combo", "combination", "modular":
		return Combo
	default:
		return Standard
	}
}

// normalizeKey lowercases and strips separators so that historical
// variants ("L SHAPE", "l-shape", "L_Shape") compare equal.
func normalizeKey(s string) string {
	key := strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '.':
			return -1
		}
		return r
	}, key)
}

// ParseSeatCount extracts the leading integer of a seater label:
// "3-Seater No Mech" -> 3, "2.5-Seater" -> 2. Non-seat labels ("none",
// "Corner", "Backrest") and unparseable values yield 0.
func ParseSeatCount(label string) int {
	s := strings.TrimSpace(label)
	if s == "" || strings.EqualFold(s, SeaterNone) {
		return 0
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// IsCornerLabel and IsBackrestLabel classify the non-seat roles a section
// can take. Matching is substring-based because historical data carries
// variants like "Corner Unit" and "Backrest Panel".
func IsCornerLabel(label string) bool {
	return strings.Contains(strings.ToLower(label), "corner")
}

func IsBackrestLabel(label string) bool {
	return strings.Contains(strings.ToLower(label), "backrest")
}

package shape

// Tag identifies a structural section of the product. F is the front run,
// L1/R1/C1 are corner or backrest joints, L2/R2/C2 are the flanking runs.
type Tag string

const (
	TagF  Tag = "F"
	TagL1 Tag = "L1"
	TagL2 Tag = "L2"
	TagR1 Tag = "R1"
	TagR2 Tag = "R2"
	TagC1 Tag = "C1"
	TagC2 Tag = "C2"
)

// Zone is a seat-bearing region a console or recliner can belong to.
type Zone string

const (
	ZoneFront Zone = "front"
	ZoneLeft  Zone = "left"
	ZoneRight Zone = "right"
	ZoneCombo Zone = "combo"
)

var tagUniverse = []Tag{TagF, TagL1, TagL2, TagR1, TagR2, TagC1, TagC2}

// SeatBearingTags lists the tags whose seater value encodes physical seats.
// Corner/backrest joints carry width and fabric but never seats.
var SeatBearingTags = []Tag{TagF, TagL2, TagR2, TagC2}

var activeByShape = map[Shape][]Tag{
	Standard: {TagF},
	LShape:   {TagF, TagL1, TagL2},
	UShape:   {TagF, TagL1, TagL2, TagR1, TagR2},
	Combo:    {TagF, TagL1, TagL2, TagR1, TagR2, TagC1, TagC2},
}

var seaterOptionsByTag = map[Tag][]string{
	TagF:  {"2-Seater", "2.5-Seater", "3-Seater", "3.5-Seater", "4-Seater"},
	TagL1: {"Corner", "Backrest"},
	TagL2: {"1-Seater", "1.5-Seater", "2-Seater", "2.5-Seater", "3-Seater"},
	TagR1: {"Corner", "Backrest"},
	TagR2: {"1-Seater", "1.5-Seater", "2-Seater", "2.5-Seater", "3-Seater"},
	TagC1: {"Backrest", "Corner"},
	TagC2: {"2-Seater", "2.5-Seater", "3-Seater"},
}

var zonesByShape = map[Shape][]Zone{
	Standard: {ZoneFront},
	LShape:   {ZoneFront, ZoneLeft},
	UShape:   {ZoneFront, ZoneLeft, ZoneRight},
	Combo:    {ZoneFront, ZoneLeft, ZoneRight, ZoneCombo},
}

var zoneSectionTag = map[Zone]Tag{
	ZoneFront: TagF,
	ZoneLeft:  TagL2,
	ZoneRight: TagR2,
	ZoneCombo: TagC2,
}

// AllTags returns the full tag universe in stable order.
func AllTags() []Tag {
	out := make([]Tag, len(tagUniverse))
	copy(out, tagUniverse)
	return out
}

// ActiveSections returns the tags that exist under the given shape.
func ActiveSections(s Shape) []Tag {
	tags, ok := activeByShape[s]
	if !ok {
		tags = activeByShape[Standard]
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}

// IsActive reports whether the tag exists under the shape.
func IsActive(s Shape, t Tag) bool {
	tags, ok := activeByShape[s]
	if !ok {
		tags = activeByShape[Standard]
	}
	for _, tag := range tags {
		if tag == t {
			return true
		}
	}
	return false
}

// AllowedSeaterOptions returns the ordered option list for (shape, tag).
// The first element is the default. Inactive or unknown tags yield the
// single-element list ["none"] so callers never branch on missing data.
func AllowedSeaterOptions(s Shape, t Tag) []string {
	if !IsActive(s, t) {
		return []string{SeaterNone}
	}
	opts, ok := seaterOptionsByTag[t]
	if !ok {
		return []string{SeaterNone}
	}
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}

// DefaultSeater returns the default seater value for (shape, tag).
func DefaultSeater(s Shape, t Tag) string {
	return AllowedSeaterOptions(s, t)[0]
}

// ActiveZones returns the seat-bearing zones available for consoles and
// recliners under the shape. Front is always present; left needs an L run,
// right a U run, combo the full modular build.
func ActiveZones(s Shape) []Zone {
	zones, ok := zonesByShape[s]
	if !ok {
		zones = zonesByShape[Standard]
	}
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// IsZoneActive reports whether the zone exists under the shape.
func IsZoneActive(s Shape, z Zone) bool {
	for _, zone := range ActiveZones(s) {
		if zone == z {
			return true
		}
	}
	return false
}

// ZoneSectionTag maps a zone to the section whose seater value bounds it.
func ZoneSectionTag(z Zone) (Tag, bool) {
	t, ok := zoneSectionTag[z]
	return t, ok
}

// CanonicalZone maps loose zone strings to the closed set; ok is false for
// anything unrecognized (including the empty "unplaced" value).
func CanonicalZone(value string) (Zone, bool) {
	switch normalizeKey(value) {
	case "front", "f", "center", "middle":
		return ZoneFront, true
	case "left", "l", "lhs":
		return ZoneLeft, true
	case "right", "r", "rhs":
		return ZoneRight, true
	case "combo", "c", "combination":
		return ZoneCombo, true
	default:
		return "", false
	}
}

package sections

import (
	"reflect"
	"testing"

	"comfora/core-go/internal/shape"
)

func TestNormalize_DefaultsForEmptyInput(t *testing.T) {
	m := Normalize(shape.Standard, nil)

	if len(m) != 7 {
		t.Fatalf("expected all 7 tags present, got %d", len(m))
	}
	if sec := m[shape.TagF]; sec.Seater != "2-Seater" || sec.Quantity != 1 {
		t.Fatalf("expected F default 2-Seater qty 1, got %+v", sec)
	}
	for _, tag := range []shape.Tag{shape.TagL1, shape.TagL2, shape.TagR1, shape.TagR2, shape.TagC1, shape.TagC2} {
		if sec := m[tag]; sec.Seater != shape.SeaterNone {
			t.Fatalf("expected %s inactive none, got %+v", tag, sec)
		}
	}
}

func TestNormalize_CoercesIllegalValues(t *testing.T) {
	m := Normalize(shape.LShape, RawMap{
		"F":  {Seater: "9000-Seater", Quantity: "2"},
		"L1": {Seater: "3-Seater"},
		"l2": {Seater: "2-seater", Quantity: -4},
	})

	if sec := m[shape.TagF]; sec.Seater != "2-Seater" || sec.Quantity != 2 {
		t.Fatalf("expected F coerced to default with qty 2, got %+v", sec)
	}
	// L1 only carries corner/backrest roles; a seater value is illegal.
	if sec := m[shape.TagL1]; sec.Seater != "Corner" {
		t.Fatalf("expected L1 coerced to Corner, got %+v", sec)
	}
	// Loose tag casing and option casing are accepted; the canonical
	// spelling wins and the negative quantity floors to 1.
	if sec := m[shape.TagL2]; sec.Seater != "2-Seater" || sec.Quantity != 1 {
		t.Fatalf("expected L2 2-Seater qty 1, got %+v", sec)
	}
}

func TestNormalize_AliasConflictDeterministic(t *testing.T) {
	// Two spellings of the same tag in one payload: the winner must be
	// decided by sorted key order, not map iteration order.
	raw := RawMap{
		"F":     {Seater: "3-Seater"},
		"front": {Seater: "4-Seater"},
	}

	first := Normalize(shape.Standard, raw)
	if sec := first[shape.TagF]; sec.Seater != "3-Seater" {
		t.Fatalf(`expected "F" entry to win over "front", got %+v`, sec)
	}
	for i := 0; i < 200; i++ {
		if got := Normalize(shape.Standard, raw); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged:\nfirst: %+v\ngot:   %+v", i, first, got)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := RawMap{
		"F":  {Seater: "4-Seater", Quantity: 1.0},
		"R2": {Seater: "garbage"},
		"C1": {Seater: "Backrest"},
	}
	for _, s := range []shape.Shape{shape.Standard, shape.LShape, shape.UShape, shape.Combo} {
		once := Normalize(s, raw)
		twice := Normalize(s, once.AsRaw())
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("%s: normalize not idempotent:\nonce:  %+v\ntwice: %+v", s, once, twice)
		}
	}
}

func TestNormalize_ShapeReflow(t *testing.T) {
	// STANDARD with a 4-seater front, detour through L-SHAPE, back to
	// STANDARD: F must end on a legal standard value and the L sections
	// must never stay populated while the shape is standard.
	std := Normalize(shape.Standard, RawMap{"F": {Seater: "4-Seater"}})
	l := Normalize(shape.LShape, std.AsRaw())
	back := Normalize(shape.Standard, l.AsRaw())

	allowed := shape.AllowedSeaterOptions(shape.Standard, shape.TagF)
	found := false
	for _, opt := range allowed {
		if back[shape.TagF].Seater == opt {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected F to land on a legal standard value, got %q", back[shape.TagF].Seater)
	}
	if back[shape.TagL1].Seater != shape.SeaterNone || back[shape.TagL2].Seater != shape.SeaterNone {
		t.Fatalf("expected L sections cleared on standard, got L1=%q L2=%q", back[shape.TagL1].Seater, back[shape.TagL2].Seater)
	}
}

func TestTotalSeats(t *testing.T) {
	m := Normalize(shape.UShape, RawMap{
		"F":  {Seater: "3-Seater"},
		"L2": {Seater: "2-Seater"},
		"R2": {Seater: "2-Seater"},
	})
	if got := TotalSeats(m); got != 7 {
		t.Fatalf("expected 7 seats, got %d", got)
	}
}

func TestTotalSeats_QuantityMultiplies(t *testing.T) {
	m := Normalize(shape.Standard, RawMap{"F": {Seater: "2-Seater", Quantity: 3}})
	if got := TotalSeats(m); got != 6 {
		t.Fatalf("expected 6 seats, got %d", got)
	}
}

func TestTotalSeats_CornersNeverCount(t *testing.T) {
	m := Normalize(shape.Combo, RawMap{
		"F":  {Seater: "2-Seater"},
		"L1": {Seater: "Corner"},
		"R1": {Seater: "Corner"},
		"C1": {Seater: "Backrest"},
		"L2": {Seater: "1-Seater"},
		"R2": {Seater: "1-Seater"},
		"C2": {Seater: "2-Seater"},
	})
	if got := TotalSeats(m); got != 6 {
		t.Fatalf("expected 6 seats (2+1+1+2), got %d", got)
	}
}

func TestZoneSeats(t *testing.T) {
	m := Normalize(shape.UShape, RawMap{
		"F":  {Seater: "3-Seater"},
		"L2": {Seater: "2-Seater"},
	})
	if got := ZoneSeats(m, shape.ZoneFront); got != 3 {
		t.Fatalf("expected 3 front seats, got %d", got)
	}
	if got := ZoneSeats(m, shape.ZoneLeft); got != 2 {
		t.Fatalf("expected 2 left seats, got %d", got)
	}
	if got := ZoneSeats(m, shape.ZoneCombo); got != 0 {
		t.Fatalf("expected 0 combo seats on u_shape, got %d", got)
	}
}

package configurator

import (
	"reflect"
	"testing"

	"comfora/core-go/internal/accessory"
	"comfora/core-go/internal/catalog"
	"comfora/core-go/internal/console"
	"comfora/core-go/internal/sections"
	"comfora/core-go/internal/shape"
)

func messyRaw(shapeValue string) RawConfiguration {
	return RawConfiguration{
		Shape: shapeValue,
		Sections: sections.RawMap{
			"F":  {Seater: "4-Seater", Quantity: "1"},
			"l2": {Seater: "2-Seater"},
			"R2": {Seater: "banana", Quantity: 0},
		},
		Console: console.Raw{
			Required: "yes",
			Slots: []console.RawSlot{
				{Zone: "front", AfterSeat: 2, AccessoryID: "tray"},
				{Zone: "right", AfterSeat: "1"},
				{Zone: "front", AfterSeat: 2.0},
			},
		},
		Lounger: accessory.RawLounger{
			Required:         "true",
			NumberOfLoungers: "2 Nos.",
			Placement:        "LHS",
		},
		Recliners: map[string]accessory.RawReclinerZone{
			"front": {Required: true, NumberOfRecliners: "2"},
			"combo": {Required: "yes", NumberOfRecliners: 1},
		},
	}
}

func TestNormalize_FixedPointAcrossShapes(t *testing.T) {
	for _, sh := range []string{"standard", "L SHAPE", "u-shape", "Combo"} {
		once := Normalize(messyRaw(sh))
		twice := Normalize(once.AsRaw())
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("%s: pipeline not idempotent:\nonce:  %+v\ntwice: %+v", sh, once, twice)
		}
	}
}

func TestNormalize_SeatConsoleLaw(t *testing.T) {
	for _, sh := range []string{"standard", "l_shape", "u_shape", "combo", "garbage"} {
		cfg := Normalize(messyRaw(sh))
		d := Derive(cfg)

		if want := console.MaxConsoles(d.TotalSeats); d.MaxConsoles != want {
			t.Fatalf("%s: expected max consoles %d, got %d", sh, want, d.MaxConsoles)
		}
		if cfg.Console.Required && len(cfg.Console.Slots) != d.MaxConsoles {
			t.Fatalf("%s: expected %d slots, got %d", sh, d.MaxConsoles, len(cfg.Console.Slots))
		}
	}
}

func TestNormalize_NoDuplicatePlacements(t *testing.T) {
	cfg := Normalize(messyRaw("u_shape"))

	seen := map[[2]any]bool{}
	for _, slot := range cfg.Console.Slots {
		if !slot.IsPlaced() {
			continue
		}
		key := [2]any{slot.Zone, slot.AfterSeat}
		if seen[key] {
			t.Fatalf("duplicate placement %v in %+v", key, cfg.Console.Slots)
		}
		seen[key] = true
	}
}

func TestNormalize_PlacementsMembersOfLegalSet(t *testing.T) {
	cfg := Normalize(messyRaw("l_shape"))

	legal := map[[2]any]bool{}
	for _, ls := range console.LegalSlots(cfg.Shape, cfg.Sections) {
		legal[[2]any{ls.Zone, ls.AfterSeat}] = true
	}
	for _, slot := range cfg.Console.Slots {
		if slot.IsPlaced() && !legal[[2]any{slot.Zone, slot.AfterSeat}] {
			t.Fatalf("placement %+v outside legal set", slot)
		}
	}
}

func TestNormalize_ShapeRoundTripClearsFlanks(t *testing.T) {
	std := Normalize(messyRaw("standard"))
	l := Normalize(RawConfiguration{Shape: "l shape", Sections: std.Sections.AsRaw()})
	back := Normalize(RawConfiguration{Shape: "standard", Sections: l.Sections.AsRaw()})

	if back.Sections[shape.TagL1].Seater != shape.SeaterNone ||
		back.Sections[shape.TagL2].Seater != shape.SeaterNone {
		t.Fatalf("expected flanks cleared after round trip, got %+v", back.Sections)
	}
}

func TestNormalize_UnknownShapeFallsBack(t *testing.T) {
	cfg := Normalize(RawConfiguration{Shape: "pentagon"})
	if cfg.Shape != shape.Standard {
		t.Fatalf("expected fallback to standard, got %q", cfg.Shape)
	}
}

func TestPrice_EndToEnd(t *testing.T) {
	snap := catalog.Defaults()
	snap.Pricing.Base2Seater = 10000

	cfg := Normalize(RawConfiguration{
		Shape:    "standard",
		Sections: sections.RawMap{"F": {Seater: "4-Seater"}},
	})
	bd := Price(cfg, snap)

	if bd.TotalPrice != 17000 {
		t.Fatalf("expected total 17000, got %v", bd.TotalPrice)
	}
	if bd.Incomplete {
		t.Fatalf("expected complete pricing, got missing=%v", bd.MissingKeys)
	}
}

func TestDerive_ScenarioStandardTwoSeater(t *testing.T) {
	cfg := Normalize(RawConfiguration{
		Shape:    "standard",
		Sections: sections.RawMap{"F": {Seater: "2-Seater"}},
	})
	d := Derive(cfg)

	if d.TotalSeats != 2 || d.MaxConsoles != 1 {
		t.Fatalf("expected 2 seats / 1 console, got %+v", d)
	}
	if len(d.LegalSlots) != 1 || d.LegalSlots[0].Zone != shape.ZoneFront || d.LegalSlots[0].AfterSeat != 1 {
		t.Fatalf("expected single front slot, got %+v", d.LegalSlots)
	}
}

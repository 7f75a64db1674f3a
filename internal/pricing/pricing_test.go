package pricing

import (
	"testing"

	"comfora/core-go/internal/accessory"
	"comfora/core-go/internal/catalog"
	"comfora/core-go/internal/console"
	"comfora/core-go/internal/sections"
	"comfora/core-go/internal/shape"
)

func testSnapshot() *catalog.Snapshot {
	snap := catalog.Defaults()
	snap.Pricing.Base2Seater = 10000
	snap.Pricing.AccessoryPrices["cupholder"] = 450
	return snap
}

func normalizedInput(s shape.Shape, raw sections.RawMap) Input {
	secs := sections.Normalize(s, raw)
	return Input{
		Sections:  secs,
		Console:   console.Reconcile(s, secs, console.Config{}),
		Lounger:   accessory.NormalizeLounger(s, accessory.LoungerConfig{}),
		Recliners: accessory.NormalizeRecliners(s, nil),
	}
}

func sectionLine(t *testing.T, bd Breakdown, tag shape.Tag) SectionLine {
	t.Helper()
	for _, line := range bd.Sections {
		if line.Tag == tag {
			return line
		}
	}
	t.Fatalf("no line for %s in %+v", tag, bd.Sections)
	return SectionLine{}
}

func TestCalculate_FourSeaterSection(t *testing.T) {
	in := normalizedInput(shape.Standard, sections.RawMap{"F": {Seater: "4-Seater"}})

	bd := Calculate(in, testSnapshot())

	// 10000 * (1.00 + 0.35*2)
	if got := sectionLine(t, bd, shape.TagF).Price; got != 17000 {
		t.Fatalf("expected 17000, got %v", got)
	}
	if bd.Incomplete {
		t.Fatalf("expected complete pricing, got missing=%v", bd.MissingKeys)
	}
}

func TestCalculate_CornerAndBackrestPercentages(t *testing.T) {
	in := normalizedInput(shape.Combo, sections.RawMap{
		"F":  {Seater: "2-Seater"},
		"L1": {Seater: "Corner"},
		"C1": {Seater: "Backrest"},
	})

	bd := Calculate(in, testSnapshot())

	if got := sectionLine(t, bd, shape.TagL1).Price; got != 6500 {
		t.Fatalf("expected corner at 65%% of base, got %v", got)
	}
	if got := sectionLine(t, bd, shape.TagC1).Price; got != 1400 {
		t.Fatalf("expected backrest at 14%% of base, got %v", got)
	}
	if got := sectionLine(t, bd, shape.TagF).Price; got != 10000 {
		t.Fatalf("expected 2-seater at base, got %v", got)
	}
}

func TestCalculate_SectionFabric(t *testing.T) {
	in := normalizedInput(shape.LShape, sections.RawMap{
		"F":  {Seater: "2-Seater"},
		"L1": {Seater: "Corner"},
	})

	bd := Calculate(in, testSnapshot())

	// 2 seats * 30in = 60in; (60/120) * 21 = 10.5 meters.
	if got := sectionLine(t, bd, shape.TagF).FabricMeters; got != 10.5 {
		t.Fatalf("expected 10.5 meters for 2-seater, got %v", got)
	}
	// Corner width bucket 30 maps to 5.5 meters in the default table.
	if got := sectionLine(t, bd, shape.TagL1).FabricMeters; got != 5.5 {
		t.Fatalf("expected 5.5 meters for corner, got %v", got)
	}
}

func TestCalculate_QuantityMultiplies(t *testing.T) {
	in := normalizedInput(shape.Standard, sections.RawMap{"F": {Seater: "3-Seater", Quantity: 2}})

	bd := Calculate(in, testSnapshot())

	// 10000 * 1.35 * 2
	if got := sectionLine(t, bd, shape.TagF).Price; got != 27000 {
		t.Fatalf("expected 27000, got %v", got)
	}
}

func TestCalculate_PriceMonotonicInSeatCount(t *testing.T) {
	snap := testSnapshot()
	prev := -1.0
	for _, seater := range []string{"2-Seater", "2.5-Seater", "3-Seater", "3.5-Seater", "4-Seater"} {
		in := normalizedInput(shape.Standard, sections.RawMap{"F": {Seater: seater}})
		got := sectionLine(t, Calculate(in, snap), shape.TagF).Price
		if got < prev {
			t.Fatalf("price decreased at %q: %v < %v", seater, got, prev)
		}
		prev = got
	}
}

func TestCalculate_LoungerWithIncrement(t *testing.T) {
	in := normalizedInput(shape.Standard, sections.RawMap{"F": {Seater: "2-Seater"}})
	in.Lounger = accessory.NormalizeLounger(shape.Standard, accessory.LoungerFromRaw(accessory.RawLounger{
		Required:         true,
		NumberOfLoungers: 1,
		Size:             `6'0"`,
	}))

	bd := Calculate(in, testSnapshot())

	// One 6-inch increment over the 5'6" reference: 40% + 4% of base.
	if bd.LoungerPrice != 4400 {
		t.Fatalf("expected lounger price 4400, got %v", bd.LoungerPrice)
	}
	if bd.LoungerFabric != 8.75 {
		t.Fatalf("expected lounger fabric 8.75, got %v", bd.LoungerFabric)
	}
}

func TestCalculate_LoungerStorageAndPair(t *testing.T) {
	in := normalizedInput(shape.Standard, sections.RawMap{"F": {Seater: "2-Seater"}})
	in.Lounger = accessory.NormalizeLounger(shape.Standard, accessory.LoungerFromRaw(accessory.RawLounger{
		Required:         true,
		NumberOfLoungers: 2,
		Size:             `5'6"`,
		Storage:          true,
	}))

	bd := Calculate(in, testSnapshot())

	// (10000*0.40 + 1500 storage) per lounger, twice.
	if bd.LoungerPrice != 11000 {
		t.Fatalf("expected lounger price 11000, got %v", bd.LoungerPrice)
	}
}

func TestCalculate_ReclinerUnits(t *testing.T) {
	in := normalizedInput(shape.UShape, sections.RawMap{"F": {Seater: "3-Seater"}})
	in.Recliners = accessory.NormalizeRecliners(shape.UShape, map[string]accessory.RawReclinerZone{
		"front": {Required: true, NumberOfRecliners: 2},
		"left":  {Required: true, NumberOfRecliners: 1},
	})

	bd := Calculate(in, testSnapshot())

	if bd.ReclinerPrice != 3*9500 {
		t.Fatalf("expected recliner price %v, got %v", 3*9500, bd.ReclinerPrice)
	}
	if bd.ReclinerFabric != 19.5 {
		t.Fatalf("expected recliner fabric 19.5, got %v", bd.ReclinerFabric)
	}
}

func TestCalculate_ConsoleSlotsAndAccessories(t *testing.T) {
	secs := sections.Normalize(shape.Standard, sections.RawMap{"F": {Seater: "4-Seater"}})
	in := Input{
		Sections: secs,
		Console: console.Reconcile(shape.Standard, secs, console.Config{
			Required: true,
			Size:     "standard",
			Slots: []console.Slot{
				{Zone: shape.ZoneFront, AfterSeat: 1, AccessoryID: "cupholder"},
				{Zone: shape.ZoneFront, AfterSeat: 2},
			},
		}),
		Lounger:   accessory.DefaultLounger(),
		Recliners: accessory.NormalizeRecliners(shape.Standard, nil),
	}

	bd := Calculate(in, testSnapshot())

	// Two placed slots at 2500 each plus one 450 accessory.
	if bd.ConsolePrice != 5450 {
		t.Fatalf("expected console price 5450, got %v", bd.ConsolePrice)
	}
	if bd.ConsoleFabric != 3.0 {
		t.Fatalf("expected console fabric 3.0, got %v", bd.ConsoleFabric)
	}
	if bd.Incomplete {
		t.Fatalf("expected complete pricing, got missing=%v", bd.MissingKeys)
	}
}

func TestCalculate_MissingCatalogEntriesFlagIncomplete(t *testing.T) {
	secs := sections.Normalize(shape.Standard, sections.RawMap{"F": {Seater: "2-Seater"}})
	in := Input{
		Sections: secs,
		Console: console.Reconcile(shape.Standard, secs, console.Config{
			Required: true,
			Slots:    []console.Slot{{Zone: shape.ZoneFront, AfterSeat: 1, AccessoryID: "mystery"}},
		}),
		Lounger:   accessory.DefaultLounger(),
		Recliners: accessory.NormalizeRecliners(shape.Standard, nil),
	}

	bd := Calculate(in, testSnapshot())

	if !bd.Incomplete {
		t.Fatalf("expected incomplete pricing")
	}
	if len(bd.MissingKeys) == 0 {
		t.Fatalf("expected missing keys recorded")
	}
}

func TestCalculate_MissingBasePriceIsZeroNotNaN(t *testing.T) {
	in := normalizedInput(shape.Standard, sections.RawMap{"F": {Seater: "3-Seater"}})

	bd := Calculate(in, catalog.Defaults())

	if !bd.Incomplete {
		t.Fatalf("expected incomplete pricing without a base price")
	}
	if got := sectionLine(t, bd, shape.TagF).Price; got != 0 {
		t.Fatalf("expected zero section price, got %v", got)
	}
	if bd.TotalPrice != 0 {
		t.Fatalf("expected zero total, got %v", bd.TotalPrice)
	}
}

func TestCalculate_NilCatalogFallsBackToDefaults(t *testing.T) {
	in := normalizedInput(shape.Standard, sections.RawMap{"F": {Seater: "2-Seater"}})

	bd := Calculate(in, nil)

	if got := sectionLine(t, bd, shape.TagF).FabricMeters; got != 10.5 {
		t.Fatalf("expected default fabric table applied, got %v", got)
	}
}

// Package catalog holds the read-only price and fabric tables the engine
// consumes. A Snapshot is immutable once built; catalog changes produce a
// fresh snapshot that is swapped in atomically, and callers re-run the
// whole pipeline against it rather than patching derived values.
package catalog

// Snapshot is one immutable catalog version.
type Snapshot struct {
	Version string
	Pricing PricingTable
	Fabric  FabricTable
	Lounger LoungerTable
}

// PricingTable carries the base unit price and the percentage multipliers
// that shape every section price.
type PricingTable struct {
	Base2Seater             float64
	SeatUpgradePercent      float64
	CornerPercent           float64
	BackrestPercent         float64
	LoungerBasePercent      float64
	LoungerIncrementPercent float64
	LoungerStorageSurcharge float64
	ReclinerUnitPrice       float64
	ConsoleRates            map[string]float64
	AccessoryPrices         map[string]float64
}

// FabricTable carries fabric-meter constants. They deliberately do not
// mirror the pricing multipliers; the two catalogs diverge upstream.
type FabricTable struct {
	SeatWidthInches        float64
	MetersPer120Inches     float64
	BackrestMeters         float64
	CornerMetersByWidth    map[int]float64
	CornerWidthBySeatWidth map[int]int
	DefaultCornerWidth     int
	LoungerBaseMeters      float64
	LoungerIncrementMeters float64
	ReclinerUnitMeters     float64
	ConsoleUnitMeters      float64
}

// LoungerTable maps lounger size keys to widths and fixes the reference
// size the pricing increments count from.
type LoungerTable struct {
	ReferenceWidthInches int
	IncrementInches      int
	SizeWidthInches      map[string]int
}

// Defaults returns the built-in catalog used when neither a catalog file
// nor a database is configured. Values track the showroom defaults.
func Defaults() *Snapshot {
	return &Snapshot{
		Version: "builtin",
		Pricing: PricingTable{
			Base2Seater:             0,
			SeatUpgradePercent:      0.35,
			CornerPercent:           0.65,
			BackrestPercent:         0.14,
			LoungerBasePercent:      0.40,
			LoungerIncrementPercent: 0.04,
			LoungerStorageSurcharge: 1500,
			ReclinerUnitPrice:       9500,
			ConsoleRates: map[string]float64{
				"standard": 2500,
				"wide":     3500,
			},
			AccessoryPrices: map[string]float64{},
		},
		Fabric: FabricTable{
			SeatWidthInches:    30,
			MetersPer120Inches: 21,
			BackrestMeters:     2.5,
			CornerMetersByWidth: map[int]float64{
				28: 5.0,
				30: 5.5,
				32: 6.0,
			},
			CornerWidthBySeatWidth: map[int]int{
				28: 28,
				30: 30,
				32: 32,
			},
			DefaultCornerWidth:     30,
			LoungerBaseMeters:      8.0,
			LoungerIncrementMeters: 0.75,
			ReclinerUnitMeters:     6.5,
			ConsoleUnitMeters:      1.5,
		},
		Lounger: LoungerTable{
			ReferenceWidthInches: 66,
			IncrementInches:      6,
			SizeWidthInches: map[string]int{
				`5'6"`: 66,
				`6'0"`: 72,
				`6'6"`: 78,
				`7'0"`: 84,
			},
		},
	}
}

// CornerWidth resolves the corner width bucket for a seat width, falling
// back to the default bucket when the table has no exact entry.
func (f FabricTable) CornerWidth(seatWidth int) int {
	if w, ok := f.CornerWidthBySeatWidth[seatWidth]; ok {
		return w
	}
	return f.DefaultCornerWidth
}

// CornerMeters resolves fabric meters for a corner width bucket.
func (f FabricTable) CornerMeters(width int) (float64, bool) {
	m, ok := f.CornerMetersByWidth[width]
	if !ok {
		m, ok = f.CornerMetersByWidth[f.DefaultCornerWidth]
	}
	return m, ok
}

// SizeWidth resolves a lounger size key to its width in inches.
func (l LoungerTable) SizeWidth(size string) (int, bool) {
	w, ok := l.SizeWidthInches[size]
	return w, ok
}

// Increments counts full size increments above the reference width.
func (l LoungerTable) Increments(widthInches int) int {
	if l.IncrementInches <= 0 || widthInches <= l.ReferenceWidthInches {
		return 0
	}
	return (widthInches - l.ReferenceWidthInches) / l.IncrementInches
}

package pricing

import (
	"math"
	"sort"

	"comfora/core-go/internal/accessory"
	"comfora/core-go/internal/catalog"
	"comfora/core-go/internal/console"
	"comfora/core-go/internal/sections"
	"comfora/core-go/internal/shape"
)

// Input is a fully-normalized configuration ready for pricing. The
// calculator assumes the normalizers have already run; it never repairs.
type Input struct {
	Sections  sections.Map
	Console   console.Config
	Lounger   accessory.LoungerConfig
	Recliners accessory.ReclinerMap
}

// SectionLine is the price and fabric contribution of one section.
type SectionLine struct {
	Tag          shape.Tag `json:"tag"`
	Seater       string    `json:"seater"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	FabricMeters float64   `json:"fabric_meters"`
}

// Breakdown is the full price and fabric result. Every branch that does
// not apply contributes exactly zero; a missing catalog entry flips
// Incomplete and records the key instead of failing, since a partial
// price is safer to show a shopper than an error.
type Breakdown struct {
	Sections          []SectionLine `json:"sections"`
	SectionsTotal     float64       `json:"sections_total"`
	LoungerPrice      float64       `json:"lounger_price"`
	LoungerFabric     float64       `json:"lounger_fabric"`
	ReclinerPrice     float64       `json:"recliner_price"`
	ReclinerFabric    float64       `json:"recliner_fabric"`
	ConsolePrice      float64       `json:"console_price"`
	ConsoleFabric     float64       `json:"console_fabric"`
	TotalPrice        float64       `json:"total_price"`
	TotalFabricMeters float64       `json:"total_fabric_meters"`
	Incomplete        bool          `json:"incomplete"`
	MissingKeys       []string      `json:"missing_keys,omitempty"`
}

// Calculate prices a normalized configuration against a catalog snapshot.
// Pure: it reads the snapshot and never mutates anything.
func Calculate(in Input, cat *catalog.Snapshot) Breakdown {
	if cat == nil {
		cat = catalog.Defaults()
	}

	var bd Breakdown
	missing := map[string]struct{}{}

	base := cat.Pricing.Base2Seater
	if base <= 0 {
		missing["pricing.base_2_seater"] = struct{}{}
		base = 0
	}

	for _, tag := range shape.AllTags() {
		sec, ok := in.Sections[tag]
		if !ok || sec.Seater == shape.SeaterNone {
			continue
		}
		line := SectionLine{Tag: tag, Seater: sec.Seater, Quantity: sec.Quantity}
		line.Price = sectionPrice(sec, base, cat)
		line.FabricMeters = sectionFabric(sec, cat, missing)
		bd.Sections = append(bd.Sections, line)
		bd.SectionsTotal += line.Price
	}

	bd.LoungerPrice, bd.LoungerFabric = loungerTotals(in.Lounger, base, cat, missing)
	bd.ReclinerPrice, bd.ReclinerFabric = reclinerTotals(in.Recliners, cat)
	bd.ConsolePrice, bd.ConsoleFabric = consoleTotals(in.Console, cat, missing)

	bd.TotalPrice = round2(bd.SectionsTotal + bd.LoungerPrice + bd.ReclinerPrice + bd.ConsolePrice)
	bd.SectionsTotal = round2(bd.SectionsTotal)

	fabric := 0.0
	for _, line := range bd.Sections {
		fabric += line.FabricMeters
	}
	bd.TotalFabricMeters = round2(fabric + bd.LoungerFabric + bd.ReclinerFabric + bd.ConsoleFabric)

	if len(missing) > 0 {
		bd.Incomplete = true
		for key := range missing {
			bd.MissingKeys = append(bd.MissingKeys, key)
		}
		sort.Strings(bd.MissingKeys)
	}
	return bd
}

// sectionPrice maps a seater value to a fraction of the base 2-seater
// price: backrest 14%, corner 65%, a k-seater 100% plus 35% per seat
// beyond two (which also prices a 1-seater at 65%).
func sectionPrice(sec sections.Section, base float64, cat *catalog.Snapshot) float64 {
	qty := float64(sec.Quantity)
	switch {
	case sec.Seater == shape.SeaterNone:
		return 0
	case shape.IsBackrestLabel(sec.Seater):
		return round2(cat.Pricing.BackrestPercent * base * qty)
	case shape.IsCornerLabel(sec.Seater):
		return round2(cat.Pricing.CornerPercent * base * qty)
	default:
		k := shape.ParseSeatCount(sec.Seater)
		if k < 1 {
			return 0
		}
		factor := 1.0 + cat.Pricing.SeatUpgradePercent*float64(k-2)
		if factor < 0 {
			factor = 0
		}
		return round2(base * factor * qty)
	}
}

// sectionFabric uses the fabric catalog, which is tabulated independently
// of the pricing multipliers: fixed meters for backrest and corner, a
// width-proportional formula for plain seaters.
func sectionFabric(sec sections.Section, cat *catalog.Snapshot, missing map[string]struct{}) float64 {
	qty := float64(sec.Quantity)
	switch {
	case sec.Seater == shape.SeaterNone:
		return 0
	case shape.IsBackrestLabel(sec.Seater):
		return round2(cat.Fabric.BackrestMeters * qty)
	case shape.IsCornerLabel(sec.Seater):
		width := cat.Fabric.CornerWidth(int(cat.Fabric.SeatWidthInches))
		meters, ok := cat.Fabric.CornerMeters(width)
		if !ok {
			missing["fabric.corner_meters_by_width"] = struct{}{}
			return 0
		}
		return round2(meters * qty)
	default:
		k := shape.ParseSeatCount(sec.Seater)
		if k < 1 {
			return 0
		}
		width := float64(k) * cat.Fabric.SeatWidthInches
		meters := round2(width / 120 * cat.Fabric.MetersPer120Inches)
		return round2(meters * qty)
	}
}

func loungerTotals(lng accessory.LoungerConfig, base float64, cat *catalog.Snapshot, missing map[string]struct{}) (price, fabric float64) {
	if !lng.Required {
		return 0, 0
	}

	width, ok := cat.Lounger.SizeWidth(lng.Size)
	if !ok {
		missing["lounger.size_width_inches:"+lng.Size] = struct{}{}
		width = cat.Lounger.ReferenceWidthInches
	}
	incr := cat.Lounger.Increments(width)
	qty := float64(lng.Quantity)

	unit := base*cat.Pricing.LoungerBasePercent + base*cat.Pricing.LoungerIncrementPercent*float64(incr)
	price = unit * qty
	if lng.Storage {
		price += cat.Pricing.LoungerStorageSurcharge * qty
	}

	fabric = (cat.Fabric.LoungerBaseMeters + cat.Fabric.LoungerIncrementMeters*float64(incr)) * qty
	return round2(price), round2(fabric)
}

func reclinerTotals(rec accessory.ReclinerMap, cat *catalog.Snapshot) (price, fabric float64) {
	units := float64(rec.TotalRecliners())
	if units == 0 {
		return 0, 0
	}
	return round2(cat.Pricing.ReclinerUnitPrice * units), round2(cat.Fabric.ReclinerUnitMeters * units)
}

func consoleTotals(con console.Config, cat *catalog.Snapshot, missing map[string]struct{}) (price, fabric float64) {
	if !con.Required {
		return 0, 0
	}

	rate, ok := cat.Pricing.ConsoleRates[con.Size]
	if !ok {
		missing["pricing.console_rates:"+con.Size] = struct{}{}
		rate = 0
	}

	for _, slot := range con.Slots {
		if !slot.IsPlaced() {
			continue
		}
		price += rate
		fabric += cat.Fabric.ConsoleUnitMeters
		if slot.AccessoryID != "" {
			p, ok := cat.Pricing.AccessoryPrices[slot.AccessoryID]
			if !ok {
				missing["pricing.accessory_prices:"+slot.AccessoryID] = struct{}{}
				continue
			}
			price += p
		}
	}
	return round2(price), round2(fabric)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSchema mirrors the YAML catalog layout. Every field is optional;
// absent fields keep the built-in default so partially-maintained catalog
// files degrade instead of zeroing the whole table. Defaulting happens
// here at the boundary, never at use sites.
type fileSchema struct {
	Version string `yaml:"version"`
	Pricing struct {
		Base2Seater             *float64           `yaml:"base_2_seater"`
		SeatUpgradePercent      *float64           `yaml:"seat_upgrade_percent"`
		CornerPercent           *float64           `yaml:"corner_percent"`
		BackrestPercent         *float64           `yaml:"backrest_percent"`
		LoungerBasePercent      *float64           `yaml:"lounger_base_percent"`
		LoungerIncrementPercent *float64           `yaml:"lounger_increment_percent"`
		LoungerStorageSurcharge *float64           `yaml:"lounger_storage_surcharge"`
		ReclinerUnitPrice       *float64           `yaml:"recliner_unit_price"`
		ConsoleRates            map[string]float64 `yaml:"console_rates"`
		AccessoryPrices         map[string]float64 `yaml:"accessory_prices"`
	} `yaml:"pricing"`
	Fabric struct {
		SeatWidthInches        *float64        `yaml:"seat_width_inches"`
		MetersPer120Inches     *float64        `yaml:"meters_per_120_inches"`
		BackrestMeters         *float64        `yaml:"backrest_meters"`
		CornerMetersByWidth    map[int]float64 `yaml:"corner_meters_by_width"`
		CornerWidthBySeatWidth map[int]int     `yaml:"corner_width_by_seat_width"`
		DefaultCornerWidth     *int            `yaml:"default_corner_width"`
		LoungerBaseMeters      *float64        `yaml:"lounger_base_meters"`
		LoungerIncrementMeters *float64        `yaml:"lounger_increment_meters"`
		ReclinerUnitMeters     *float64        `yaml:"recliner_unit_meters"`
		ConsoleUnitMeters      *float64        `yaml:"console_unit_meters"`
	} `yaml:"fabric"`
	Lounger struct {
		ReferenceWidthInches *int           `yaml:"reference_width_inches"`
		IncrementInches      *int           `yaml:"increment_inches"`
		SizeWidthInches      map[string]int `yaml:"size_width_inches"`
	} `yaml:"lounger"`
}

// LoadFile reads a YAML catalog and merges it over the built-in defaults.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Snapshot from YAML bytes merged over Defaults.
func Parse(data []byte) (*Snapshot, error) {
	var fs fileSchema
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}

	snap := Defaults()
	if fs.Version != "" {
		snap.Version = fs.Version
	}

	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setI := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setF(&snap.Pricing.Base2Seater, fs.Pricing.Base2Seater)
	setF(&snap.Pricing.SeatUpgradePercent, fs.Pricing.SeatUpgradePercent)
	setF(&snap.Pricing.CornerPercent, fs.Pricing.CornerPercent)
	setF(&snap.Pricing.BackrestPercent, fs.Pricing.BackrestPercent)
	setF(&snap.Pricing.LoungerBasePercent, fs.Pricing.LoungerBasePercent)
	setF(&snap.Pricing.LoungerIncrementPercent, fs.Pricing.LoungerIncrementPercent)
	setF(&snap.Pricing.LoungerStorageSurcharge, fs.Pricing.LoungerStorageSurcharge)
	setF(&snap.Pricing.ReclinerUnitPrice, fs.Pricing.ReclinerUnitPrice)
	for size, rate := range fs.Pricing.ConsoleRates {
		snap.Pricing.ConsoleRates[size] = rate
	}
	for id, price := range fs.Pricing.AccessoryPrices {
		snap.Pricing.AccessoryPrices[id] = price
	}

	setF(&snap.Fabric.SeatWidthInches, fs.Fabric.SeatWidthInches)
	setF(&snap.Fabric.MetersPer120Inches, fs.Fabric.MetersPer120Inches)
	setF(&snap.Fabric.BackrestMeters, fs.Fabric.BackrestMeters)
	for w, m := range fs.Fabric.CornerMetersByWidth {
		snap.Fabric.CornerMetersByWidth[w] = m
	}
	for sw, cw := range fs.Fabric.CornerWidthBySeatWidth {
		snap.Fabric.CornerWidthBySeatWidth[sw] = cw
	}
	setI(&snap.Fabric.DefaultCornerWidth, fs.Fabric.DefaultCornerWidth)
	setF(&snap.Fabric.LoungerBaseMeters, fs.Fabric.LoungerBaseMeters)
	setF(&snap.Fabric.LoungerIncrementMeters, fs.Fabric.LoungerIncrementMeters)
	setF(&snap.Fabric.ReclinerUnitMeters, fs.Fabric.ReclinerUnitMeters)
	setF(&snap.Fabric.ConsoleUnitMeters, fs.Fabric.ConsoleUnitMeters)

	setI(&snap.Lounger.ReferenceWidthInches, fs.Lounger.ReferenceWidthInches)
	setI(&snap.Lounger.IncrementInches, fs.Lounger.IncrementInches)
	for size, width := range fs.Lounger.SizeWidthInches {
		snap.Lounger.SizeWidthInches[size] = width
	}

	return snap, nil
}

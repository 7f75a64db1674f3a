package catalogsql

import "time"

type CatalogVersion struct {
	Version   string
	AppliedAt time.Time
}

// NumericEntry is one keyed scalar from the price or fabric tables.
type NumericEntry struct {
	Key   string
	Value float64
}

type ConsoleRate struct {
	Size string
	Rate float64
}

type AccessoryPrice struct {
	AccessoryID string
	Price       float64
}

type LoungerSize struct {
	Size        string
	WidthInches int
}

type CornerFabricRow struct {
	WidthInches int
	Meters      float64
}

type CornerWidthRow struct {
	SeatWidthInches   int
	CornerWidthInches int
}

type PriceQuote struct {
	ID                string
	Shape             string
	Config            map[string]any
	TotalPrice        float64
	TotalFabricMeters float64
	Incomplete        bool
	CreatedAt         time.Time
}

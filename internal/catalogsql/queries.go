package catalogsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"comfora/core-go/internal/catalog"
)

// DBTX matches the minimal interface needed from pgxpool.Pool or pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

const getCatalogVersion = `-- name: GetCatalogVersion :one
SELECT version
FROM catalog_versions
ORDER BY applied_at DESC
LIMIT 1
`

// CatalogVersion returns the latest applied catalog version, or the empty
// string when the table is empty.
func (q *Queries) CatalogVersion(ctx context.Context) (string, error) {
	row := q.db.QueryRow(ctx, getCatalogVersion)
	var version string
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return version, nil
}

const listPricingEntries = `-- name: ListPricingEntries :many
SELECT key, value
FROM catalog_pricing_entries
ORDER BY key
`

func (q *Queries) ListPricingEntries(ctx context.Context) ([]NumericEntry, error) {
	return q.listNumeric(ctx, listPricingEntries)
}

const listFabricEntries = `-- name: ListFabricEntries :many
SELECT key, value
FROM catalog_fabric_entries
ORDER BY key
`

func (q *Queries) ListFabricEntries(ctx context.Context) ([]NumericEntry, error) {
	return q.listNumeric(ctx, listFabricEntries)
}

func (q *Queries) listNumeric(ctx context.Context, sql string) ([]NumericEntry, error) {
	rows, err := q.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []NumericEntry
	for rows.Next() {
		var i NumericEntry
		if err := rows.Scan(&i.Key, &i.Value); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listConsoleRates = `-- name: ListConsoleRates :many
SELECT size, rate
FROM catalog_console_rates
ORDER BY size
`

func (q *Queries) ListConsoleRates(ctx context.Context) ([]ConsoleRate, error) {
	rows, err := q.db.Query(ctx, listConsoleRates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ConsoleRate
	for rows.Next() {
		var i ConsoleRate
		if err := rows.Scan(&i.Size, &i.Rate); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAccessoryPrices = `-- name: ListAccessoryPrices :many
SELECT accessory_id, price
FROM catalog_accessory_prices
ORDER BY accessory_id
`

func (q *Queries) ListAccessoryPrices(ctx context.Context) ([]AccessoryPrice, error) {
	rows, err := q.db.Query(ctx, listAccessoryPrices)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []AccessoryPrice
	for rows.Next() {
		var i AccessoryPrice
		if err := rows.Scan(&i.AccessoryID, &i.Price); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLoungerSizes = `-- name: ListLoungerSizes :many
SELECT size, width_inches
FROM catalog_lounger_sizes
ORDER BY width_inches
`

func (q *Queries) ListLoungerSizes(ctx context.Context) ([]LoungerSize, error) {
	rows, err := q.db.Query(ctx, listLoungerSizes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LoungerSize
	for rows.Next() {
		var i LoungerSize
		if err := rows.Scan(&i.Size, &i.WidthInches); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCornerFabric = `-- name: ListCornerFabric :many
SELECT width_inches, meters
FROM catalog_corner_fabric
ORDER BY width_inches
`

func (q *Queries) ListCornerFabric(ctx context.Context) ([]CornerFabricRow, error) {
	rows, err := q.db.Query(ctx, listCornerFabric)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CornerFabricRow
	for rows.Next() {
		var i CornerFabricRow
		if err := rows.Scan(&i.WidthInches, &i.Meters); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listCornerWidths = `-- name: ListCornerWidths :many
SELECT seat_width_inches, corner_width_inches
FROM catalog_corner_widths
ORDER BY seat_width_inches
`

func (q *Queries) ListCornerWidths(ctx context.Context) ([]CornerWidthRow, error) {
	rows, err := q.db.Query(ctx, listCornerWidths)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CornerWidthRow
	for rows.Next() {
		var i CornerWidthRow
		if err := rows.Scan(&i.SeatWidthInches, &i.CornerWidthInches); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertPriceQuote = `-- name: InsertPriceQuote :exec
INSERT INTO price_quotes (
  shape,
  config,
  total_price,
  total_fabric_meters,
  incomplete
)
VALUES ($1, $2::jsonb, $3, $4, $5)
`

type InsertPriceQuoteParams struct {
	Shape             string
	Config            map[string]any
	TotalPrice        float64
	TotalFabricMeters float64
	Incomplete        bool
}

func (q *Queries) InsertPriceQuote(ctx context.Context, arg InsertPriceQuoteParams) error {
	_, err := q.db.Exec(ctx, insertPriceQuote, arg.Shape, arg.Config, arg.TotalPrice, arg.TotalFabricMeters, arg.Incomplete)
	return err
}

// BuildSnapshot assembles a catalog snapshot from the database, merged
// over the built-in defaults so absent rows keep sane values.
func (q *Queries) BuildSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	snap := catalog.Defaults()

	version, err := q.CatalogVersion(ctx)
	if err != nil {
		return nil, err
	}
	if version != "" {
		snap.Version = version
	}

	pricing, err := q.ListPricingEntries(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range pricing {
		applyPricingEntry(&snap.Pricing, entry)
	}

	fabric, err := q.ListFabricEntries(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range fabric {
		applyFabricEntry(&snap.Fabric, entry)
	}

	rates, err := q.ListConsoleRates(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range rates {
		snap.Pricing.ConsoleRates[r.Size] = r.Rate
	}

	accessories, err := q.ListAccessoryPrices(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accessories {
		snap.Pricing.AccessoryPrices[a.AccessoryID] = a.Price
	}

	sizes, err := q.ListLoungerSizes(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sizes {
		snap.Lounger.SizeWidthInches[s.Size] = s.WidthInches
	}

	cornerFabric, err := q.ListCornerFabric(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cornerFabric {
		snap.Fabric.CornerMetersByWidth[c.WidthInches] = c.Meters
	}

	cornerWidths, err := q.ListCornerWidths(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cornerWidths {
		snap.Fabric.CornerWidthBySeatWidth[c.SeatWidthInches] = c.CornerWidthInches
	}

	return snap, nil
}

func applyPricingEntry(p *catalog.PricingTable, entry NumericEntry) {
	switch entry.Key {
	case "base_2_seater":
		p.Base2Seater = entry.Value
	case "seat_upgrade_percent":
		p.SeatUpgradePercent = entry.Value
	case "corner_percent":
		p.CornerPercent = entry.Value
	case "backrest_percent":
		p.BackrestPercent = entry.Value
	case "lounger_base_percent":
		p.LoungerBasePercent = entry.Value
	case "lounger_increment_percent":
		p.LoungerIncrementPercent = entry.Value
	case "lounger_storage_surcharge":
		p.LoungerStorageSurcharge = entry.Value
	case "recliner_unit_price":
		p.ReclinerUnitPrice = entry.Value
	}
}

func applyFabricEntry(f *catalog.FabricTable, entry NumericEntry) {
	switch entry.Key {
	case "seat_width_inches":
		f.SeatWidthInches = entry.Value
	case "meters_per_120_inches":
		f.MetersPer120Inches = entry.Value
	case "backrest_meters":
		f.BackrestMeters = entry.Value
	case "default_corner_width":
		f.DefaultCornerWidth = int(entry.Value)
	case "lounger_base_meters":
		f.LoungerBaseMeters = entry.Value
	case "lounger_increment_meters":
		f.LoungerIncrementMeters = entry.Value
	case "recliner_unit_meters":
		f.ReclinerUnitMeters = entry.Value
	case "console_unit_meters":
		f.ConsoleUnitMeters = entry.Value
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepreciationAsset is a depreciation_assets row.
type DepreciationAsset struct {
	AssetID         string          `db:"asset_id"`
	Name            string          `db:"name"`
	Category        string          `db:"category"`
	AcquisitionDate time.Time       `db:"acquisition_date"`
	AcquisitionCost decimal.Decimal `db:"acquisition_cost"`
	UsefulLifeYears int             `db:"useful_life_years"`
	Method          string          `db:"method"`
	AuditFields
}

// DepreciationEntry is one asset-year row of depreciation_entries.
type DepreciationEntry struct {
	DepEntryID         string          `db:"dep_entry_id"`
	AssetID            string          `db:"asset_id"`
	Year               int             `db:"year"`
	OpeningValue       decimal.Decimal `db:"opening_value"`
	DepreciationAmount decimal.Decimal `db:"depreciation_amount"`
	ClosingValue       decimal.Decimal `db:"closing_value"`
	BookedEntryID      *string         `db:"booked_entry_id"`
	AuditFields
}

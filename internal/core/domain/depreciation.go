package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepreciationMethod selects how an asset's acquisition cost is allocated
// over its useful life.
type DepreciationMethod string

const (
	MethodLinear     DepreciationMethod = "LINEAR"
	MethodDegressive DepreciationMethod = "DEGRESSIVE"
	MethodImmediate  DepreciationMethod = "IMMEDIATE"
)

// DepreciationAsset is a fixed asset subject to scheduled depreciation.
type DepreciationAsset struct {
	AssetID         string             `json:"assetID"` // Primary Key (UUID)
	Name            string             `json:"name"`
	Category        string             `json:"category,omitempty"`
	AcquisitionDate time.Time          `json:"acquisitionDate"`
	AcquisitionCost decimal.Decimal    `json:"acquisitionCost"`
	UsefulLifeYears int                `json:"usefulLifeYears"`
	Method          DepreciationMethod `json:"method"`
	AuditFields
}

// AnnualDepreciation returns the method's nominal yearly allocation. The
// generated schedule may deviate in the final year to clear rounding drift.
func (a DepreciationAsset) AnnualDepreciation() decimal.Decimal {
	switch a.Method {
	case MethodImmediate:
		return a.AcquisitionCost
	case MethodDegressive:
		return a.AcquisitionCost.Mul(degressiveRate(a.UsefulLifeYears)).Round(2)
	default:
		return a.AcquisitionCost.DivRound(decimal.NewFromInt(int64(a.UsefulLifeYears)), 2)
	}
}

// DepreciationEntry is one asset-year row of a depreciation schedule.
// BookedEntryID stays nil until the row has been posted to the ledger.
type DepreciationEntry struct {
	DepEntryID         string          `json:"depEntryID"` // Primary Key (UUID)
	AssetID            string          `json:"assetID"`
	Year               int             `json:"year"`
	OpeningValue       decimal.Decimal `json:"openingValue"`
	DepreciationAmount decimal.Decimal `json:"depreciationAmount"`
	ClosingValue       decimal.Decimal `json:"closingValue"`
	BookedEntryID      *string         `json:"bookedEntryID,omitempty"`
	AuditFields
}

// degressiveRate is the double-declining-balance rate for the given life.
func degressiveRate(years int) decimal.Decimal {
	return decimal.NewFromInt(2).DivRound(decimal.NewFromInt(int64(years)), 6)
}

// GenerateSchedule computes the full depreciation schedule for an asset as a
// pure function, one row per year starting at the acquisition year. The sum
// of all rows equals the acquisition cost exactly and no row leaves a
// negative closing value; the final row absorbs rounding drift.
func GenerateSchedule(asset DepreciationAsset) []DepreciationEntry {
	if asset.UsefulLifeYears <= 0 || !asset.AcquisitionCost.IsPositive() {
		return nil
	}

	startYear := asset.AcquisitionDate.Year()
	remaining := asset.AcquisitionCost
	entries := make([]DepreciationEntry, 0, asset.UsefulLifeYears)

	years := asset.UsefulLifeYears
	if asset.Method == MethodImmediate {
		years = 1
	}

	for i := 0; i < years && remaining.IsPositive(); i++ {
		dep := yearlyAmount(asset, remaining, years-i)
		if dep.GreaterThanOrEqual(remaining) || i == years-1 {
			dep = remaining
		}
		entries = append(entries, DepreciationEntry{
			AssetID:            asset.AssetID,
			Year:               startYear + i,
			OpeningValue:       remaining,
			DepreciationAmount: dep,
			ClosingValue:       remaining.Sub(dep),
		})
		remaining = remaining.Sub(dep)
	}
	return entries
}

// yearlyAmount returns the nominal depreciation for one year given the
// remaining book value and the years still left in the useful life.
func yearlyAmount(asset DepreciationAsset, remaining decimal.Decimal, yearsLeft int) decimal.Decimal {
	switch asset.Method {
	case MethodImmediate:
		return remaining
	case MethodDegressive:
		declining := remaining.Mul(degressiveRate(asset.UsefulLifeYears)).Round(2)
		// Switch to straight line over the remaining life once that yields
		// the higher allocation, so the book value reaches zero in time.
		straight := remaining.DivRound(decimal.NewFromInt(int64(yearsLeft)), 2)
		if straight.GreaterThan(declining) {
			return straight
		}
		return declining
	default:
		return asset.AnnualDepreciation()
	}
}

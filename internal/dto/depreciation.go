package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/werkportal/accounting_backend/internal/core/domain"
)

// CreateAssetRequest registers a fixed asset; the service derives and
// persists its full depreciation schedule on creation.
type CreateAssetRequest struct {
	Name            string          `json:"name" binding:"required"`
	Category        string          `json:"category,omitempty"`
	AcquisitionDate time.Time       `json:"acquisitionDate" binding:"required"`
	AcquisitionCost decimal.Decimal `json:"acquisitionCost" binding:"required,gtzerodecimal"`
	UsefulLifeYears int             `json:"usefulLifeYears" binding:"required,min=1"`
	Method          string          `json:"method" binding:"required,oneof=LINEAR DEGRESSIVE IMMEDIATE"`
}

// DepreciationEntryResponse is one asset-year row of a schedule.
type DepreciationEntryResponse struct {
	DepEntryID         string          `json:"depEntryID"`
	AssetID            string          `json:"assetID"`
	Year               int             `json:"year"`
	OpeningValue       decimal.Decimal `json:"openingValue"`
	DepreciationAmount decimal.Decimal `json:"depreciationAmount"`
	ClosingValue       decimal.Decimal `json:"closingValue"`
	BookedEntryID      *string         `json:"bookedEntryID,omitempty"`
}

// AssetResponse is the API representation of an asset with its schedule.
type AssetResponse struct {
	AssetID            string                      `json:"assetID"`
	Name               string                      `json:"name"`
	Category           string                      `json:"category,omitempty"`
	AcquisitionDate    time.Time                   `json:"acquisitionDate"`
	AcquisitionCost    decimal.Decimal             `json:"acquisitionCost"`
	UsefulLifeYears    int                         `json:"usefulLifeYears"`
	Method             string                      `json:"method"`
	AnnualDepreciation decimal.Decimal             `json:"annualDepreciation"`
	Schedule           []DepreciationEntryResponse `json:"schedule,omitempty"`
}

// DepreciationRunResult summarizes a batch depreciation run.
type DepreciationRunResult struct {
	Year      int      `json:"year"`
	Processed int      `json:"processed"`
	Booked    int      `json:"booked"`
	Errors    []string `json:"errors,omitempty"`
}

// ToDepreciationEntryResponse converts a domain schedule row.
func ToDepreciationEntryResponse(d *domain.DepreciationEntry) DepreciationEntryResponse {
	return DepreciationEntryResponse{
		DepEntryID:         d.DepEntryID,
		AssetID:            d.AssetID,
		Year:               d.Year,
		OpeningValue:       d.OpeningValue,
		DepreciationAmount: d.DepreciationAmount,
		ClosingValue:       d.ClosingValue,
		BookedEntryID:      d.BookedEntryID,
	}
}

// ToAssetResponse converts a domain asset and its schedule rows.
func ToAssetResponse(a *domain.DepreciationAsset, schedule []domain.DepreciationEntry) AssetResponse {
	resp := AssetResponse{
		AssetID:            a.AssetID,
		Name:               a.Name,
		Category:           a.Category,
		AcquisitionDate:    a.AcquisitionDate,
		AcquisitionCost:    a.AcquisitionCost,
		UsefulLifeYears:    a.UsefulLifeYears,
		Method:             string(a.Method),
		AnnualDepreciation: a.AnnualDepreciation(),
	}
	for i := range schedule {
		resp.Schedule = append(resp.Schedule, ToDepreciationEntryResponse(&schedule[i]))
	}
	return resp
}

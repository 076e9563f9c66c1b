package mapping

import (
	"github.com/werkportal/accounting_backend/internal/core/domain"
	"github.com/werkportal/accounting_backend/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		IsActive:    m.IsActive,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}

// ToModelEntry converts a domain JournalEntry to its row model.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		FiscalYear:      d.FiscalYear,
		EntryNumber:     d.EntryNumber,
		BookingDate:     d.BookingDate,
		DebitAccountID:  d.DebitAccountID,
		CreditAccountID: d.CreditAccountID,
		Amount:          d.Amount,
		Description:     d.Description,
		ReferenceNumber: d.ReferenceNumber,
		SourceType:      models.SourceType(d.SourceType),
		SourceID:        d.SourceID,
		StornoOfEntryID: d.StornoOfEntryID,
		ReversedByID:    d.ReversedByID,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainEntry converts a row model to a domain JournalEntry.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		FiscalYear:      m.FiscalYear,
		EntryNumber:     m.EntryNumber,
		BookingDate:     m.BookingDate,
		DebitAccountID:  m.DebitAccountID,
		CreditAccountID: m.CreditAccountID,
		Amount:          m.Amount,
		Description:     m.Description,
		ReferenceNumber: m.ReferenceNumber,
		SourceType:      domain.SourceType(m.SourceType),
		SourceID:        m.SourceID,
		StornoOfEntryID: m.StornoOfEntryID,
		ReversedByID:    m.ReversedByID,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainEntrySlice converts a slice of row models.
func ToDomainEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

// ToModelProvision converts a domain Provision to its row model.
func ToModelProvision(d domain.Provision) models.Provision {
	return models.Provision{
		ProvisionID:    d.ProvisionID,
		Type:           models.ProvisionType(d.Type),
		Amount:         d.Amount,
		Year:           d.Year,
		Description:    d.Description,
		Released:       d.Released,
		ReleasedAmount: d.ReleasedAmount,
		BookedEntryID:  d.BookedEntryID,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

// ToDomainProvision converts a row model to a domain Provision.
func ToDomainProvision(m models.Provision) domain.Provision {
	return domain.Provision{
		ProvisionID:    m.ProvisionID,
		Type:           domain.ProvisionType(m.Type),
		Amount:         m.Amount,
		Year:           m.Year,
		Description:    m.Description,
		Released:       m.Released,
		ReleasedAmount: m.ReleasedAmount,
		BookedEntryID:  m.BookedEntryID,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

// ToDomainProvisionSlice converts a slice of row models.
func ToDomainProvisionSlice(ms []models.Provision) []domain.Provision {
	ds := make([]domain.Provision, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProvision(m)
	}
	return ds
}

// ToModelAsset converts a domain DepreciationAsset to its row model.
func ToModelAsset(d domain.DepreciationAsset) models.DepreciationAsset {
	return models.DepreciationAsset{
		AssetID:         d.AssetID,
		Name:            d.Name,
		Category:        d.Category,
		AcquisitionDate: d.AcquisitionDate,
		AcquisitionCost: d.AcquisitionCost,
		UsefulLifeYears: d.UsefulLifeYears,
		Method:          string(d.Method),
		AuditFields:     toModelAudit(d.AuditFields),
	}
}

// ToDomainAsset converts a row model to a domain DepreciationAsset.
func ToDomainAsset(m models.DepreciationAsset) domain.DepreciationAsset {
	return domain.DepreciationAsset{
		AssetID:         m.AssetID,
		Name:            m.Name,
		Category:        m.Category,
		AcquisitionDate: m.AcquisitionDate,
		AcquisitionCost: m.AcquisitionCost,
		UsefulLifeYears: m.UsefulLifeYears,
		Method:          domain.DepreciationMethod(m.Method),
		AuditFields:     toDomainAudit(m.AuditFields),
	}
}

// ToModelDepEntry converts a domain DepreciationEntry to its row model.
func ToModelDepEntry(d domain.DepreciationEntry) models.DepreciationEntry {
	return models.DepreciationEntry{
		DepEntryID:         d.DepEntryID,
		AssetID:            d.AssetID,
		Year:               d.Year,
		OpeningValue:       d.OpeningValue,
		DepreciationAmount: d.DepreciationAmount,
		ClosingValue:       d.ClosingValue,
		BookedEntryID:      d.BookedEntryID,
		AuditFields:        toModelAudit(d.AuditFields),
	}
}

// ToDomainDepEntry converts a row model to a domain DepreciationEntry.
func ToDomainDepEntry(m models.DepreciationEntry) domain.DepreciationEntry {
	return domain.DepreciationEntry{
		DepEntryID:         m.DepEntryID,
		AssetID:            m.AssetID,
		Year:               m.Year,
		OpeningValue:       m.OpeningValue,
		DepreciationAmount: m.DepreciationAmount,
		ClosingValue:       m.ClosingValue,
		BookedEntryID:      m.BookedEntryID,
		AuditFields:        toDomainAudit(m.AuditFields),
	}
}

// ToDomainDepEntrySlice converts a slice of row models.
func ToDomainDepEntrySlice(ms []models.DepreciationEntry) []domain.DepreciationEntry {
	ds := make([]domain.DepreciationEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDepEntry(m)
	}
	return ds
}

// ToDomainClosing converts a row model to a domain FiscalPeriodClosing.
func ToDomainClosing(m models.FiscalPeriodClosing) domain.FiscalPeriodClosing {
	return domain.FiscalPeriodClosing{
		Year:        m.Year,
		Phase:       domain.ClosingPhase(m.Phase),
		LockedAt:    m.LockedAt,
		FinalizedAt: m.FinalizedAt,
		FinalizedBy: m.FinalizedBy,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

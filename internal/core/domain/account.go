package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one account of the chart of accounts. Accounts are
// immutable reference data; services look them up by code and never create
// them at runtime (the chart is seeded by migration).
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	Code        string      `json:"code"`        // SKR04-style account number, e.g. "1200"
	Name        string      `json:"name"`        // e.g. "Bank"
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// Well-known account codes the posting services use. They mirror the SKR04
// subset seeded in migrations.
const (
	AccountBank                = "1200"
	AccountReceivables         = "1400" // Forderungen aus Lieferungen und Leistungen
	AccountVATLiability        = "1776" // Umsatzsteuer 19%
	AccountTradePayables       = "3300" // Verbindlichkeiten aus Lieferungen und Leistungen
	AccountCommissionRevenue   = "8400" // Provisionserloese
	AccountCommissionExpense   = "4650" // Provisionsaufwand
	AccountOfficeExpense       = "6520" // Buerobedarf
	AccountDepreciationExpense = "6220" // Abschreibungen auf Sachanlagen
	AccountAccumulatedDep      = "0288" // Wertberichtigungen Sachanlagen
	AccountProvisionExpense    = "6850" // Zufuehrung zu Rueckstellungen
	AccountProvisionRelease    = "6950" // Aufloesung von Rueckstellungen
	AccountProvisionTax        = "3010"
	AccountProvisionVacation   = "3030"
	AccountProvisionWarranty   = "3040"
	AccountProvisionPension    = "3000"
	AccountProvisionOther      = "3020"
)

package services

import (
	portsrepo "github.com/werkportal/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/werkportal/accounting_backend/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies
type Container struct {
	Account       portssvc.AccountSvcFacade
	Ledger        portssvc.LedgerSvcFacade
	Booking       portssvc.BookingSvcFacade
	Provision     portssvc.ProvisionSvcFacade
	Depreciation  portssvc.DepreciationSvcFacade
	Closing       portssvc.ClosingSvcFacade
	InvoiceBridge portssvc.InvoiceBridgeSvcFacade
}

// NewContainer creates a new service container with properly initialized dependencies
func NewContainer(repos *portsrepo.RepositoryProvider) *Container {
	container := &Container{}

	// The ledger comes first; every booking path depends on it.
	container.Ledger = NewLedgerService(repos.EntryRepo)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Booking = NewBookingService(container.Ledger, repos.AccountRepo)
	container.Provision = NewProvisionService(repos.ProvisionRepo, repos.AccountRepo, container.Ledger)
	container.Depreciation = NewDepreciationService(repos.DepreciationRepo, repos.AccountRepo, container.Ledger)
	container.Closing = NewClosingService(repos.ClosingRepo, repos.ProvisionRepo, repos.DepreciationRepo)
	container.InvoiceBridge = NewInvoiceBridgeService(repos.InvoiceLinkRepo, repos.AccountRepo, container.Ledger)

	return container
}

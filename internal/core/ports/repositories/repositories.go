package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	EntryRepo        EntryRepositoryWithTx
	ProvisionRepo    ProvisionRepositoryWithTx
	DepreciationRepo DepreciationRepositoryWithTx
	ClosingRepo      ClosingRepositoryFacade
	InvoiceLinkRepo  InvoiceLinkRepositoryWithTx
}

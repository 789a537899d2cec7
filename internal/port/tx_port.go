package port

import "context"

// Repositories are bound to one database transaction.
type Repositories struct {
	Orders   OrderRepository
	Products ProductCatalog
}

type Transactor interface {
	// WithinTx commits when fn returns nil and rolls back everything fn did otherwise.
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}

package repositories

import "context"

// UnitOfWork runs a function inside a single database transaction.
// Repositories called with the context passed to fn participate in
// that transaction; the transaction commits when fn returns nil and
// rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

package unitofwork

import "context"

// RepositoryFactory hands out units of work. Services hold the factory, never
// a unit of work, so each operation gets its own transaction scope.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

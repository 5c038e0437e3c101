package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

// RepositoryFactory opens one unit of work per request or background job.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

type RepositoryFactoryImpl struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return &RepositoryFactoryImpl{db: db}
}

// NewUnitOfWork binds ctx to every statement issued outside a transaction.
// Begin rebinds to its own ctx. On SQLite the pool holds one connection, so
// reads that must not queue behind the transaction happen before Begin.
func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db.WithContext(ctx))
}

package uow

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// UnitOfWork opens an atomic scope over the shared *gorm.DB. The transaction
// handle travels inside the context so every repository call made within the
// callback hits the same transaction.
type UnitOfWork struct {
	db *gorm.DB
}

func New(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// RunInTransaction executes fn inside a transaction. If the context already
// carries a transaction the ambient one is reused, so nested calls inside the
// same use case share a single atomic scope.
func (u *UnitOfWork) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// DB returns the transaction bound to ctx, or fallback scoped to ctx when no
// transaction is open. Repositories route every query through this.
func DB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

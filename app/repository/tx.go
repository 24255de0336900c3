package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxFunc runs inside a transaction with repositories bound to it.
// Returning an error rolls the transaction back.
type TxFunc func(repos *Repositories) error

// TxManager runs a function within a single database transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by db.
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) WithinTransaction(ctx context.Context, fn TxFunc) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

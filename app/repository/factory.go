package repository

import (
	"sync"

	"gorm.io/gorm"
)

// Repositories bundles the repositories backed by one *gorm.DB handle.
// Bundles built from a transaction handle scope every repository to that
// transaction.
type Repositories struct {
	Budget   BudgetRepository
	Service  ServiceRepository
	Token    TokenRepository
	Customer CustomerRepository
	User     UserRepository
}

// NewRepositories creates a repository bundle on top of db.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Budget:   NewBudgetRepository(db),
		Service:  NewServiceRepository(db),
		Token:    NewTokenRepository(db),
		Customer: NewCustomerRepository(db),
		User:     NewUserRepository(db),
	}
}

var (
	factoryOnce     sync.Once
	factoryInstance *Repositories
)

// GetGlobalFactory returns the process-wide repository bundle, building it
// on first use from the given db handle.
func GetGlobalFactory(db *gorm.DB) *Repositories {
	factoryOnce.Do(func() {
		factoryInstance = NewRepositories(db)
	})
	return factoryInstance
}

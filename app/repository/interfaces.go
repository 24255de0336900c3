package repository

import (
	"github.com/orcahub/OrcaHub/app/models"
)

// BudgetRepository defines the interface for budget persistence.
// All lookups are tenant-scoped; cross-tenant IDs behave like not-found.
type BudgetRepository interface {
	Create(budget *models.Budget) error
	GetByID(id, tenantID uint) (*models.Budget, error)
	// GetByIDForUpdate locks the budget row for the duration of the
	// surrounding transaction.
	GetByIDForUpdate(id, tenantID uint) (*models.Budget, error)
	GetByCode(code string, tenantID uint) (*models.Budget, error)
	GetByPublicID(publicID string) (*models.Budget, error)
	GetByPublicIDForUpdate(publicID string) (*models.Budget, error)
	// LastCodeForDate returns the highest budget code the tenant was
	// issued under the given date prefix, or "" when none exists yet.
	LastCodeForDate(tenantID uint, datePrefix string) (string, error)
	Update(budget *models.Budget) error
}

// ServiceRepository defines the interface for service line persistence.
type ServiceRepository interface {
	Create(service *models.Service) error
	GetByID(id, tenantID uint) (*models.Service, error)
	ListByBudget(budgetID, tenantID uint) ([]models.Service, error)
	// LastCodeForBudget returns the highest service code under the
	// budget, or "" when the budget has no services yet.
	LastCodeForBudget(budgetID, tenantID uint) (string, error)
	Update(service *models.Service) error
}

// TokenRepository defines the interface for confirmation token persistence.
type TokenRepository interface {
	Create(token *models.ConfirmationToken) error
	GetByID(id uint) (*models.ConfirmationToken, error)
	GetByToken(token string) (*models.ConfirmationToken, error)
	Delete(id uint) error
}

// CustomerRepository defines the interface for customer persistence.
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id, tenantID uint) (*models.Customer, error)
	Update(customer *models.Customer) error
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

package repository

import (
	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
)

// gormCustomerRepository implements CustomerRepository with GORM.
type gormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &gormCustomerRepository{db: db}
}

func (r *gormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

func (r *gormCustomerRepository) GetByID(id, tenantID uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *gormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

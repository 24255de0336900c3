package repository

import (
	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
)

// gormServiceRepository implements ServiceRepository with GORM.
type gormServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository.
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &gormServiceRepository{db: db}
}

func (r *gormServiceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *gormServiceRepository) GetByID(id, tenantID uint) (*models.Service, error) {
	var service models.Service
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *gormServiceRepository) ListByBudget(budgetID, tenantID uint) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Where("budget_id = ? AND tenant_id = ?", budgetID, tenantID).
		Order("id ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *gormServiceRepository) LastCodeForBudget(budgetID, tenantID uint) (string, error) {
	var service models.Service
	err := r.db.Where("budget_id = ? AND tenant_id = ?", budgetID, tenantID).
		Order("code DESC").
		First(&service).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return service.Code, nil
}

func (r *gormServiceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

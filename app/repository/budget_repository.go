package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orcahub/OrcaHub/app/models"
)

// gormBudgetRepository implements BudgetRepository with GORM.
type gormBudgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository.
func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &gormBudgetRepository{db: db}
}

func (r *gormBudgetRepository) Create(budget *models.Budget) error {
	return r.db.Create(budget).Error
}

func (r *gormBudgetRepository) GetByID(id, tenantID uint) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *gormBudgetRepository) GetByIDForUpdate(id, tenantID uint) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *gormBudgetRepository) GetByCode(code string, tenantID uint) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.Where("code = ? AND tenant_id = ?", code, tenantID).First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *gormBudgetRepository) GetByPublicID(publicID string) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.Where("public_id = ?", publicID).First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *gormBudgetRepository) GetByPublicIDForUpdate(publicID string) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("public_id = ?", publicID).
		First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *gormBudgetRepository) LastCodeForDate(tenantID uint, datePrefix string) (string, error) {
	var budget models.Budget
	err := r.db.Where("tenant_id = ? AND code LIKE ?", tenantID, datePrefix+"%").
		Order("code DESC").
		First(&budget).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return budget.Code, nil
}

func (r *gormBudgetRepository) Update(budget *models.Budget) error {
	return r.db.Save(budget).Error
}

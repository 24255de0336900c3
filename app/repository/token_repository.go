package repository

import (
	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
)

// gormTokenRepository implements TokenRepository with GORM.
type gormTokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new confirmation token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &gormTokenRepository{db: db}
}

func (r *gormTokenRepository) Create(token *models.ConfirmationToken) error {
	return r.db.Create(token).Error
}

func (r *gormTokenRepository) GetByID(id uint) (*models.ConfirmationToken, error) {
	var token models.ConfirmationToken
	err := r.db.Where("id = ?", id).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepository) GetByToken(value string) (*models.ConfirmationToken, error) {
	var token models.ConfirmationToken
	err := r.db.Where("token = ?", value).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepository) Delete(id uint) error {
	return r.db.Delete(&models.ConfirmationToken{}, id).Error
}

package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Customer is the recipient of budgets; confirmation mails go to Email.
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TenantID  uint           `gorm:"index" json:"tenant_id" validate:"required"`
	Name      string         `gorm:"type:varchar(150)" json:"name" validate:"required,min=3,max=150"`
	Email     string         `gorm:"type:varchar(200);index" json:"email" validate:"required,email"`
	Phone     string         `gorm:"type:varchar(30)" json:"phone"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) Validate() error {
	v := validator.New()
	return v.Struct(c)
}

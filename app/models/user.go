package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"

	STATUS_ACTIVE   = "active"
	STATUS_INACTIVE = "inactive"
)

// User is a staff account that creates budgets and drives their lifecycle.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TenantID    uint           `gorm:"index" json:"tenant_id" validate:"required"`
	Name        string         `gorm:"type:varchar(100)" json:"name" validate:"required,min=3,max=100"`
	Email       string         `gorm:"type:varchar(250);uniqueIndex" json:"email" validate:"required,email"`
	Password    string         `gorm:"type:varchar(80)" json:"-" validate:"required"`
	Role        string         `gorm:"type:varchar(20);default:'user'" json:"role"`
	Status      string         `gorm:"type:varchar(20);default:'active'" json:"status"`
	LastLoginAt *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()
	return v.Struct(u)
}

// CreateUser builds an active user with a bcrypt-hashed password.
func CreateUser(tenantID uint, name, email, password string) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		TenantID: tenantID,
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     ROLE_USER,
		Status:   STATUS_ACTIVE,
	}, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (u *User) IsActive() bool {
	return u.Status == STATUS_ACTIVE
}

func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

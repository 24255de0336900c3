package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

const (
	// BudgetTokenTTL is how long a customer has to act on a budget
	// confirmation link before it must be refreshed.
	BudgetTokenTTL = 24 * time.Hour

	// AccountTokenTTL is the lifetime of account-related tokens such as
	// password resets.
	AccountTokenTTL = 30 * time.Minute
)

// ConfirmationToken is a single-use, expiring secret mailed to a customer
// so they can approve or reject a budget without an account.
type ConfirmationToken struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TenantID  uint           `gorm:"index" json:"tenant_id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	Token     string         `gorm:"type:varchar(100);uniqueIndex" json:"-"`
	ExpiresAt time.Time      `gorm:"type:timestamp" json:"expires_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewConfirmationToken mints a token with 256 bits of randomness that
// expires ttl from now.
func NewConfirmationToken(userID, tenantID uint, ttl time.Duration) (*ConfirmationToken, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	return &ConfirmationToken{
		TenantID:  tenantID,
		UserID:    userID,
		Token:     hex.EncodeToString(buf),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Expired reports whether the token's lifetime has passed.
func (t *ConfirmationToken) Expired() bool {
	return time.Now().After(t.ExpiresAt)
}

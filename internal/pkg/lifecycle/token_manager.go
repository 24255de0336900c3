package lifecycle

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/app/repository"
)

// TokenState classifies a presented confirmation token.
type TokenState int

const (
	TokenValid TokenState = iota
	TokenExpired
	TokenNotFound
)

// TokenValidation is the result of checking a presented token value.
type TokenValidation struct {
	State TokenState
	Token *models.ConfirmationToken
}

// TokenManager handles confirmation token issuance and validation.
// It is built per transaction on top of that transaction's repository.
type TokenManager struct {
	tokens repository.TokenRepository
}

// NewTokenManager creates a TokenManager over the given repository.
func NewTokenManager(tokens repository.TokenRepository) *TokenManager {
	return &TokenManager{tokens: tokens}
}

// EnsureLiveToken returns a confirmation token that is valid right now.
// When existingTokenID points at a token that has not expired, that token
// is reused and reused is true. Otherwise a fresh token is minted with the
// given ttl and any superseded token is deleted.
func (m *TokenManager) EnsureLiveToken(userID, tenantID uint, existingTokenID *uint, ttl time.Duration) (*models.ConfirmationToken, bool, error) {
	var superseded *models.ConfirmationToken

	if existingTokenID != nil {
		current, err := m.tokens.GetByID(*existingTokenID)
		switch {
		case err == nil && !current.Expired():
			return current, true, nil
		case err == nil:
			superseded = current
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, false, &TokenIssuanceError{Err: err}
		}
	}

	token, err := models.NewConfirmationToken(userID, tenantID, ttl)
	if err != nil {
		return nil, false, &TokenIssuanceError{Err: err}
	}
	if err := m.tokens.Create(token); err != nil {
		return nil, false, &TokenIssuanceError{Err: err}
	}

	if superseded != nil {
		if err := m.tokens.Delete(superseded.ID); err != nil {
			return nil, false, &TokenIssuanceError{Err: err}
		}
	}

	return token, false, nil
}

// Validate looks up a presented token value and classifies it.
func (m *TokenManager) Validate(value string) (*TokenValidation, error) {
	token, err := m.tokens.GetByToken(value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &TokenValidation{State: TokenNotFound}, nil
		}
		return nil, err
	}

	if token.Expired() {
		return &TokenValidation{State: TokenExpired, Token: token}, nil
	}
	return &TokenValidation{State: TokenValid, Token: token}, nil
}

// Consume deletes a token after it has been acted on. A token that is
// already gone is not an error.
func (m *TokenManager) Consume(id uint) error {
	err := m.tokens.Delete(id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

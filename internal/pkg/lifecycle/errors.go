package lifecycle

import (
	"errors"
	"fmt"

	"github.com/orcahub/OrcaHub/app/models"
)

var (
	// ErrBudgetNotFound is returned when the target budget does not
	// exist within the caller's tenant.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrTokenNotFound is returned when a presented confirmation token
	// matches no stored token.
	ErrTokenNotFound = errors.New("confirmation token not found")

	// ErrTokenExpired is returned when a presented confirmation token
	// exists but its lifetime has passed.
	ErrTokenExpired = errors.New("confirmation token expired")

	// ErrTokenSuperseded is returned when a presented token is no longer
	// the budget's current one because a newer token was already sent.
	ErrTokenSuperseded = errors.New("a new confirmation token was already sent")
)

// InvalidTransitionError reports a status change the lifecycle rules
// forbid, with the reason a caller can surface to the user.
type InvalidTransitionError struct {
	From   models.BudgetStatus
	To     models.BudgetStatus
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot move budget from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot move budget from %s to %s", e.From, e.To)
}

// TokenIssuanceError wraps a failure to mint or persist a confirmation
// token. It aborts the surrounding transition.
type TokenIssuanceError struct {
	Err error
}

func (e *TokenIssuanceError) Error() string {
	return fmt.Sprintf("issuing confirmation token: %v", e.Err)
}

func (e *TokenIssuanceError) Unwrap() error {
	return e.Err
}

// NotificationError wraps a failure to deliver the confirmation mail.
// The transition that triggered the mail is rolled back.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("sending confirmation notification: %v", e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

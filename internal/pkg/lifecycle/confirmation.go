package lifecycle

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/app/repository"
)

// ConfirmBudget applies a customer's decision on a pending budget,
// reached through the tokenized link in the confirmation mail. approve
// moves the budget to APPROVED, otherwise to REJECTED. The token is
// consumed on success.
func (c *Coordinator) ConfirmBudget(ctx context.Context, publicID, tokenValue string, approve bool) (*Outcome, error) {
	action := models.BudgetRejected
	if approve {
		action = models.BudgetApproved
	}

	var outcome *Outcome

	err := c.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		tokens := NewTokenManager(repos.Token)

		validation, err := tokens.Validate(tokenValue)
		if err != nil {
			return err
		}
		if validation.State == TokenNotFound {
			return ErrTokenNotFound
		}

		budget, err := repos.Budget.GetByPublicIDForUpdate(publicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBudgetNotFound
			}
			return err
		}

		if budget.ConfirmationTokenID == nil || *budget.ConfirmationTokenID != validation.Token.ID {
			return ErrTokenSuperseded
		}
		if validation.State == TokenExpired {
			return ErrTokenExpired
		}

		services, err := repos.Service.ListByBudget(budget.ID, budget.TenantID)
		if err != nil {
			return err
		}

		plan, err := PlanTransition(budget, services, action)
		if err != nil {
			return err
		}

		if err := tokens.Consume(validation.Token.ID); err != nil {
			return err
		}
		budget.ConfirmationTokenID = nil

		outcome, err = c.applyPlan(repos, budget, plan)
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// RefreshBudgetToken replaces an expired confirmation token with a fresh
// one and mails the customer a new link. The presented token must be the
// budget's current one; a stale value means a newer link was already
// sent.
func (c *Coordinator) RefreshBudgetToken(ctx context.Context, publicID, tokenValue string) error {
	return c.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		tokens := NewTokenManager(repos.Token)

		presented, err := repos.Token.GetByToken(tokenValue)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTokenNotFound
			}
			return err
		}

		budget, err := repos.Budget.GetByPublicIDForUpdate(publicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBudgetNotFound
			}
			return err
		}

		if budget.ConfirmationTokenID == nil || *budget.ConfirmationTokenID != presented.ID {
			return ErrTokenSuperseded
		}
		if budget.Status != models.BudgetPending {
			return &InvalidTransitionError{
				From:   budget.Status,
				To:     budget.Status,
				Reason: "budget is not awaiting confirmation",
			}
		}

		token, reused, err := tokens.EnsureLiveToken(budget.UserID, budget.TenantID, budget.ConfirmationTokenID, c.tokenTTL)
		if err != nil {
			return err
		}

		if !reused {
			budget.ConfirmationTokenID = &token.ID
			if err := repos.Budget.Update(budget); err != nil {
				return err
			}
		}

		customer, err := repos.Customer.GetByID(budget.CustomerID, budget.TenantID)
		if err != nil {
			return err
		}
		if err := c.notifier.SendBudgetTokenRenewal(budget, customer, token); err != nil {
			return &NotificationError{Err: err}
		}
		return nil
	})
}

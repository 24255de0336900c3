package lifecycle

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/app/repository"
)

// Notifier delivers confirmation mails to customers. A delivery failure
// rolls back the transition that triggered it.
type Notifier interface {
	SendBudgetConfirmation(budget *models.Budget, customer *models.Customer, token *models.ConfirmationToken) error
	SendBudgetTokenRenewal(budget *models.Budget, customer *models.Customer, token *models.ConfirmationToken) error
}

// Coordinator drives budget status transitions. Every transition runs in
// one database transaction covering the budget row, its services, the
// confirmation token and the outgoing notification.
type Coordinator struct {
	tx       repository.TxManager
	notifier Notifier
	tokenTTL time.Duration
}

// NewCoordinator creates a Coordinator. A zero tokenTTL falls back to the
// default budget token lifetime.
func NewCoordinator(tx repository.TxManager, notifier Notifier, tokenTTL time.Duration) *Coordinator {
	if tokenTTL <= 0 {
		tokenTTL = models.BudgetTokenTTL
	}
	return &Coordinator{tx: tx, notifier: notifier, tokenTTL: tokenTTL}
}

// ChangeStatusInput identifies the budget and the transition an actor
// requests.
type ChangeStatusInput struct {
	TenantID uint
	UserID   uint
	BudgetID uint
	Action   models.BudgetStatus
}

// Outcome reports what a committed transition did.
type Outcome struct {
	BudgetID        uint
	BudgetPublicID  string
	OldStatus       models.BudgetStatus
	NewStatus       models.BudgetStatus
	OldStatusName   string
	NewStatusName   string
	UpdatedServices []uint
	TokenIssued     bool
}

// ChangeBudgetStatus applies a requested status change to a budget,
// cascading to its services and issuing a confirmation token when the
// transition asks the customer to act. Either everything commits or
// nothing does.
func (c *Coordinator) ChangeBudgetStatus(ctx context.Context, in ChangeStatusInput) (*Outcome, error) {
	var outcome *Outcome

	err := c.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		budget, err := repos.Budget.GetByIDForUpdate(in.BudgetID, in.TenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBudgetNotFound
			}
			return err
		}

		services, err := repos.Service.ListByBudget(budget.ID, in.TenantID)
		if err != nil {
			return err
		}

		plan, err := PlanTransition(budget, services, in.Action)
		if err != nil {
			return err
		}

		out, err := c.applyPlan(repos, budget, plan)
		if err != nil {
			return err
		}

		// The terminal check must hold at commit time, not just when
		// the plan was computed under the row lock.
		if plan.To == models.BudgetCompleted {
			fresh, err := repos.Service.ListByBudget(budget.ID, in.TenantID)
			if err != nil {
				return err
			}
			for i := range fresh {
				if !fresh[i].Status.Terminal() {
					return &InvalidTransitionError{
						From:   plan.From,
						To:     plan.To,
						Reason: "service statuses changed concurrently, retry",
					}
				}
			}
		}

		outcome = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// applyPlan persists a computed plan: the budget row, the service
// cascade, and the token plus notification when the plan requires one.
func (c *Coordinator) applyPlan(repos *repository.Repositories, budget *models.Budget, plan *TransitionPlan) (*Outcome, error) {
	budget.Status = plan.To
	if err := repos.Budget.Update(budget); err != nil {
		return nil, err
	}

	updater := NewServiceStatusUpdater(repos.Service)
	var updated []uint
	for _, change := range plan.Changes {
		changed, err := updater.Apply(change.Service, change.NewStatus)
		if err != nil {
			return nil, err
		}
		if changed {
			updated = append(updated, change.Service.ID)
		}
	}

	out := &Outcome{
		BudgetID:        budget.ID,
		BudgetPublicID:  budget.PublicID,
		OldStatus:       plan.From,
		NewStatus:       plan.To,
		OldStatusName:   plan.From.Name(),
		NewStatusName:   plan.To.Name(),
		UpdatedServices: updated,
	}

	if !plan.RequiresToken {
		return out, nil
	}

	tokens := NewTokenManager(repos.Token)
	token, reused, err := tokens.EnsureLiveToken(budget.UserID, budget.TenantID, budget.ConfirmationTokenID, c.tokenTTL)
	if err != nil {
		return nil, err
	}

	if budget.ConfirmationTokenID == nil || *budget.ConfirmationTokenID != token.ID {
		budget.ConfirmationTokenID = &token.ID
		if err := repos.Budget.Update(budget); err != nil {
			return nil, err
		}
	}

	// A reused live token means the customer already has a working link.
	if !reused {
		customer, err := repos.Customer.GetByID(budget.CustomerID, budget.TenantID)
		if err != nil {
			return nil, err
		}
		if err := c.notifier.SendBudgetConfirmation(budget, customer, token); err != nil {
			return nil, &NotificationError{Err: err}
		}
		out.TokenIssued = true
	}

	return out, nil
}

package lifecycle

import (
	"github.com/orcahub/OrcaHub/app/models"
)

// ServiceChange pairs a service with the status it must move to as part
// of a budget transition.
type ServiceChange struct {
	Service   *models.Service
	NewStatus models.ServiceStatus
}

// TransitionPlan describes everything a legal budget transition entails.
// Plans are computed from a snapshot and applied atomically elsewhere.
type TransitionPlan struct {
	From          models.BudgetStatus
	To            models.BudgetStatus
	Changes       []ServiceChange
	RequiresToken bool
}

// cascadeRule defines one legal edge of the budget status graph.
type cascadeRule struct {
	// guard rejects the transition based on the budget's services.
	guard func(services []models.Service) error
	// serviceTarget maps a service status to the status it cascades to.
	// The second return is false when the service keeps its status.
	serviceTarget func(current models.ServiceStatus) (models.ServiceStatus, bool)
	requiresToken bool
}

func noCascade(models.ServiceStatus) (models.ServiceStatus, bool) {
	return "", false
}

// transitions holds the legal budget status edges, keyed current -> requested.
var transitions = buildTransitions()

func buildTransitions() map[models.BudgetStatus]map[models.BudgetStatus]cascadeRule {
	t := make(map[models.BudgetStatus]map[models.BudgetStatus]cascadeRule)

	add := func(from, to models.BudgetStatus, rule cascadeRule) {
		if t[from] == nil {
			t[from] = make(map[models.BudgetStatus]cascadeRule)
		}
		t[from][to] = rule
	}

	// addExcept registers the edge from every status not listed.
	addExcept := func(to models.BudgetStatus, rule cascadeRule, except ...models.BudgetStatus) {
		skip := make(map[models.BudgetStatus]bool, len(except))
		for _, s := range except {
			skip[s] = true
		}
		for _, from := range models.BudgetStatuses {
			if !skip[from] && from != to {
				add(from, to, rule)
			}
		}
	}

	// Submitting a draft mails a confirmation token to the customer and
	// moves its draft services along with it.
	add(models.BudgetDraft, models.BudgetPending, cascadeRule{
		guard: func(services []models.Service) error {
			if len(services) == 0 {
				return &InvalidTransitionError{
					From:   models.BudgetDraft,
					To:     models.BudgetPending,
					Reason: "budget has no services",
				}
			}
			return nil
		},
		serviceTarget: func(s models.ServiceStatus) (models.ServiceStatus, bool) {
			if s == models.ServiceDraft {
				return models.ServicePending, true
			}
			return "", false
		},
		requiresToken: true,
	})

	add(models.BudgetPending, models.BudgetApproved, cascadeRule{
		serviceTarget: func(s models.ServiceStatus) (models.ServiceStatus, bool) {
			if s == models.ServicePending {
				return models.ServiceScheduling, true
			}
			return "", false
		},
	})

	add(models.BudgetPending, models.BudgetRejected, cascadeRule{
		serviceTarget: func(s models.ServiceStatus) (models.ServiceStatus, bool) {
			if s == models.ServicePending {
				return models.ServiceDraft, true
			}
			return "", false
		},
	})

	// Reopening keeps finished work untouched and pulls everything else
	// back to the drawing board.
	reopen := cascadeRule{
		serviceTarget: func(s models.ServiceStatus) (models.ServiceStatus, bool) {
			switch s {
			case models.ServiceDraft, models.ServiceCompleted, models.ServicePartial:
				return "", false
			}
			return models.ServiceDraft, true
		},
	}
	add(models.BudgetCancelled, models.BudgetDraft, reopen)
	add(models.BudgetRejected, models.BudgetDraft, reopen)
	add(models.BudgetExpired, models.BudgetDraft, reopen)

	// Cancelling preserves partial progress: work already under way
	// counts as partially performed, anything else is cancelled.
	addExcept(models.BudgetCancelled, cascadeRule{
		serviceTarget: func(s models.ServiceStatus) (models.ServiceStatus, bool) {
			if s.Terminal() {
				return "", false
			}
			if s == models.ServiceInProgress {
				return models.ServicePartial, true
			}
			return models.ServiceCancelled, true
		},
	}, models.BudgetCompleted)

	add(models.BudgetApproved, models.BudgetCompleted, cascadeRule{
		guard: func(services []models.Service) error {
			for i := range services {
				if !services[i].Status.Terminal() {
					return &InvalidTransitionError{
						From:   models.BudgetApproved,
						To:     models.BudgetCompleted,
						Reason: "not all services reached a final status",
					}
				}
			}
			return nil
		},
		serviceTarget: noCascade,
	})

	addExcept(models.BudgetExpired, cascadeRule{
		serviceTarget: func(s models.ServiceStatus) (models.ServiceStatus, bool) {
			switch s {
			case models.ServiceCancelled, models.ServiceCompleted, models.ServicePartial,
				models.ServiceNotPerformed, models.ServiceExpired:
				return "", false
			}
			return models.ServiceExpired, true
		},
	}, models.BudgetCancelled, models.BudgetCompleted)

	return t
}

// NormalizeRequest rewrites a request to re-submit a closed budget into a
// request to reopen it. Customers cannot be asked to confirm a budget that
// was cancelled, rejected or expired without it going through draft again.
func NormalizeRequest(current, requested models.BudgetStatus) models.BudgetStatus {
	if requested != models.BudgetPending {
		return requested
	}
	switch current {
	case models.BudgetCancelled, models.BudgetRejected, models.BudgetExpired:
		return models.BudgetDraft
	}
	return requested
}

// PlanTransition validates the requested status change against the
// lifecycle rules and returns the plan to apply. The services slice must
// be the budget's full current set. PlanTransition never mutates its
// inputs.
func PlanTransition(budget *models.Budget, services []models.Service, requested models.BudgetStatus) (*TransitionPlan, error) {
	to := NormalizeRequest(budget.Status, requested)

	rule, ok := transitions[budget.Status][to]
	if !ok {
		return nil, &InvalidTransitionError{From: budget.Status, To: to}
	}

	if rule.guard != nil {
		if err := rule.guard(services); err != nil {
			return nil, err
		}
	}

	plan := &TransitionPlan{
		From:          budget.Status,
		To:            to,
		RequiresToken: rule.requiresToken,
	}

	for i := range services {
		if target, changed := rule.serviceTarget(services[i].Status); changed {
			plan.Changes = append(plan.Changes, ServiceChange{
				Service:   &services[i],
				NewStatus: target,
			})
		}
	}

	return plan, nil
}

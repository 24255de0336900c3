package budgeting

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/orcahub/OrcaHub/app/models"
	"github.com/orcahub/OrcaHub/app/repository"
)

var (
	// ErrCustomerNotFound is returned when a budget targets a customer
	// the tenant does not have.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrBudgetNotFound is returned when the target budget does not
	// exist within the caller's tenant.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetNotEditable is returned when services are added to a
	// budget that already left draft.
	ErrBudgetNotEditable = errors.New("budget is not in draft")
)

// BudgetService creates budgets and their service lines. Code sequences
// are allocated inside the creating transaction so concurrent creates
// cannot collide.
type BudgetService struct {
	tx repository.TxManager
}

// NewBudgetService creates a BudgetService.
func NewBudgetService(tx repository.TxManager) *BudgetService {
	return &BudgetService{tx: tx}
}

// CreateBudgetInput carries the fields needed to open a draft budget.
type CreateBudgetInput struct {
	TenantID   uint
	CustomerID uint
	UserID     uint
	DueDate    *time.Time
}

// CreateBudget opens a draft budget with the next code in the tenant's
// daily sequence.
func (s *BudgetService) CreateBudget(ctx context.Context, in CreateBudgetInput) (*models.Budget, error) {
	budget := models.NewBudget(in.TenantID, in.CustomerID, in.UserID, in.DueDate)

	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Customer.GetByID(in.CustomerID, in.TenantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		now := time.Now()
		last, err := repos.Budget.LastCodeForDate(in.TenantID, models.BudgetCodeDatePrefix(now))
		if err != nil {
			return err
		}
		budget.Code = models.FormatBudgetCode(now, trailingSequence(last, 4)+1)

		if err := budget.Validate(); err != nil {
			return err
		}
		return repos.Budget.Create(budget)
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// AddServiceInput carries the fields needed to add a service line.
type AddServiceInput struct {
	TenantID   uint
	BudgetID   uint
	CategoryID uint
	Total      float64
	DueDate    *time.Time
}

// AddService appends a draft service line to a draft budget and
// recomputes the budget total as the sum of its service totals.
func (s *BudgetService) AddService(ctx context.Context, in AddServiceInput) (*models.Service, error) {
	service := &models.Service{
		TenantID:   in.TenantID,
		BudgetID:   in.BudgetID,
		CategoryID: in.CategoryID,
		Status:     models.ServiceDraft,
		Total:      in.Total,
		DueDate:    in.DueDate,
	}

	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		budget, err := repos.Budget.GetByIDForUpdate(in.BudgetID, in.TenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBudgetNotFound
			}
			return err
		}
		if budget.Status != models.BudgetDraft {
			return ErrBudgetNotEditable
		}

		last, err := repos.Service.LastCodeForBudget(budget.ID, in.TenantID)
		if err != nil {
			return err
		}
		service.Code = models.FormatServiceCode(budget.Code, trailingSequence(last, 3)+1)

		if err := service.Validate(); err != nil {
			return err
		}
		if err := repos.Service.Create(service); err != nil {
			return err
		}

		services, err := repos.Service.ListByBudget(budget.ID, in.TenantID)
		if err != nil {
			return err
		}
		var total float64
		for i := range services {
			total += services[i].Total
		}
		budget.Total = total
		return repos.Budget.Update(budget)
	})
	if err != nil {
		return nil, err
	}
	return service, nil
}

// trailingSequence parses the last width digits of a code, returning 0
// for an empty or malformed code.
func trailingSequence(code string, width int) int {
	if len(code) < width {
		return 0
	}
	raw := code[len(code)-width:]
	if strings.ContainsAny(raw, "-S") {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BudgetStatus is the closed set of lifecycle states a budget moves through.
type BudgetStatus string

const (
	BudgetDraft     BudgetStatus = "DRAFT"
	BudgetPending   BudgetStatus = "PENDING"
	BudgetApproved  BudgetStatus = "APPROVED"
	BudgetRejected  BudgetStatus = "REJECTED"
	BudgetCancelled BudgetStatus = "CANCELLED"
	BudgetCompleted BudgetStatus = "COMPLETED"
	BudgetExpired   BudgetStatus = "EXPIRED"
)

// BudgetStatuses lists every budget status in lifecycle order.
var BudgetStatuses = []BudgetStatus{
	BudgetDraft,
	BudgetPending,
	BudgetApproved,
	BudgetRejected,
	BudgetCancelled,
	BudgetCompleted,
	BudgetExpired,
}

var budgetStatusNames = map[BudgetStatus]string{
	BudgetDraft:     "Draft",
	BudgetPending:   "Awaiting approval",
	BudgetApproved:  "Approved",
	BudgetRejected:  "Rejected",
	BudgetCancelled: "Cancelled",
	BudgetCompleted: "Completed",
	BudgetExpired:   "Expired",
}

// Valid reports whether s is one of the known budget statuses.
func (s BudgetStatus) Valid() bool {
	_, ok := budgetStatusNames[s]
	return ok
}

// Name returns the human-readable label for the status.
func (s BudgetStatus) Name() string {
	if name, ok := budgetStatusNames[s]; ok {
		return name
	}
	return string(s)
}

// ParseBudgetStatus converts a request slug into a BudgetStatus.
func ParseBudgetStatus(slug string) (BudgetStatus, error) {
	s := BudgetStatus(slug)
	if !s.Valid() {
		return "", fmt.Errorf("unknown budget status %q", slug)
	}
	return s, nil
}

const budgetCodePrefix = "ORC"

// FormatBudgetCode builds a budget code like ORC-202608280001 from the
// issue date and the per-tenant daily sequence number.
func FormatBudgetCode(date time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s%04d", budgetCodePrefix, date.Format("20060102"), sequence)
}

// BudgetCodeDatePrefix returns the code prefix shared by all budgets of a
// tenant issued on the given day, used to find the next sequence number.
func BudgetCodeDatePrefix(date time.Time) string {
	return fmt.Sprintf("%s-%s", budgetCodePrefix, date.Format("20060102"))
}

// Budget is a quote document owned by a tenant, composed of services.
// Its status only ever changes through the lifecycle coordinator; Total is
// maintained by service CRUD as the sum of the budget's service totals.
type Budget struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	PublicID            string         `gorm:"type:varchar(36);uniqueIndex" json:"public_id"`
	Code                string         `gorm:"type:varchar(20);uniqueIndex:uq_budgets_tenant_code" json:"code"`
	TenantID            uint           `gorm:"uniqueIndex:uq_budgets_tenant_code;index" json:"tenant_id" validate:"required"`
	CustomerID          uint           `gorm:"index" json:"customer_id" validate:"required"`
	UserID              uint           `gorm:"index" json:"user_id" validate:"required"`
	Status              BudgetStatus   `gorm:"type:varchar(20);default:'DRAFT'" json:"status"`
	Total               float64        `gorm:"type:decimal(12,2);default:0" json:"total" validate:"gte=0"`
	ConfirmationTokenID *uint          `gorm:"default:null" json:"-"`
	DueDate             *time.Time     `gorm:"type:date;default:null" json:"due_date"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// NewBudget creates a draft budget without a code; the code is assigned
// when the budget is persisted, inside the creating transaction.
func NewBudget(tenantID, customerID, userID uint, dueDate *time.Time) *Budget {
	return &Budget{
		PublicID:   uuid.NewString(),
		TenantID:   tenantID,
		CustomerID: customerID,
		UserID:     userID,
		Status:     BudgetDraft,
		DueDate:    dueDate,
	}
}

func (b *Budget) Validate() error {
	v := validator.New()

	if err := v.Struct(b); err != nil {
		return err
	}
	if !b.Status.Valid() {
		return fmt.Errorf("invalid budget status %q", b.Status)
	}
	return nil
}

package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ServiceStatus is the closed set of lifecycle states for a single
// service line inside a budget.
type ServiceStatus string

const (
	ServiceDraft        ServiceStatus = "DRAFT"
	ServicePending      ServiceStatus = "PENDING"
	ServiceScheduling   ServiceStatus = "SCHEDULING"
	ServiceInProgress   ServiceStatus = "IN_PROGRESS"
	ServiceCompleted    ServiceStatus = "COMPLETED"
	ServicePartial      ServiceStatus = "PARTIAL"
	ServiceCancelled    ServiceStatus = "CANCELLED"
	ServiceNotPerformed ServiceStatus = "NOT_PERFORMED"
	ServiceExpired      ServiceStatus = "EXPIRED"
)

// ServiceStatuses lists every service status in lifecycle order.
var ServiceStatuses = []ServiceStatus{
	ServiceDraft,
	ServicePending,
	ServiceScheduling,
	ServiceInProgress,
	ServiceCompleted,
	ServicePartial,
	ServiceCancelled,
	ServiceNotPerformed,
	ServiceExpired,
}

var serviceStatusNames = map[ServiceStatus]string{
	ServiceDraft:        "Draft",
	ServicePending:      "Awaiting approval",
	ServiceScheduling:   "Scheduling",
	ServiceInProgress:   "In progress",
	ServiceCompleted:    "Completed",
	ServicePartial:      "Partially performed",
	ServiceCancelled:    "Cancelled",
	ServiceNotPerformed: "Not performed",
	ServiceExpired:      "Expired",
}

// Terminal service statuses never change again once reached.
var terminalServiceStatuses = map[ServiceStatus]bool{
	ServiceCompleted:    true,
	ServicePartial:      true,
	ServiceCancelled:    true,
	ServiceNotPerformed: true,
	ServiceExpired:      true,
}

// Valid reports whether s is one of the known service statuses.
func (s ServiceStatus) Valid() bool {
	_, ok := serviceStatusNames[s]
	return ok
}

// Name returns the human-readable label for the status.
func (s ServiceStatus) Name() string {
	if name, ok := serviceStatusNames[s]; ok {
		return name
	}
	return string(s)
}

// Terminal reports whether the status is final.
func (s ServiceStatus) Terminal() bool {
	return terminalServiceStatuses[s]
}

// ParseServiceStatus converts a request slug into a ServiceStatus.
func ParseServiceStatus(slug string) (ServiceStatus, error) {
	s := ServiceStatus(slug)
	if !s.Valid() {
		return "", fmt.Errorf("unknown service status %q", slug)
	}
	return s, nil
}

// FormatServiceCode builds a service line code like ORC-202608280001-S001
// from the owning budget's code and the line sequence.
func FormatServiceCode(budgetCode string, sequence int) string {
	return fmt.Sprintf("%s-S%03d", budgetCode, sequence)
}

// Service is a single line of work inside a budget.
type Service struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	TenantID   uint           `gorm:"index" json:"tenant_id" validate:"required"`
	BudgetID   uint           `gorm:"index" json:"budget_id" validate:"required"`
	CategoryID uint           `gorm:"index" json:"category_id"`
	Code       string         `gorm:"type:varchar(30);index" json:"code"`
	Status     ServiceStatus  `gorm:"type:varchar(20);default:'DRAFT'" json:"status"`
	Total      float64        `gorm:"type:decimal(12,2);default:0" json:"total" validate:"gte=0"`
	DueDate    *time.Time     `gorm:"type:date;default:null" json:"due_date"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Service) Validate() error {
	v := validator.New()

	if err := v.Struct(s); err != nil {
		return err
	}
	if !s.Status.Valid() {
		return fmt.Errorf("invalid service status %q", s.Status)
	}
	return nil
}

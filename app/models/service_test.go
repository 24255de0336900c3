package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceStatusTerminal(t *testing.T) {
	tests := []struct {
		status   ServiceStatus
		terminal bool
	}{
		{ServiceDraft, false},
		{ServicePending, false},
		{ServiceScheduling, false},
		{ServiceInProgress, false},
		{ServiceCompleted, true},
		{ServicePartial, true},
		{ServiceCancelled, true},
		{ServiceNotPerformed, true},
		{ServiceExpired, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.terminal {
			t.Fatalf("%s.Terminal() = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestParseServiceStatus(t *testing.T) {
	got, err := ParseServiceStatus("IN_PROGRESS")
	assert.NoError(t, err)
	assert.Equal(t, ServiceInProgress, got)

	_, err = ParseServiceStatus("in_progress")
	assert.Error(t, err)
}

func TestFormatServiceCode(t *testing.T) {
	assert.Equal(t, "ORC-202608280001-S001", FormatServiceCode("ORC-202608280001", 1))
	assert.Equal(t, "ORC-202608280001-S012", FormatServiceCode("ORC-202608280001", 12))
}

func TestServiceValidate(t *testing.T) {
	svc := &Service{TenantID: 1, BudgetID: 1, Status: ServiceDraft}
	assert.NoError(t, svc.Validate())

	svc.Status = "BOGUS"
	assert.Error(t, svc.Validate())

	svc = &Service{TenantID: 1, BudgetID: 1, Status: ServiceDraft, Total: -5}
	assert.Error(t, svc.Validate())
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBudgetStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    BudgetStatus
		wantErr bool
	}{
		{in: "DRAFT", want: BudgetDraft},
		{in: "PENDING", want: BudgetPending},
		{in: "APPROVED", want: BudgetApproved},
		{in: "COMPLETED", want: BudgetCompleted},
		{in: "draft", wantErr: true},
		{in: "UNKNOWN", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseBudgetStatus(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseBudgetStatus(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseBudgetStatus(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestBudgetStatusName(t *testing.T) {
	assert.Equal(t, "Awaiting approval", BudgetPending.Name())
	assert.Equal(t, "Draft", BudgetDraft.Name())
	assert.Equal(t, "BOGUS", BudgetStatus("BOGUS").Name())
}

func TestFormatBudgetCode(t *testing.T) {
	date := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "ORC-202608280001", FormatBudgetCode(date, 1))
	assert.Equal(t, "ORC-202608280042", FormatBudgetCode(date, 42))
	assert.Equal(t, "ORC-20260828", BudgetCodeDatePrefix(date))
}

func TestNewBudget(t *testing.T) {
	budget := NewBudget(1, 2, 3, nil)

	assert.NotEmpty(t, budget.PublicID)
	assert.Equal(t, BudgetDraft, budget.Status)
	assert.Equal(t, uint(1), budget.TenantID)
	assert.Equal(t, uint(2), budget.CustomerID)
	assert.Equal(t, uint(3), budget.UserID)
	assert.Empty(t, budget.Code)

	other := NewBudget(1, 2, 3, nil)
	assert.NotEqual(t, budget.PublicID, other.PublicID)
}

func TestBudgetValidate(t *testing.T) {
	budget := NewBudget(1, 2, 3, nil)
	require.NoError(t, budget.Validate())

	budget.Status = "BOGUS"
	assert.Error(t, budget.Validate())

	budget = NewBudget(0, 2, 3, nil)
	assert.Error(t, budget.Validate())

	budget = NewBudget(1, 2, 3, nil)
	budget.Total = -1
	assert.Error(t, budget.Validate())
}

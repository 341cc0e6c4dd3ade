package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

func newDraftBudget(t *testing.T) *domain.Budget {
	t.Helper()
	b, err := domain.NewBudget("building-1", 2026,
		decimal.NewFromFloat(50000), decimal.NewFromFloat(25000), "user-1")
	require.NoError(t, err)
	return b
}

func TestNewBudget_DerivedAmounts(t *testing.T) {
	b := newDraftBudget(t)

	assert.Equal(t, domain.BudgetDraft, b.Status)
	assert.True(t, b.TotalBudget.Equal(decimal.NewFromFloat(75000)))
	assert.True(t, b.MonthlyProvisionAmount.Equal(decimal.NewFromFloat(6250)))
	assert.False(t, b.IsActive())
	assert.Nil(t, b.SubmittedDate)
	assert.Nil(t, b.ApprovedDate)
}

func TestNewBudget_Validation(t *testing.T) {
	tests := []struct {
		name          string
		buildingID    string
		fiscalYear    int
		ordinary      float64
		extraordinary float64
	}{
		{name: "missing building", buildingID: "", fiscalYear: 2026, ordinary: 100, extraordinary: 0},
		{name: "fiscal year too early", buildingID: "b1", fiscalYear: 1999, ordinary: 100, extraordinary: 0},
		{name: "fiscal year too late", buildingID: "b1", fiscalYear: 2101, ordinary: 100, extraordinary: 0},
		{name: "negative ordinary", buildingID: "b1", fiscalYear: 2026, ordinary: -1, extraordinary: 100},
		{name: "negative extraordinary", buildingID: "b1", fiscalYear: 2026, ordinary: 100, extraordinary: -1},
		{name: "zero total", buildingID: "b1", fiscalYear: 2026, ordinary: 0, extraordinary: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewBudget(tt.buildingID, tt.fiscalYear,
				decimal.NewFromFloat(tt.ordinary), decimal.NewFromFloat(tt.extraordinary), "user-1")
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	// Boundary years are inclusive.
	for _, year := range []int{2000, 2100} {
		_, err := domain.NewBudget("b1", year, decimal.NewFromFloat(100), decimal.Zero, "user-1")
		assert.NoError(t, err)
	}
}

func TestBudget_FullLifecycle(t *testing.T) {
	b := newDraftBudget(t)

	require.NoError(t, b.SubmitForApproval("user-1"))
	assert.Equal(t, domain.BudgetSubmitted, b.Status)
	require.NotNil(t, b.SubmittedDate)

	require.NoError(t, b.Approve("meeting-7", "user-2"))
	assert.Equal(t, domain.BudgetApproved, b.Status)
	require.NotNil(t, b.ApprovedDate)
	require.NotNil(t, b.ApprovedByMeetingID)
	assert.Equal(t, "meeting-7", *b.ApprovedByMeetingID)
	assert.True(t, b.IsActive())

	require.NoError(t, b.Archive("user-2"))
	assert.Equal(t, domain.BudgetArchived, b.Status)
	assert.False(t, b.IsActive())
}

func TestBudget_RejectionIsReEditable(t *testing.T) {
	b := newDraftBudget(t)
	require.NoError(t, b.SubmitForApproval("user-1"))
	require.NoError(t, b.Reject("user-2"))
	assert.Equal(t, domain.BudgetRejected, b.Status)

	// A rejected budget can be amended and resubmitted.
	require.NoError(t, b.UpdateAmounts(decimal.NewFromFloat(60000), decimal.NewFromFloat(12000), "user-1"))
	assert.True(t, b.TotalBudget.Equal(decimal.NewFromFloat(72000)))
	assert.True(t, b.MonthlyProvisionAmount.Equal(decimal.NewFromFloat(6000)))
	require.NoError(t, b.SubmitForApproval("user-1"))
	assert.Equal(t, domain.BudgetSubmitted, b.Status)
}

func TestBudget_UpdateAmountsNotEditable(t *testing.T) {
	b := newDraftBudget(t)
	require.NoError(t, b.SubmitForApproval("user-1"))

	err := b.UpdateAmounts(decimal.NewFromFloat(1000), decimal.Zero, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrNotEditable)
	// Amounts are untouched on failure.
	assert.True(t, b.TotalBudget.Equal(decimal.NewFromFloat(75000)))
}

func TestBudget_UpdateAmountsRejectsZeroTotal(t *testing.T) {
	b := newDraftBudget(t)
	err := b.UpdateAmounts(decimal.Zero, decimal.Zero, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBudget_MonthlyProvisionStaysDerived(t *testing.T) {
	b := newDraftBudget(t)
	amounts := []struct{ ordinary, extraordinary float64 }{
		{12000, 0},
		{100, 23},
		{99999.99, 0.01},
	}
	for _, a := range amounts {
		require.NoError(t, b.UpdateAmounts(decimal.NewFromFloat(a.ordinary), decimal.NewFromFloat(a.extraordinary), "user-1"))
		expected := b.TotalBudget.Div(decimal.NewFromInt(12))
		assert.True(t, b.MonthlyProvisionAmount.Equal(expected),
			"monthly provision %s does not equal total/12 %s", b.MonthlyProvisionAmount, expected)
	}
}

func TestBudget_StateMachineClosure(t *testing.T) {
	submitted := func(t *testing.T) *domain.Budget {
		b := newDraftBudget(t)
		require.NoError(t, b.SubmitForApproval("u"))
		return b
	}
	approved := func(t *testing.T) *domain.Budget {
		b := submitted(t)
		require.NoError(t, b.Approve("m", "u"))
		return b
	}
	archived := func(t *testing.T) *domain.Budget {
		b := approved(t)
		require.NoError(t, b.Archive("u"))
		return b
	}

	tests := []struct {
		name string
		run  func(t *testing.T) error
	}{
		{name: "approve from draft", run: func(t *testing.T) error { return newDraftBudget(t).Approve("m", "u") }},
		{name: "reject from draft", run: func(t *testing.T) error { return newDraftBudget(t).Reject("u") }},
		{name: "archive from draft", run: func(t *testing.T) error { return newDraftBudget(t).Archive("u") }},
		{name: "submit from submitted", run: func(t *testing.T) error { return submitted(t).SubmitForApproval("u") }},
		{name: "archive from submitted", run: func(t *testing.T) error { return submitted(t).Archive("u") }},
		{name: "submit from approved", run: func(t *testing.T) error { return approved(t).SubmitForApproval("u") }},
		{name: "reject from approved", run: func(t *testing.T) error { return approved(t).Reject("u") }},
		{name: "approve from approved", run: func(t *testing.T) error { return approved(t).Approve("m", "u") }},
		{name: "submit from archived", run: func(t *testing.T) error { return archived(t).SubmitForApproval("u") }},
		{name: "approve from archived", run: func(t *testing.T) error { return archived(t).Approve("m", "u") }},
		{name: "reject from archived", run: func(t *testing.T) error { return archived(t).Reject("u") }},
		{name: "archive from archived", run: func(t *testing.T) error { return archived(t).Archive("u") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(t)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrStateTransition)

			var transition *domain.InvalidTransitionError
			assert.True(t, errors.As(err, &transition))
		})
	}
}

func TestBudget_ApproveRequiresMeeting(t *testing.T) {
	b := newDraftBudget(t)
	require.NoError(t, b.SubmitForApproval("u"))
	err := b.Approve("", "u")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.BudgetSubmitted, b.Status)
}

func TestParseBudgetStatus(t *testing.T) {
	for _, valid := range []string{"DRAFT", "SUBMITTED", "APPROVED", "REJECTED", "ARCHIVED"} {
		s, err := domain.ParseBudgetStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, domain.BudgetStatus(valid), s)
	}
	_, err := domain.ParseBudgetStatus("PENDING")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

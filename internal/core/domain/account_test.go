package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

func TestParseAccountType(t *testing.T) {
	cases := []struct {
		input string
		want  domain.AccountType
	}{
		{"ASSET", domain.AccountTypeAsset},
		{"LIABILITY", domain.AccountTypeLiability},
		{"EXPENSE", domain.AccountTypeExpense},
		{"REVENUE", domain.AccountTypeRevenue},
	}
	for _, tc := range cases {
		got, err := domain.ParseAccountType(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got)
	}

	_, err := domain.ParseAccountType("EQUITY")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAccount_Validate(t *testing.T) {
	parent := "6"
	account := domain.Account{
		Code:        "6100",
		Label:       "Maintenance and repairs",
		ParentCode:  &parent,
		AccountType: domain.AccountTypeExpense,
		DirectUse:   true,
	}
	require.NoError(t, account.Validate())

	missingLabel := account
	missingLabel.Label = ""
	assert.ErrorIs(t, missingLabel.Validate(), apperrors.ErrValidation)

	badType := account
	badType.AccountType = "EQUITY"
	assert.ErrorIs(t, badType.Validate(), apperrors.ErrValidation)

	ownParent := account
	ownParent.ParentCode = &ownParent.Code
	assert.ErrorIs(t, ownParent.Validate(), apperrors.ErrValidation)
}

package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

func debitLine(code string, amount float64) domain.NewJournalLineParams {
	return domain.NewJournalLineParams{
		AccountCode: code,
		Debit:       decimal.NewFromFloat(amount),
		Credit:      decimal.Zero,
	}
}

func creditLine(code string, amount float64) domain.NewJournalLineParams {
	return domain.NewJournalLineParams{
		AccountCode: code,
		Debit:       decimal.Zero,
		Credit:      decimal.NewFromFloat(amount),
	}
}

func entryParams(lines ...domain.NewJournalLineParams) domain.NewJournalEntryParams {
	return domain.NewJournalEntryParams{
		OrganizationID: "org-1",
		EntryDate:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:    "Elevator maintenance invoice",
		DocumentRef:    "INV-2026-042",
		Lines:          lines,
		CreatedBy:      "user-1",
	}
}

func TestNewJournalEntry_BalancedPurchaseWithVAT(t *testing.T) {
	p := entryParams(
		debitLine("6100", 1000.0),
		debitLine("4110", 210.0),
		creditLine("4400", 1210.0),
	)
	jt := "PURCHASES"
	p.JournalType = &jt

	entry, err := domain.NewJournalEntry(p)
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.NotEmpty(t, entry.EntryID)
	assert.Len(t, entry.Lines, 3)
	assert.True(t, entry.TotalDebits().Equal(decimal.NewFromFloat(1210.0)))
	assert.True(t, entry.TotalCredits().Equal(decimal.NewFromFloat(1210.0)))
	assert.True(t, entry.IsBalanced())
	require.NotNil(t, entry.JournalType)
	assert.Equal(t, domain.Purchases, *entry.JournalType)
	assert.False(t, entry.CreatedAt.IsZero())
	for _, line := range entry.Lines {
		assert.Equal(t, entry.EntryID, line.EntryID)
		assert.NotEmpty(t, line.LineID)
	}
}

func TestNewJournalEntry_Unbalanced(t *testing.T) {
	p := entryParams(
		debitLine("6100", 1000.0),
		creditLine("4400", 900.0),
	)

	entry, err := domain.NewJournalEntry(p)
	require.Error(t, err)
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	var unbalanced *domain.UnbalancedEntryError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, unbalanced.DebitTotal.Equal(decimal.NewFromFloat(1000.0)))
	assert.True(t, unbalanced.CreditTotal.Equal(decimal.NewFromFloat(900.0)))
	assert.True(t, unbalanced.Difference.Equal(decimal.NewFromFloat(100.0)))
}

func TestNewJournalEntry_BalanceTolerance(t *testing.T) {
	tests := []struct {
		name    string
		credit  float64
		wantErr bool
	}{
		{name: "exact balance", credit: 1000.0, wantErr: false},
		{name: "one cent drift is absorbed", credit: 999.99, wantErr: false},
		{name: "drift exactly at tolerance", credit: 999.989, wantErr: false},
		{name: "drift beyond tolerance", credit: 999.98, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := entryParams(
				debitLine("6100", 1000.0),
				creditLine("4400", tt.credit),
			)
			entry, err := domain.NewJournalEntry(p)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
			} else {
				require.NoError(t, err)
				assert.True(t, entry.IsBalanced())
			}
		})
	}
}

func TestNewJournalEntry_EmptyLines(t *testing.T) {
	p := entryParams()
	entry, err := domain.NewJournalEntry(p)
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, apperrors.ErrEmptyEntry)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewJournalEntry_InvalidJournalType(t *testing.T) {
	p := entryParams(
		debitLine("6100", 100.0),
		creditLine("4400", 100.0),
	)
	jt := "DIARY"
	p.JournalType = &jt

	entry, err := domain.NewJournalEntry(p)
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, apperrors.ErrInvalidJournalType)
}

func TestNewJournalEntry_MissingOrganization(t *testing.T) {
	p := entryParams(debitLine("6100", 100.0), creditLine("4400", 100.0))
	p.OrganizationID = ""

	_, err := domain.NewJournalEntry(p)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJournalEntryLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.JournalEntryLine
		wantErr bool
	}{
		{
			name: "valid debit line",
			line: domain.JournalEntryLine{
				AccountCode: "6100",
				Debit:       decimal.NewFromFloat(50.0),
				Credit:      decimal.Zero,
			},
			wantErr: false,
		},
		{
			name: "valid credit line",
			line: domain.JournalEntryLine{
				AccountCode: "4400",
				Debit:       decimal.Zero,
				Credit:      decimal.NewFromFloat(50.0),
			},
			wantErr: false,
		},
		{
			name: "both sides set",
			line: domain.JournalEntryLine{
				AccountCode: "6100",
				Debit:       decimal.NewFromFloat(50.0),
				Credit:      decimal.NewFromFloat(50.0),
			},
			wantErr: true,
		},
		{
			name: "neither side set",
			line: domain.JournalEntryLine{
				AccountCode: "6100",
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
			},
			wantErr: true,
		},
		{
			name: "negative debit",
			line: domain.JournalEntryLine{
				AccountCode: "6100",
				Debit:       decimal.NewFromFloat(-10.0),
				Credit:      decimal.Zero,
			},
			wantErr: true,
		},
		{
			name: "empty account code",
			line: domain.JournalEntryLine{
				AccountCode: "",
				Debit:       decimal.NewFromFloat(10.0),
				Credit:      decimal.Zero,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidLine)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseJournalType(t *testing.T) {
	for _, valid := range []string{"PURCHASES", "SALES", "FINANCIAL", "MISCELLANEOUS"} {
		jt, err := domain.ParseJournalType(valid)
		assert.NoError(t, err)
		assert.Equal(t, domain.JournalType(valid), jt)
	}

	_, err := domain.ParseJournalType("purchases")
	assert.ErrorIs(t, err, apperrors.ErrInvalidJournalType)
}

package dto

import (
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// CreateAccountRequest defines the payload for adding an account to the chart.
type CreateAccountRequest struct {
	Code        string  `json:"code" binding:"required,accountcode"`
	Label       string  `json:"label" binding:"required"`
	ParentCode  *string `json:"parentCode"`
	AccountType string  `json:"accountType" binding:"required,oneof=ASSET LIABILITY EXPENSE REVENUE"`
	DirectUse   bool    `json:"directUse"`
}

// UpdateAccountRequest defines the fields of an account that may change after
// creation. Pointers differentiate omitted fields from zero values.
type UpdateAccountRequest struct {
	Label     *string `json:"label"`
	DirectUse *bool   `json:"directUse"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string  `json:"accountID"`
	Code        string  `json:"code"`
	Label       string  `json:"label"`
	ParentCode  *string `json:"parentCode,omitempty"`
	AccountType string  `json:"accountType"`
	DirectUse   bool    `json:"directUse"`
}

// ListAccountsParams defines query parameters for listing the chart of accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=100"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the chart of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Code:        a.Code,
		Label:       a.Label,
		ParentCode:  a.ParentCode,
		AccountType: string(a.AccountType),
		DirectUse:   a.DirectUse,
	}
}

// ToListAccountsResponse converts domain accounts to the list DTO.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: responses}
}

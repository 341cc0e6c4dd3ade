package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// DistributionResponse defines the data returned for one owner's charge share.
type DistributionResponse struct {
	DistributionID  string          `json:"distributionID"`
	ExpenseID       string          `json:"expenseID"`
	UnitID          string          `json:"unitID"`
	OwnerID         string          `json:"ownerID"`
	QuotaPercentage decimal.Decimal `json:"quotaPercentage"`
	AmountDue       decimal.Decimal `json:"amountDue"`
}

// DistributionBatchResponse wraps the full batch for one expense together with the
// post-persistence verification result.
type DistributionBatchResponse struct {
	ExpenseID     string                 `json:"expenseID"`
	Distributions []DistributionResponse `json:"distributions"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	Verified      bool                   `json:"verified"`
}

// RecalculateDistributionsRequest triggers a recomputation of an expense's batch
// after its total changed.
type RecalculateDistributionsRequest struct {
	NewTotalAmount decimal.Decimal `json:"newTotalAmount" binding:"required"`
}

// ListDistributionsParams defines query parameters for listing an owner's charges.
type ListDistributionsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ToDistributionResponse converts a domain distribution to its DTO.
func ToDistributionResponse(d *domain.ChargeDistribution) DistributionResponse {
	return DistributionResponse{
		DistributionID:  d.DistributionID,
		ExpenseID:       d.ExpenseID,
		UnitID:          d.UnitID,
		OwnerID:         d.OwnerID,
		QuotaPercentage: d.QuotaPercentage,
		AmountDue:       d.AmountDue,
	}
}

// ToDistributionResponses converts a batch of domain distributions to DTOs.
func ToDistributionResponses(distributions []domain.ChargeDistribution) []DistributionResponse {
	responses := make([]DistributionResponse, len(distributions))
	for i := range distributions {
		responses[i] = ToDistributionResponse(&distributions[i])
	}
	return responses
}

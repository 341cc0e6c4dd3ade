package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// CreateBudgetRequest defines the payload for creating a draft annual budget.
type CreateBudgetRequest struct {
	BuildingID          string          `json:"buildingID" binding:"required"`
	FiscalYear          int             `json:"fiscalYear" binding:"required,min=2000,max=2100"`
	OrdinaryBudget      decimal.Decimal `json:"ordinaryBudget"`
	ExtraordinaryBudget decimal.Decimal `json:"extraordinaryBudget"`
}

// UpdateBudgetAmountsRequest replaces both budget amounts of an editable budget.
type UpdateBudgetAmountsRequest struct {
	OrdinaryBudget      decimal.Decimal `json:"ordinaryBudget"`
	ExtraordinaryBudget decimal.Decimal `json:"extraordinaryBudget"`
}

// ApproveBudgetRequest records which general meeting approved the budget.
type ApproveBudgetRequest struct {
	MeetingID string `json:"meetingID" binding:"required"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID               string          `json:"budgetID"`
	BuildingID             string          `json:"buildingID"`
	FiscalYear             int             `json:"fiscalYear"`
	OrdinaryBudget         decimal.Decimal `json:"ordinaryBudget"`
	ExtraordinaryBudget    decimal.Decimal `json:"extraordinaryBudget"`
	TotalBudget            decimal.Decimal `json:"totalBudget"`
	MonthlyProvisionAmount decimal.Decimal `json:"monthlyProvisionAmount"`
	Status                 string          `json:"status"`
	SubmittedDate          *time.Time      `json:"submittedDate,omitempty"`
	ApprovedDate           *time.Time      `json:"approvedDate,omitempty"`
	ApprovedByMeetingID    *string         `json:"approvedByMeetingID,omitempty"`
}

// ListBudgetsResponse wraps the budgets of a building.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain budget to its DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:               b.BudgetID,
		BuildingID:             b.BuildingID,
		FiscalYear:             b.FiscalYear,
		OrdinaryBudget:         b.OrdinaryBudget,
		ExtraordinaryBudget:    b.ExtraordinaryBudget,
		TotalBudget:            b.TotalBudget,
		MonthlyProvisionAmount: b.MonthlyProvisionAmount,
		Status:                 string(b.Status),
		SubmittedDate:          b.SubmittedDate,
		ApprovedDate:           b.ApprovedDate,
		ApprovedByMeetingID:    b.ApprovedByMeetingID,
	}
}

// ToListBudgetsResponse converts domain budgets to the list DTO.
func ToListBudgetsResponse(budgets []domain.Budget) ListBudgetsResponse {
	responses := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		responses[i] = ToBudgetResponse(&budgets[i])
	}
	return ListBudgetsResponse{Budgets: responses}
}

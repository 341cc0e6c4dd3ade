package dto

import (
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
)

// CreateOrganizationRequest defines the payload for registering a syndic organization.
type CreateOrganizationRequest struct {
	Name      string `json:"name" binding:"required"`
	VATNumber string `json:"vatNumber"`
}

// AddOrganizationUserRequest adds a user to an organization with a role.
type AddOrganizationUserRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=ADMIN ACCOUNTANT MEMBER READONLY"`
}

// UpdateOrganizationUserRoleRequest changes a member's role.
type UpdateOrganizationUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN ACCOUNTANT MEMBER READONLY"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	VATNumber      string `json:"vatNumber,omitempty"`
	IsActive       bool   `json:"isActive"`
}

// ListOrganizationsResponse wraps the organizations a user belongs to.
type ListOrganizationsResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
}

// ToOrganizationResponse converts a domain organization to its DTO.
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: o.OrganizationID,
		Name:           o.Name,
		VATNumber:      o.VATNumber,
		IsActive:       o.IsActive,
	}
}

// ToListOrganizationsResponse converts domain organizations to the list DTO.
func ToListOrganizationsResponse(orgs []domain.Organization) ListOrganizationsResponse {
	responses := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = ToOrganizationResponse(&orgs[i])
	}
	return ListOrganizationsResponse{Organizations: responses}
}

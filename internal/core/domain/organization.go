package domain

import "time"

// Organization is a syndic (property manager) tenant owning buildings, accounts,
// journal entries and budgets.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary Key (e.g., UUID)
	Name           string `json:"name"`
	VATNumber      string `json:"vatNumber"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// UserOrganizationRole defines the roles a user can have within an organization.
type UserOrganizationRole string

const (
	RoleAdmin      UserOrganizationRole = "ADMIN"
	RoleAccountant UserOrganizationRole = "ACCOUNTANT"
	RoleMember     UserOrganizationRole = "MEMBER"
	RoleReadOnly   UserOrganizationRole = "READONLY"
	RoleRemoved    UserOrganizationRole = "REMOVED" // For users removed from the organization
)

// meetsRequirement maps each role onto the roles it subsumes.
var roleRank = map[UserOrganizationRole]int{
	RoleReadOnly:   1,
	RoleMember:     2,
	RoleAccountant: 3,
	RoleAdmin:      4,
}

// Meets reports whether the role satisfies the required role.
func (r UserOrganizationRole) Meets(required UserOrganizationRole) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}

// UserOrganization represents the membership of a user in an organization.
type UserOrganization struct {
	UserID         string               `json:"userID"`         // FK -> users.user_id
	OrganizationID string               `json:"organizationID"` // FK -> organizations.organization_id
	Role           UserOrganizationRole `json:"role"`
	JoinedAt       time.Time            `json:"joinedAt"`
}

package models

import "time"

// Organization represents a syndic tenant row.
type Organization struct {
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	VATNumber      string `db:"vat_number"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// UserOrganization represents a membership row linking a user to an organization.
type UserOrganization struct {
	UserID         string    `db:"user_id"`
	OrganizationID string    `db:"organization_id"`
	Role           string    `db:"role"`
	JoinedAt       time.Time `db:"joined_at"`
}

package mapping

import (
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/models"
)

// ToModelUser converts a domain User to a model User. The password hash is not
// part of the domain type and is supplied separately where needed.
func ToModelUser(d domain.User) models.User {
	var providerUserID *string
	if d.ProviderUserID != "" {
		providerUserID = &d.ProviderUserID
	}
	var refreshTokenHash *string
	if d.RefreshTokenHash != "" {
		refreshTokenHash = &d.RefreshTokenHash
	}
	return models.User{
		UserID:                 d.UserID,
		Name:                   d.Name,
		Email:                  d.Email,
		AuthProvider:           string(d.AuthProvider),
		ProviderUserID:         ToNullString(providerUserID),
		AuditFields:            ToModelAuditFields(d.AuditFields),
		DeletedAt:              d.DeletedAt,
		RefreshTokenHash:       ToNullString(refreshTokenHash),
		RefreshTokenExpiryTime: ToNullTime(d.RefreshTokenExpiryTime),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                 m.UserID,
		Name:                   m.Name,
		Email:                  m.Email,
		AuthProvider:           domain.AuthProvider(m.AuthProvider),
		ProviderUserID:         m.ProviderUserID.String,
		RefreshTokenHash:       m.RefreshTokenHash.String,
		RefreshTokenExpiryTime: FromNullTime(m.RefreshTokenExpiryTime),
		AuditFields:            ToDomainAuditFields(m.AuditFields),
		DeletedAt:              m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithOrganizationAuthorizer adds the organization authorizer dependency
func WithOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleAccountant); err != nil {
		s.LogError(ctx, err, "User not authorized to create account",
			slog.String("user_id", creatorUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		return nil, err
	}

	// The code must be free within the organization.
	if _, err := s.accountRepo.FindAccountByCode(ctx, organizationID, req.Code); err == nil {
		return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	// A referenced parent must exist in the same organization's chart.
	if req.ParentCode != nil && *req.ParentCode != "" {
		parent, err := s.accountRepo.FindAccountByCode(ctx, organizationID, *req.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentCode)
			}
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_code", *req.ParentCode))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
		if parent.AccountType != accountType {
			return nil, fmt.Errorf("%w: account type %s does not match parent type %s", apperrors.ErrValidation, accountType, parent.AccountType)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		Code:           req.Code,
		Label:          req.Label,
		ParentCode:     req.ParentCode,
		AccountType:    accountType,
		DirectUse:      req.DirectUse,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("code", req.Code),
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("organization_id", organizationID))
	return &account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, organizationID string, code string, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, organizationID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, organizationID string, requestingUserID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, code string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, organizationID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for update", slog.String("code", code))
		}
		return nil, err
	}

	updated := false
	if req.Label != nil && *req.Label != account.Label {
		if *req.Label == "" {
			return nil, fmt.Errorf("%w: account label cannot be empty", apperrors.ErrValidation)
		}
		account.Label = *req.Label
		updated = true
	}
	if req.DirectUse != nil && *req.DirectUse != account.DirectUse {
		account.DirectUse = *req.DirectUse
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("code", code))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("code", code), slog.String("organization_id", organizationID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, organizationID string, code string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAccountant); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, organizationID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for deletion", slog.String("code", code))
		}
		return err
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, organizationID, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account children", slog.String("code", code))
		return fmt.Errorf("failed to check account children: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s still has child accounts", apperrors.ErrConflict, code)
	}

	referenced, err := s.accountRepo.IsReferencedByJournalLines(ctx, organizationID, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to check journal references", slog.String("code", code))
		return fmt.Errorf("failed to check journal references: %w", err)
	}
	if referenced {
		return fmt.Errorf("%w: account %s is referenced by journal lines", apperrors.ErrConflict, code)
	}

	if err := s.accountRepo.DeleteAccount(ctx, account.AccountID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("code", code))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.LogInfo(ctx, "Account deleted successfully", slog.String("code", code), slog.String("organization_id", organizationID))
	return nil
}

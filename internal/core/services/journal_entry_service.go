package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gilmry/koprogo-sub003/internal/apperrors"
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	portsrepo "github.com/gilmry/koprogo-sub003/internal/core/ports/repositories"
	portssvc "github.com/gilmry/koprogo-sub003/internal/core/ports/services"
	"github.com/gilmry/koprogo-sub003/internal/dto"
	"github.com/gilmry/koprogo-sub003/internal/middleware"
)

// journalEntryService provides double-entry ledger operations. Entries are validated
// through the domain constructor and persisted atomically; once stored they are
// immutable.
type journalEntryService struct {
	journalRepo     portsrepo.JournalEntryRepositoryWithTx
	accountSvc      portssvc.AccountSvcFacade
	organizationSvc portssvc.OrganizationSvcFacade
}

// NewJournalEntryService creates a new JournalEntryService.
func NewJournalEntryService(journalRepo portsrepo.JournalEntryRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, organizationSvc portssvc.OrganizationSvcFacade) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{
		journalRepo:     journalRepo,
		accountSvc:      accountSvc,
		organizationSvc: organizationSvc,
	}
}

// Ensure journalEntryService implements the portssvc.JournalEntrySvcFacade interface
var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// CreateEntry creates a new balanced journal entry with its lines after validation.
func (s *journalEntryService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.organizationSvc != nil {
		if err := s.organizationSvc.AuthorizeUserAction(ctx, creatorUserID, organizationID, domain.RoleAccountant); err != nil {
			logger.Warn("Authorization failed for CreateEntry", slog.String("user_id", creatorUserID), slog.String("organization_id", organizationID), slog.String("error", err.Error()))
			return nil, err
		}
	} else {
		logger.Warn("OrganizationService not available for authorization check in CreateEntry")
	}

	lines := make([]domain.NewJournalLineParams, len(req.Lines))
	for i, lr := range req.Lines {
		lines[i] = domain.NewJournalLineParams{
			AccountCode: lr.AccountCode,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
		}
	}

	entry, err := domain.NewJournalEntry(domain.NewJournalEntryParams{
		OrganizationID: organizationID,
		BuildingID:     req.BuildingID,
		EntryDate:      req.EntryDate,
		Description:    req.Description,
		DocumentRef:    req.DocumentRef,
		JournalType:    req.JournalType,
		ExpenseID:      req.ExpenseID,
		ContributionID: req.ContributionID,
		Lines:          lines,
		CreatedBy:      creatorUserID,
	})
	if err != nil {
		return nil, err
	}

	// Every referenced account code must exist in the chart and be flagged for
	// direct use before money is posted against it.
	if s.accountSvc != nil {
		if err := s.validateLineAccounts(ctx, organizationID, entry.Lines, creatorUserID); err != nil {
			return nil, err
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, *entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created successfully", slog.String("entry_id", entry.EntryID), slog.String("organization_id", organizationID), slog.Int("line_count", len(entry.Lines)))
	return entry, nil
}

func (s *journalEntryService) validateLineAccounts(ctx context.Context, organizationID string, lines []domain.JournalEntryLine, userID string) error {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountCode]; ok {
			continue
		}
		seen[line.AccountCode] = struct{}{}

		account, err := s.accountSvc.GetAccountByCode(ctx, organizationID, line.AccountCode, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: account code %s not found in chart of accounts", apperrors.ErrValidation, line.AccountCode)
			}
			return fmt.Errorf("failed to fetch account %s: %w", line.AccountCode, err)
		}
		if !account.DirectUse {
			return fmt.Errorf("%w: account %s is not usable on journal lines", apperrors.ErrValidation, line.AccountCode)
		}
	}
	return nil
}

// GetEntryByID retrieves a journal entry with its lines, re-verifying the balance
// invariant on the loaded data.
func (s *journalEntryService) GetEntryByID(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.organizationSvc != nil {
		if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
			logger.Warn("Authorization failed for GetEntryByID", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("entry_id", entryID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	// Ensure the entry actually belongs to the requested organization
	if entry.OrganizationID != organizationID {
		logger.Warn("Journal entry found but belongs to different organization", slog.String("entry_id", entryID), slog.String("entry_organization", entry.OrganizationID), slog.String("requested_organization", organizationID))
		return nil, apperrors.ErrNotFound // Obscure existence
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	// A stored entry that no longer balances means the ledger itself is corrupt,
	// which must surface loudly rather than be served as valid data.
	if !entry.IsBalanced() {
		logger.Error("Stored journal entry no longer balances",
			slog.String("entry_id", entryID),
			slog.String("debits", entry.TotalDebits().String()),
			slog.String("credits", entry.TotalCredits().String()))
		return nil, fmt.Errorf("%w: stored entry %s is unbalanced", apperrors.ErrInternal, entryID)
	}

	logger.Debug("Journal entry and lines retrieved successfully", slog.String("entry_id", entryID), slog.String("organization_id", organizationID), slog.Int("line_count", len(lines)))
	return entry, nil
}

// ListEntries retrieves a paginated list of journal entries for an organization.
func (s *journalEntryService) ListEntries(ctx context.Context, organizationID string, requestingUserID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListEntries", "error", err)
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByOrganization(ctx, organizationID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	entryResponses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		entryResponses[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	resp := &dto.ListJournalEntriesResponse{
		Entries:   entryResponses,
		NextToken: nextToken,
	}

	logger.Info("Journal entries listed successfully", "count", len(entries))
	return resp, nil
}

// ListAccountActivity retrieves a paginated list of the lines posted against an
// account code, newest entry first. The account must exist in the chart.
func (s *journalEntryService) ListAccountActivity(ctx context.Context, organizationID string, accountCode string, requestingUserID string, params dto.ListAccountActivityParams) (*dto.ListAccountActivityResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.organizationSvc.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListAccountActivity", "error", err)
		return nil, err
	}

	if s.accountSvc != nil {
		if _, err := s.accountSvc.GetAccountByCode(ctx, organizationID, accountCode, requestingUserID); err != nil {
			return nil, err
		}
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.journalRepo.ListLinesByAccountCode(ctx, organizationID, accountCode, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list account activity from repository", "error", err, "account_code", accountCode)
		return nil, fmt.Errorf("failed to retrieve account activity: %w", err)
	}

	lineResponses := make([]dto.JournalLineResponse, len(lines))
	for i := range lines {
		lineResponses[i] = dto.ToJournalLineResponse(&lines[i])
	}

	return &dto.ListAccountActivityResponse{
		AccountCode: accountCode,
		Lines:       lineResponses,
		NextToken:   nextToken,
	}, nil
}

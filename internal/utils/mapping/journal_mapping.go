package mapping

import (
	"github.com/gilmry/koprogo-sub003/internal/core/domain"
	"github.com/gilmry/koprogo-sub003/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model
// JournalEntry. Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	var journalType *string
	if d.JournalType != nil {
		jt := string(*d.JournalType)
		journalType = &jt
	}
	return models.JournalEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		BuildingID:     ToNullString(d.BuildingID),
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		DocumentRef:    d.DocumentRef,
		JournalType:    ToNullString(journalType),
		ExpenseID:      ToNullString(d.ExpenseID),
		ContributionID: ToNullString(d.ContributionID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
// with an empty line slice.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	var journalType *domain.JournalType
	if m.JournalType.Valid {
		jt := domain.JournalType(m.JournalType.String)
		journalType = &jt
	}
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		BuildingID:     FromNullString(m.BuildingID),
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		DocumentRef:    m.DocumentRef,
		JournalType:    journalType,
		ExpenseID:      FromNullString(m.ExpenseID),
		ContributionID: FromNullString(m.ContributionID),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain JournalEntryLine to a model JournalEntryLine
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntryLine converts a model JournalEntryLine to a domain JournalEntryLine
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries to domain form
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToDomainJournalEntryLineSlice converts a slice of model JournalEntryLines to domain form
func ToDomainJournalEntryLineSlice(ms []models.JournalEntryLine) []domain.JournalEntryLine {
	ds := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntryLine(m)
	}
	return ds
}

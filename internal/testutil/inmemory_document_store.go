package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/propfolio/propfolio/internal/domain/document"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/types"
)

// InMemoryDocumentStore implements document.Repository with the same
// conditional-write semantics as the postgres implementation: status
// transitions and draft writes succeed only when the stored document is
// still in the expected state.
type InMemoryDocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*document.Document
	sequences map[string]int64

	// FailNextCreate makes the next CreateWithLineItems call fail after
	// a number has already been allocated, simulating an insert failure
	// mid transaction.
	FailNextCreate bool
}

// NewInMemoryDocumentStore creates a new in-memory document store
func NewInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		documents: make(map[string]*document.Document),
		sequences: make(map[string]int64),
	}
}

func copyDocument(doc *document.Document) *document.Document {
	if doc == nil {
		return nil
	}
	cp := *doc
	cp.LineItems = make([]*document.LineItem, len(doc.LineItems))
	for i, item := range doc.LineItems {
		itemCopy := *item
		cp.LineItems[i] = &itemCopy
	}
	return &cp
}

func (s *InMemoryDocumentStore) CreateWithLineItems(ctx context.Context, doc *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNextCreate {
		s.FailNextCreate = false
		return ierr.NewError("simulated insert failure").Mark(ierr.ErrDatabase)
	}

	for _, existing := range s.documents {
		if existing.DocumentNumber == doc.DocumentNumber {
			return ierr.WithError(document.ErrNumberConflict).
				WithHintf("Document number %s is already taken", doc.DocumentNumber).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	s.documents[doc.ID] = copyDocument(doc)
	return nil
}

func (s *InMemoryDocumentStore) Get(ctx context.Context, id string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok || doc.Status == types.StatusDeleted {
		return nil, ierr.WithError(document.ErrDocumentNotFound).
			WithHint("Document not found").
			Mark(ierr.ErrNotFound)
	}
	return copyDocument(doc), nil
}

func (s *InMemoryDocumentStore) GetByNumber(ctx context.Context, number string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.documents {
		if doc.DocumentNumber == number && doc.Status != types.StatusDeleted {
			return copyDocument(doc), nil
		}
	}
	return nil, ierr.WithError(document.ErrDocumentNotFound).
		WithHint("Document not found").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryDocumentStore) UpdateDraft(ctx context.Context, doc *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.documents[doc.ID]
	if !ok || existing.Status == types.StatusDeleted {
		return ierr.WithError(document.ErrDocumentNotFound).
			WithHint("Document not found").
			Mark(ierr.ErrNotFound)
	}
	if existing.DocumentStatus != types.DocumentStatusDraft {
		return ierr.WithError(document.ErrDocumentNotDraft).
			WithHint("Only draft documents can be edited").
			Mark(ierr.ErrInvalidOperation)
	}

	s.documents[doc.ID] = copyDocument(doc)
	return nil
}

func (s *InMemoryDocumentStore) TransitionStatus(ctx context.Context, id string, from, to types.DocumentStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok || doc.Status == types.StatusDeleted {
		return ierr.WithError(document.ErrDocumentNotFound).
			WithHint("Document not found").
			Mark(ierr.ErrNotFound)
	}
	if doc.DocumentStatus != from {
		return ierr.WithError(document.ErrInvalidTransition).
			WithHintf("Document is no longer in %s status", from).
			Mark(ierr.ErrInvalidOperation)
	}

	doc.DocumentStatus = to
	switch to {
	case types.DocumentStatusSent:
		doc.SentAt = &at
	case types.DocumentStatusViewed:
		doc.ViewedAt = &at
	case types.DocumentStatusPaid:
		doc.PaidAt = &at
	}
	doc.UpdatedAt = at
	return nil
}

func (s *InMemoryDocumentStore) DeleteDraft(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok || doc.Status == types.StatusDeleted {
		return ierr.WithError(document.ErrDocumentNotFound).
			WithHint("Document not found").
			Mark(ierr.ErrNotFound)
	}
	if doc.DocumentStatus != types.DocumentStatusDraft {
		return ierr.WithError(document.ErrDocumentNotDraft).
			WithHint("Only draft documents can be deleted").
			Mark(ierr.ErrInvalidOperation)
	}

	delete(s.documents, id)
	return nil
}

func (s *InMemoryDocumentStore) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*document.Document
	for _, doc := range s.documents {
		if s.matchesFilter(doc, filter) {
			results = append(results, copyDocument(doc))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	if filter != nil {
		offset := filter.GetOffset()
		limit := filter.GetLimit()
		if offset >= len(results) {
			return nil, nil
		}
		results = results[offset:]
		if limit > 0 && limit < len(results) {
			results = results[:limit]
		}
	}
	return results, nil
}

func (s *InMemoryDocumentStore) Count(ctx context.Context, filter *types.DocumentFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, doc := range s.documents {
		if s.matchesFilter(doc, filter) {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryDocumentStore) matchesFilter(doc *document.Document, filter *types.DocumentFilter) bool {
	if doc.Status == types.StatusDeleted {
		return false
	}
	if filter == nil {
		return true
	}
	if filter.DocumentType != nil && doc.DocumentType != *filter.DocumentType {
		return false
	}
	if filter.DocumentStatus != nil && doc.DocumentStatus != *filter.DocumentStatus {
		return false
	}
	if filter.RecipientEmail != nil && doc.RecipientEmail != *filter.RecipientEmail {
		return false
	}
	if filter.Year != nil && doc.CreatedAt.Year() != *filter.Year {
		return false
	}
	return true
}

func (s *InMemoryDocumentStore) NextDocumentNumber(ctx context.Context, docType types.DocumentType, year int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%s:%d", docType, year)
	s.sequences[key]++

	prefix := "INV"
	if docType == types.DocumentTypeQuote {
		prefix = "QUO"
	}
	return document.FormatNumber(prefix, year, s.sequences[key], 3), nil
}

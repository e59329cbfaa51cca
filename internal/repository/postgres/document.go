package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/propfolio/propfolio/internal/cache"
	"github.com/propfolio/propfolio/internal/config"
	"github.com/propfolio/propfolio/internal/domain/document"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/postgres"
	"github.com/propfolio/propfolio/internal/types"
)

type documentRepository struct {
	db     postgres.IClient
	cfg    *config.Configuration
	cache  cache.Cache
	logger *logger.Logger
}

func NewDocumentRepository(db postgres.IClient, cfg *config.Configuration, c cache.Cache, logger *logger.Logger) document.Repository {
	return &documentRepository{db: db, cfg: cfg, cache: c, logger: logger}
}

const documentColumns = `
	id, document_type, document_number, document_status,
	recipient_name, recipient_email, due_date, sent_at, viewed_at, paid_at,
	subtotal, tax_rate, tax_amount, total, notes, owner_id,
	status, created_at, updated_at, created_by, updated_by`

func (r *documentRepository) CreateWithLineItems(ctx context.Context, doc *document.Document) error {
	q := r.db.GetQuerier(ctx)

	query := `
	INSERT INTO documents (` + documentColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
	)`

	_, err := q.ExecContext(ctx, query,
		doc.ID,
		doc.DocumentType,
		doc.DocumentNumber,
		doc.DocumentStatus,
		doc.RecipientName,
		doc.RecipientEmail,
		doc.DueDate,
		doc.SentAt,
		doc.ViewedAt,
		doc.PaidAt,
		doc.Subtotal,
		doc.TaxRate,
		doc.TaxAmount,
		doc.Total,
		doc.Notes,
		doc.OwnerID,
		doc.Status,
		doc.CreatedAt,
		doc.UpdatedAt,
		doc.CreatedBy,
		doc.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(document.ErrNumberConflict).
				WithHintf("Document number %s is already taken", doc.DocumentNumber).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).WithHint("failed to insert document").Mark(ierr.ErrDatabase)
	}

	if err := r.insertLineItems(ctx, doc.ID, doc.LineItems); err != nil {
		return err
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixDocument)
	return nil
}

func (r *documentRepository) insertLineItems(ctx context.Context, documentID string, items []*document.LineItem) error {
	q := r.db.GetQuerier(ctx)

	query := `
	INSERT INTO document_line_items (
		id, document_id, description, quantity, unit_price, amount,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
	)`

	for _, item := range items {
		_, err := q.ExecContext(ctx, query,
			item.ID,
			documentID,
			item.Description,
			item.Quantity,
			item.UnitPrice,
			item.Amount,
			item.Status,
			item.CreatedAt,
			item.UpdatedAt,
			item.CreatedBy,
			item.UpdatedBy,
		)
		if err != nil {
			return ierr.WithError(err).WithHint("failed to insert line item").Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	if cached := r.GetCache(ctx, id); cached != nil {
		return cached, nil
	}
	return r.getOne(ctx, "id = $1", id)
}

func (r *documentRepository) GetByNumber(ctx context.Context, number string) (*document.Document, error) {
	if cached := r.GetCache(ctx, number); cached != nil {
		return cached, nil
	}
	return r.getOne(ctx, "document_number = $1", number)
}

func (r *documentRepository) getOne(ctx context.Context, predicate string, arg interface{}) (*document.Document, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + documentColumns + ` FROM documents WHERE ` + predicate + ` AND status != $2`

	var doc document.Document
	if err := q.GetContext(ctx, &doc, query, arg, types.StatusDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(document.ErrDocumentNotFound).
				WithHint("Document not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("failed to get document").Mark(ierr.ErrDatabase)
	}

	items, err := r.getLineItems(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.LineItems = items

	r.SetCache(ctx, &doc)
	return &doc, nil
}

// caching
func (r *documentRepository) SetCache(ctx context.Context, doc *document.Document) {
	// Documents are addressed by id internally and by number on the
	// portal, so both keys point at the same entry
	idKey := cache.GenerateKey(cache.PrefixDocument, doc.ID)
	r.cache.Set(ctx, idKey, doc, cache.DefaultExpiration)

	numberKey := cache.GenerateKey(cache.PrefixDocument, doc.DocumentNumber)
	r.cache.Set(ctx, numberKey, doc, cache.DefaultExpiration)

	r.logger.Debugw("cache set", "id_key", idKey, "number_key", numberKey)
}

func (r *documentRepository) GetCache(ctx context.Context, key string) *document.Document {
	cacheKey := cache.GenerateKey(cache.PrefixDocument, key)
	if value, found := r.cache.Get(ctx, cacheKey); found {
		if doc, ok := value.(*document.Document); ok {
			r.logger.Debugw("cache hit", "key", cacheKey)
			return doc
		}
	}
	r.logger.Debugw("cache miss", "key", cacheKey)
	return nil
}

func (r *documentRepository) getLineItems(ctx context.Context, documentID string) ([]*document.LineItem, error) {
	q := r.db.GetQuerier(ctx)

	query := `
	SELECT id, document_id, description, quantity, unit_price, amount,
		status, created_at, updated_at, created_by, updated_by
	FROM document_line_items
	WHERE document_id = $1 AND status != $2
	ORDER BY created_at ASC, id ASC`

	var items []*document.LineItem
	if err := q.SelectContext(ctx, &items, query, documentID, types.StatusDeleted); err != nil {
		return nil, ierr.WithError(err).WithHint("failed to get line items").Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *documentRepository) UpdateDraft(ctx context.Context, doc *document.Document) error {
	q := r.db.GetQuerier(ctx)

	// Conditional on draft status so a concurrent send cannot race the edit
	query := `
	UPDATE documents SET
		recipient_name = $1, recipient_email = $2, due_date = $3,
		subtotal = $4, tax_rate = $5, tax_amount = $6, total = $7,
		notes = $8, updated_at = $9, updated_by = $10
	WHERE id = $11 AND document_status = $12 AND status != $13`

	res, err := q.ExecContext(ctx, query,
		doc.RecipientName,
		doc.RecipientEmail,
		doc.DueDate,
		doc.Subtotal,
		doc.TaxRate,
		doc.TaxAmount,
		doc.Total,
		doc.Notes,
		doc.UpdatedAt,
		doc.UpdatedBy,
		doc.ID,
		types.DocumentStatusDraft,
		types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to update document").Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.WithError(document.ErrDocumentNotDraft).
			WithHint("Only draft documents can be edited").
			Mark(ierr.ErrInvalidOperation)
	}

	// Full line item replace: delete-then-insert
	if _, err := q.ExecContext(ctx,
		`DELETE FROM document_line_items WHERE document_id = $1`, doc.ID); err != nil {
		return ierr.WithError(err).WithHint("failed to replace line items").Mark(ierr.ErrDatabase)
	}
	if err := r.insertLineItems(ctx, doc.ID, doc.LineItems); err != nil {
		return err
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixDocument)
	return nil
}

func (r *documentRepository) TransitionStatus(ctx context.Context, id string, from, to types.DocumentStatus, at time.Time) error {
	q := r.db.GetQuerier(ctx)

	stampColumn := ""
	switch to {
	case types.DocumentStatusSent:
		stampColumn = "sent_at"
	case types.DocumentStatusViewed:
		stampColumn = "viewed_at"
	case types.DocumentStatusPaid:
		stampColumn = "paid_at"
	default:
		return ierr.WithError(document.ErrInvalidTransition).
			WithHintf("No transition leads to status %s", to).
			Mark(ierr.ErrInvalidOperation)
	}

	// Compare-and-swap on the current status: of two concurrent identical
	// transitions exactly one can match the predicate
	query := `
	UPDATE documents SET
		document_status = $1, ` + stampColumn + ` = $2,
		updated_at = $3, updated_by = $4
	WHERE id = $5 AND document_status = $6 AND status != $7`

	res, err := q.ExecContext(ctx, query,
		to,
		at,
		at,
		types.GetUserID(ctx),
		id,
		from,
		types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to transition document").Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.WithError(document.ErrInvalidTransition).
			WithHintf("Document is no longer in %s status", from).
			Mark(ierr.ErrInvalidOperation)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixDocument)
	return nil
}

func (r *documentRepository) DeleteDraft(ctx context.Context, id string) error {
	q := r.db.GetQuerier(ctx)

	// Line items first, then the parent; the predicate keeps non-drafts safe
	_, err := q.ExecContext(ctx, `
	DELETE FROM document_line_items WHERE document_id IN (
		SELECT id FROM documents WHERE id = $1 AND document_status = $2
	)`, id, types.DocumentStatusDraft)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to delete line items").Mark(ierr.ErrDatabase)
	}

	res, err := q.ExecContext(ctx,
		`DELETE FROM documents WHERE id = $1 AND document_status = $2`,
		id, types.DocumentStatusDraft)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to delete document").Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.WithError(document.ErrDocumentNotDraft).
			WithHint("Only draft documents can be deleted").
			Mark(ierr.ErrInvalidOperation)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixDocument)
	return nil
}

func (r *documentRepository) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + documentColumns + ` FROM documents`
	where, args := buildDocumentPredicates(filter)
	query += where
	query += ` ORDER BY created_at DESC, id DESC`

	args = append(args, filter.GetLimit(), filter.GetOffset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var docs []*document.Document
	if err := q.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, ierr.WithError(err).WithHint("failed to list documents").Mark(ierr.ErrDatabase)
	}

	for _, doc := range docs {
		items, err := r.getLineItems(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		doc.LineItems = items
	}

	return docs, nil
}

func (r *documentRepository) Count(ctx context.Context, filter *types.DocumentFilter) (int, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT COUNT(*) FROM documents`
	where, args := buildDocumentPredicates(filter)
	query += where

	var count int
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).WithHint("failed to count documents").Mark(ierr.ErrDatabase)
	}
	return count, nil
}

// NextDocumentNumber allocates a number through an atomically incremented
// counter row keyed by (document_type, year). The upsert-and-return is a
// single statement, so concurrent creations can never observe the same
// value, regardless of how many server processes run.
func (r *documentRepository) NextDocumentNumber(ctx context.Context, docType types.DocumentType, year int) (string, error) {
	q := r.db.GetQuerier(ctx)

	query := `
	INSERT INTO document_sequences (document_type, year, last_value, created_at, updated_at)
	VALUES ($1, $2, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT (document_type, year) DO UPDATE
	SET last_value = document_sequences.last_value + 1,
		updated_at = CURRENT_TIMESTAMP
	RETURNING document_type, year, last_value, created_at, updated_at`

	var seq document.Sequence
	if err := q.GetContext(ctx, &seq, query, docType, year); err != nil {
		return "", ierr.WithError(err).
			WithHint("Document number generation failed").
			Mark(ierr.ErrDatabase)
	}

	prefix := r.prefixFor(docType)
	number := document.FormatNumber(prefix, year, seq.LastValue, r.cfg.Documents.NumberSuffixLength)

	r.logger.Infow("allocated document number",
		"document_type", seq.DocumentType,
		"year", seq.Year,
		"sequence", seq.LastValue,
		"number", number)

	return number, nil
}

func (r *documentRepository) prefixFor(docType types.DocumentType) string {
	if docType == types.DocumentTypeQuote {
		return r.cfg.Documents.QuotePrefix
	}
	return r.cfg.Documents.InvoicePrefix
}

package service

import (
	"context"
	"time"

	"github.com/propfolio/propfolio/internal/api/dto"
	"github.com/propfolio/propfolio/internal/config"
	"github.com/propfolio/propfolio/internal/domain/document"
	"github.com/propfolio/propfolio/internal/email"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/pdf"
	"github.com/propfolio/propfolio/internal/postgres"
	"github.com/propfolio/propfolio/internal/types"
)

// DocumentService owns the document lifecycle: creation with a
// server-assigned number, draft editing, the send/view/pay transitions
// and the derived read-time status.
type DocumentService interface {
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	GetDocumentByNumber(ctx context.Context, number string) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error)
	UpdateDocument(ctx context.Context, id string, req dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, id string) error
	GetDocumentRenderData(ctx context.Context, id string) (*pdf.DocumentRenderData, error)
	SendDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	MarkDocumentViewed(ctx context.Context, id string) (*dto.DocumentResponse, error)
	MarkDocumentPaid(ctx context.Context, id string) (*dto.DocumentResponse, error)
}

type documentService struct {
	db           postgres.IClient
	cfg          *config.Configuration
	logger       *logger.Logger
	documentRepo document.Repository
	email        *email.Email
}

func NewDocumentService(
	documentRepo document.Repository,
	emailSvc *email.Email,
	cfg *config.Configuration,
	logger *logger.Logger,
	db postgres.IClient,
) DocumentService {
	return &documentService{
		db:           db,
		cfg:          cfg,
		logger:       logger,
		documentRepo: documentRepo,
		email:        emailSvc,
	}
}

func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	totals, err := document.ComputeTotals(req.LineItemInputs(), req.TaxRate)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Line items failed validation").
			Mark(ierr.ErrValidation)
	}

	now := time.Now().UTC()

	doc := &document.Document{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT),
		DocumentType:   req.DocumentType,
		DocumentStatus: types.DocumentStatusDraft,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		DueDate:        req.DueDate,
		Subtotal:       totals.Subtotal,
		TaxRate:        totals.TaxRate,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		Notes:          req.Notes,
		OwnerID:        types.GetUserID(ctx),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if doc.DueDate == nil {
		due := now.AddDate(0, 0, s.defaultDueDays(req.DocumentType))
		doc.DueDate = &due
	}
	doc.LineItems = buildLineItems(ctx, doc.ID, totals.LineItems)

	// Number allocation and insert share one transaction so a failed
	// insert leaves no half-created document, only a gap in the sequence
	err = s.db.WithTx(ctx, func(tx context.Context) error {
		number, err := s.documentRepo.NextDocumentNumber(tx, doc.DocumentType, now.Year())
		if err != nil {
			return err
		}
		doc.DocumentNumber = number

		return s.documentRepo.CreateWithLineItems(tx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("document created",
		"document_id", doc.ID,
		"document_number", doc.DocumentNumber,
		"document_type", doc.DocumentType,
	)

	return dto.NewDocumentResponse(doc, now), nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewDocumentResponse(doc, time.Now().UTC()), nil
}

func (s *documentService) GetDocumentByNumber(ctx context.Context, number string) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return dto.NewDocumentResponse(doc, time.Now().UTC()), nil
}

func (s *documentService) ListDocuments(ctx context.Context, filter *types.DocumentFilter) (*dto.ListDocumentsResponse, error) {
	if filter == nil {
		filter = &types.DocumentFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	count, err := s.documentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, dto.NewDocumentResponse(doc, now))
	}

	resp := types.NewListResponse(items, count, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, id string, req dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !doc.IsDraft() {
		return nil, ierr.WithError(document.ErrDocumentNotDraft).
			WithHintf("Document %s has been sent and can no longer be edited", doc.DocumentNumber).
			WithReportableDetails(map[string]any{
				"document_status": doc.DocumentStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	totals, err := document.ComputeTotals(req.LineItemInputs(), req.TaxRate)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Line items failed validation").
			Mark(ierr.ErrValidation)
	}

	now := time.Now().UTC()

	doc.RecipientName = req.RecipientName
	doc.RecipientEmail = req.RecipientEmail
	doc.Notes = req.Notes
	if req.DueDate != nil {
		doc.DueDate = req.DueDate
	}
	doc.Subtotal = totals.Subtotal
	doc.TaxRate = totals.TaxRate
	doc.TaxAmount = totals.TaxAmount
	doc.Total = totals.Total
	doc.UpdatedAt = now
	doc.UpdatedBy = types.GetUserID(ctx)
	doc.LineItems = buildLineItems(ctx, doc.ID, totals.LineItems)

	err = s.db.WithTx(ctx, func(tx context.Context) error {
		return s.documentRepo.UpdateDraft(tx, doc)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewDocumentResponse(doc, now), nil
}

func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.documentRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if !doc.IsDraft() {
		return ierr.WithError(document.ErrDocumentNotDraft).
			WithHintf("Document %s has been sent and can no longer be deleted", doc.DocumentNumber).
			WithReportableDetails(map[string]any{
				"document_status": doc.DocumentStatus,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	return s.db.WithTx(ctx, func(tx context.Context) error {
		return s.documentRepo.DeleteDraft(tx, id)
	})
}

// GetDocumentRenderData returns the print snapshot of a document, with
// amounts pre-formatted and the display status derived as of now.
func (s *documentService) GetDocumentRenderData(ctx context.Context, id string) (*pdf.DocumentRenderData, error) {
	doc, err := s.documentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return pdf.BuildRenderData(doc, s.cfg, time.Now().UTC()), nil
}

func (s *documentService) SendDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.transition(ctx, doc, types.DocumentStatusSent, now); err != nil {
		return nil, err
	}

	// Delivery is best effort and must not block the response. The status
	// change is already committed; an email failure is logged and never
	// unwinds it. The detached context survives the request ending.
	go s.notifyRecipient(context.WithoutCancel(ctx), doc)

	return dto.NewDocumentResponse(doc, now), nil
}

func (s *documentService) MarkDocumentViewed(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	// Repeat views are no-ops; viewed_at keeps the first view's stamp.
	// Any other non-sent status is rejected by the transition guard.
	if doc.DocumentStatus == types.DocumentStatusViewed {
		return dto.NewDocumentResponse(doc, now), nil
	}

	if err := s.transition(ctx, doc, types.DocumentStatusViewed, now); err != nil {
		return nil, err
	}

	return dto.NewDocumentResponse(doc, now), nil
}

func (s *documentService) MarkDocumentPaid(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if doc.DocumentStatus == types.DocumentStatusPaid {
		return nil, ierr.WithError(document.ErrDocumentAlreadyPaid).
			WithHintf("Document %s is already paid", doc.DocumentNumber).
			Mark(ierr.ErrInvalidOperation)
	}

	now := time.Now().UTC()
	if err := s.transition(ctx, doc, types.DocumentStatusPaid, now); err != nil {
		return nil, err
	}

	return dto.NewDocumentResponse(doc, now), nil
}

// transition validates the move against the lifecycle rules, performs the
// conditional write and mirrors the result onto the in-memory document.
func (s *documentService) transition(ctx context.Context, doc *document.Document, to types.DocumentStatus, at time.Time) error {
	from := doc.DocumentStatus
	if !document.CanTransition(from, to) {
		return ierr.WithError(document.ErrInvalidTransition).
			WithHintf("Document cannot move from %s to %s", from, to).
			WithReportableDetails(map[string]any{
				"document_id":     doc.ID,
				"document_status": from,
				"target_status":   to,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	err := s.db.WithTx(ctx, func(tx context.Context) error {
		return s.documentRepo.TransitionStatus(tx, doc.ID, from, to, at)
	})
	if err != nil {
		return err
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

	s.logger.Infow("document status changed",
		"document_id", doc.ID,
		"document_number", doc.DocumentNumber,
		"from", from,
		"to", to,
	)
	return nil
}

func (s *documentService) notifyRecipient(ctx context.Context, doc *document.Document) {
	notification := email.DocumentNotification{
		DocumentNumber: doc.DocumentNumber,
		DocumentType:   doc.DocumentType.String(),
		RecipientName:  doc.RecipientName,
		RecipientEmail: doc.RecipientEmail,
		Total:          doc.Total.StringFixed(2),
		PortalURL:      s.cfg.Portal.BaseURL + "/v1/portal/documents/" + doc.DocumentNumber,
	}
	if doc.DueDate != nil {
		notification.DueDate = doc.DueDate.Format("2006-01-02")
	}

	if _, err := s.email.SendDocumentNotification(ctx, notification); err != nil {
		s.logger.Errorw("failed to send document notification",
			"error", err,
			"document_id", doc.ID,
			"document_number", doc.DocumentNumber,
		)
	}
}

func (s *documentService) defaultDueDays(docType types.DocumentType) int {
	if docType == types.DocumentTypeQuote {
		return s.cfg.Documents.DefaultQuoteValidDays
	}
	return s.cfg.Documents.DefaultDueDays
}

func buildLineItems(ctx context.Context, documentID string, computed []document.ComputedLineItem) []*document.LineItem {
	items := make([]*document.LineItem, 0, len(computed))
	for _, c := range computed {
		items = append(items, &document.LineItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DOCUMENT_LINE_ITEM),
			DocumentID:  documentID,
			Description: c.Description,
			Quantity:    c.Quantity,
			UnitPrice:   c.UnitPrice,
			Amount:      c.Amount,
			BaseModel:   types.GetDefaultBaseModel(ctx),
		})
	}
	return items
}

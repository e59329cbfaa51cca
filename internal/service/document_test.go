package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/propfolio/propfolio/internal/api/dto"
	"github.com/propfolio/propfolio/internal/testutil"
	"github.com/propfolio/propfolio/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceSuite struct {
	testutil.BaseServiceTestSuite
	service      DocumentService
	documentRepo *testutil.InMemoryDocumentStore
}

func TestDocumentService(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.documentRepo = s.GetStores().DocumentRepo.(*testutil.InMemoryDocumentStore)
	s.service = NewDocumentService(
		s.documentRepo,
		s.GetEmail(),
		s.GetConfig(),
		s.GetLogger(),
		s.GetDB(),
	)
}

func (s *DocumentServiceSuite) invoiceRequest() dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		DocumentType:   types.DocumentTypeInvoice,
		RecipientName:  "Marie Dubois",
		RecipientEmail: "marie@example.com",
		LineItems: []dto.CreateDocumentLineItemRequest{
			{Description: "Apartment deep clean", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("19.99")},
		},
	}
}

func (s *DocumentServiceSuite) TestCreateDocument() {
	rate := decimal.NewFromInt(20)
	req := s.invoiceRequest()
	req.TaxRate = &rate

	resp, err := s.service.CreateDocument(s.GetContext(), req)
	s.NoError(err)
	s.NotNil(resp)

	s.Equal(types.DocumentStatusDraft, resp.DocumentStatus)
	s.Equal(types.DocumentDisplayStatusDraft, resp.DisplayStatus)
	s.True(decimal.RequireFromString("39.98").Equal(resp.Subtotal))
	s.True(decimal.RequireFromString("8").Equal(resp.TaxAmount))
	s.True(decimal.RequireFromString("47.98").Equal(resp.Total))
	s.Len(resp.LineItems, 1)
	s.NotNil(resp.DueDate, "a default due date is applied")
}

func (s *DocumentServiceSuite) TestCreateDocumentAssignsSequentialNumbers() {
	year := time.Now().UTC().Year()

	first, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)
	second, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)

	s.Equal(documentNumber("INV", year, "001"), first.DocumentNumber)
	s.Equal(documentNumber("INV", year, "002"), second.DocumentNumber)
}

func (s *DocumentServiceSuite) TestCreateDocumentSequencesPerType() {
	year := time.Now().UTC().Year()

	inv, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)

	quoteReq := s.invoiceRequest()
	quoteReq.DocumentType = types.DocumentTypeQuote
	quote, err := s.service.CreateDocument(s.GetContext(), quoteReq)
	s.NoError(err)

	s.Equal(documentNumber("INV", year, "001"), inv.DocumentNumber)
	s.Equal(documentNumber("QUO", year, "001"), quote.DocumentNumber)
}

func (s *DocumentServiceSuite) TestNumberSequenceRestartsEachYear() {
	first, err := s.documentRepo.NextDocumentNumber(s.GetContext(), types.DocumentTypeInvoice, 2025)
	s.NoError(err)
	second, err := s.documentRepo.NextDocumentNumber(s.GetContext(), types.DocumentTypeInvoice, 2025)
	s.NoError(err)

	s.Equal("INV-2025-001", first)
	s.Equal("INV-2025-002", second)

	// A new year starts its own counter at 1 for the same type
	nextYear, err := s.documentRepo.NextDocumentNumber(s.GetContext(), types.DocumentTypeInvoice, 2026)
	s.NoError(err)
	s.Equal("INV-2026-001", nextYear)

	// The old year's counter is unaffected
	third, err := s.documentRepo.NextDocumentNumber(s.GetContext(), types.DocumentTypeInvoice, 2025)
	s.NoError(err)
	s.Equal("INV-2025-003", third)
}

func (s *DocumentServiceSuite) TestCreateDocumentFailureLeavesNoDocument() {
	s.documentRepo.FailNextCreate = true

	_, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.Error(err)

	resp, err := s.service.ListDocuments(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(0, resp.Pagination.Total, "a failed create leaves no document behind")

	// The sequence keeps a gap; the next create is 002
	year := time.Now().UTC().Year()
	next, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)
	s.Equal(documentNumber("INV", year, "002"), next.DocumentNumber)
}

func (s *DocumentServiceSuite) TestCreateDocumentRejectsInvalidLineItems() {
	req := s.invoiceRequest()
	req.LineItems[0].Quantity = decimal.Zero
	_, err := s.service.CreateDocument(s.GetContext(), req)
	s.Error(err)

	req = s.invoiceRequest()
	req.LineItems[0].UnitPrice = decimal.NewFromInt(-1)
	_, err = s.service.CreateDocument(s.GetContext(), req)
	s.Error(err)

	req = s.invoiceRequest()
	req.LineItems = nil
	_, err = s.service.CreateDocument(s.GetContext(), req)
	s.Error(err)
}

func (s *DocumentServiceSuite) TestUpdateDraftRecomputesTotals() {
	created, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)

	rate := decimal.NewFromInt(10)
	updated, err := s.service.UpdateDocument(s.GetContext(), created.ID, dto.UpdateDocumentRequest{
		RecipientName:  "Marie Dubois",
		RecipientEmail: "marie@example.com",
		TaxRate:        &rate,
		LineItems: []dto.CreateDocumentLineItemRequest{
			{Description: "Garden maintenance", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(40)},
		},
	})
	s.NoError(err)

	s.True(decimal.NewFromInt(120).Equal(updated.Subtotal))
	s.True(decimal.NewFromInt(12).Equal(updated.TaxAmount))
	s.True(decimal.NewFromInt(132).Equal(updated.Total))
	s.Len(updated.LineItems, 1)
	s.Equal("Garden maintenance", updated.LineItems[0].Description)
	s.Equal(created.DocumentNumber, updated.DocumentNumber, "the number never changes")
}

func (s *DocumentServiceSuite) TestUpdateRejectedAfterSend() {
	created, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)

	_, err = s.service.SendDocument(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.UpdateDocument(s.GetContext(), created.ID, dto.UpdateDocumentRequest{
		RecipientName:  "Someone Else",
		RecipientEmail: "else@example.com",
		LineItems: []dto.CreateDocumentLineItemRequest{
			{Description: "X", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	})
	s.Error(err, "sent documents are immutable")
}

func (s *DocumentServiceSuite) TestSendDocument() {
	created, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)

	sent, err := s.service.SendDocument(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusSent, sent.DocumentStatus)
	s.NotNil(sent.SentAt)

	// Sending twice is rejected
	_, err = s.service.SendDocument(s.GetContext(), created.ID)
	s.Error(err)
}

func (s *DocumentServiceSuite) TestMarkViewedIsIdempotent() {
	created, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)
	_, err = s.service.SendDocument(s.GetContext(), created.ID)
	s.NoError(err)

	first, err := s.service.MarkDocumentViewed(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusViewed, first.DocumentStatus)
	s.NotNil(first.ViewedAt)

	second, err := s.service.MarkDocumentViewed(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusViewed, second.DocumentStatus)
	s.Equal(first.ViewedAt.Unix(), second.ViewedAt.Unix(), "the first view timestamp is preserved")
}

func (s *DocumentServiceSuite) TestMarkViewedRejectedForDraft() {
	created, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)

	_, err = s.service.MarkDocumentViewed(s.GetContext(), created.ID)
	s.Error(err)
}

func (s *DocumentServiceSuite) TestMarkPaidFromSentAndViewed() {
	// Pay directly from sent
	first, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)
	_, err = s.service.SendDocument(s.GetContext(), first.ID)
	s.NoError(err)

	paid, err := s.service.MarkDocumentPaid(s.GetContext(), first.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusPaid, paid.DocumentStatus)
	s.NotNil(paid.PaidAt)

	// Pay after viewing
	second, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)
	_, err = s.service.SendDocument(s.GetContext(), second.ID)
	s.NoError(err)
	_, err = s.service.MarkDocumentViewed(s.GetContext(), second.ID)
	s.NoError(err)

	paid, err = s.service.MarkDocumentPaid(s.GetContext(), second.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusPaid, paid.DocumentStatus)
}

func (s *DocumentServiceSuite) TestMarkPaidOnOverdueDocument() {
	due := time.Now().UTC().AddDate(0, 0, -5)
	req := s.invoiceRequest()
	req.DueDate = &due

	created, err := s.service.CreateDocument(s.GetContext(), req)
	s.NoError(err)
	_, err = s.service.SendDocument(s.GetContext(), created.ID)
	s.NoError(err)

	// Overdue is a derived view; the underlying sent status still pays
	current, err := s.service.GetDocument(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.DocumentDisplayStatusOverdue, current.DisplayStatus)
	s.Equal(types.DocumentStatusSent, current.DocumentStatus)

	paid, err := s.service.MarkDocumentPaid(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.DocumentStatusPaid, paid.DocumentStatus)
	s.Equal(types.DocumentDisplayStatusPaid, paid.DisplayStatus)
}

func (s *DocumentServiceSuite) TestPaidIsTerminal() {
	created, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)
	_, err = s.service.SendDocument(s.GetContext(), created.ID)
	s.NoError(err)
	_, err = s.service.MarkDocumentPaid(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.MarkDocumentPaid(s.GetContext(), created.ID)
	s.Error(err, "paying twice is rejected")

	_, err = s.service.SendDocument(s.GetContext(), created.ID)
	s.Error(err)

	_, err = s.service.MarkDocumentViewed(s.GetContext(), created.ID)
	s.Error(err, "no transition leaves the paid state")

	err = s.service.DeleteDocument(s.GetContext(), created.ID)
	s.Error(err, "paid documents cannot be deleted")
}

func (s *DocumentServiceSuite) TestExpiredQuoteDisplayStatus() {
	due := time.Now().UTC().AddDate(0, 0, -1)
	req := s.invoiceRequest()
	req.DocumentType = types.DocumentTypeQuote
	req.DueDate = &due

	created, err := s.service.CreateDocument(s.GetContext(), req)
	s.NoError(err)
	_, err = s.service.SendDocument(s.GetContext(), created.ID)
	s.NoError(err)

	current, err := s.service.GetDocument(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.DocumentDisplayStatusExpired, current.DisplayStatus)
}

func (s *DocumentServiceSuite) TestDeleteDraft() {
	created, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)

	err = s.service.DeleteDocument(s.GetContext(), created.ID)
	s.NoError(err)

	_, err = s.service.GetDocument(s.GetContext(), created.ID)
	s.Error(err)
}

func (s *DocumentServiceSuite) TestDeleteRejectedAfterSend() {
	created, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)
	_, err = s.service.SendDocument(s.GetContext(), created.ID)
	s.NoError(err)

	err = s.service.DeleteDocument(s.GetContext(), created.ID)
	s.Error(err)
}

func (s *DocumentServiceSuite) TestGetDocumentByNumber() {
	created, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)

	found, err := s.service.GetDocumentByNumber(s.GetContext(), created.DocumentNumber)
	s.NoError(err)
	s.Equal(created.ID, found.ID)

	_, err = s.service.GetDocumentByNumber(s.GetContext(), "INV-2020-999")
	s.Error(err)
}

func (s *DocumentServiceSuite) TestListDocumentsFiltering() {
	_, err := s.service.CreateDocument(s.GetContext(), s.invoiceRequest())
	s.NoError(err)

	quoteReq := s.invoiceRequest()
	quoteReq.DocumentType = types.DocumentTypeQuote
	_, err = s.service.CreateDocument(s.GetContext(), quoteReq)
	s.NoError(err)

	all, err := s.service.ListDocuments(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(2, all.Pagination.Total)

	docType := types.DocumentTypeQuote
	quotes, err := s.service.ListDocuments(s.GetContext(), &types.DocumentFilter{
		QueryFilter:  types.NewDefaultQueryFilter(),
		DocumentType: &docType,
	})
	s.NoError(err)
	s.Equal(1, quotes.Pagination.Total)
	s.Len(quotes.Items, 1)
	s.Equal(types.DocumentTypeQuote, quotes.Items[0].DocumentType)
}

func (s *DocumentServiceSuite) TestGetDocumentRenderData() {
	rate := decimal.NewFromInt(20)
	req := s.invoiceRequest()
	req.TaxRate = &rate

	created, err := s.service.CreateDocument(s.GetContext(), req)
	s.NoError(err)

	data, err := s.service.GetDocumentRenderData(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.DocumentNumber, data.DocumentNumber)
	s.Equal("39.98", data.Subtotal)
	s.Equal("8.00", data.TaxAmount)
	s.Equal("47.98", data.Total)
	s.Equal("Propfolio", data.Issuer.Name)
	s.Len(data.LineItems, 1)
	s.Equal("19.99", data.LineItems[0].UnitPrice)
	s.Equal("39.98", data.LineItems[0].Amount)
}

func documentNumber(prefix string, year int, suffix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, year, suffix)
}

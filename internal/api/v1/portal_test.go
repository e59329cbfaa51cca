package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/propfolio/propfolio/internal/api/dto"
	"github.com/propfolio/propfolio/internal/config"
	"github.com/propfolio/propfolio/internal/email"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/rest/middleware"
	"github.com/propfolio/propfolio/internal/service"
	"github.com/propfolio/propfolio/internal/testutil"
	"github.com/propfolio/propfolio/internal/types"
	"github.com/propfolio/propfolio/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PortalHandlerSuite struct {
	suite.Suite
	router          *gin.Engine
	documentService service.DocumentService
}

func TestPortalHandler(t *testing.T) {
	suite.Run(t, new(PortalHandlerSuite))
}

func (s *PortalHandlerSuite) SetupTest() {
	validator.NewValidator()
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	require.NoError(s.T(), err)

	db := testutil.NewMockPostgresClient(log)
	documentRepo := testutil.NewInMemoryDocumentStore()
	listingRepo := testutil.NewInMemoryListingStore()
	clientRepo := testutil.NewInMemoryClientStore()
	emailSvc := email.NewEmail(email.NewClient(cfg), log)

	s.documentService = service.NewDocumentService(documentRepo, emailSvc, cfg, log, db)
	clientService := service.NewClientService(clientRepo, listingRepo, log, db)

	handler := NewPortalHandler(s.documentService, clientService, log)

	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())
	s.router.GET("/v1/portal/documents/:number", handler.ViewDocument)
}

func (s *PortalHandlerSuite) createInvoice() *dto.DocumentResponse {
	doc, err := s.documentService.CreateDocument(testutil.SetupContext(), dto.CreateDocumentRequest{
		DocumentType:   types.DocumentTypeInvoice,
		RecipientName:  "Marie Dubois",
		RecipientEmail: "marie@example.com",
		LineItems: []dto.CreateDocumentLineItemRequest{
			{Description: "Apartment deep clean", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("50.00")},
		},
	})
	s.NoError(err)
	return doc
}

func (s *PortalHandlerSuite) view(number string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/portal/documents/"+number, nil)
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *PortalHandlerSuite) TestViewRecordsFirstOpen() {
	doc := s.createInvoice()
	_, err := s.documentService.SendDocument(testutil.SetupContext(), doc.ID)
	s.NoError(err)

	rec := s.view(doc.DocumentNumber)
	s.Equal(http.StatusOK, rec.Code)

	var body dto.DocumentResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(types.DocumentStatusViewed, body.DocumentStatus)
	s.NotNil(body.ViewedAt)
}

func (s *PortalHandlerSuite) TestViewPaidDocumentRendersWithoutTransition() {
	doc := s.createInvoice()
	ctx := testutil.SetupContext()
	_, err := s.documentService.SendDocument(ctx, doc.ID)
	s.NoError(err)
	_, err = s.documentService.MarkDocumentPaid(ctx, doc.ID)
	s.NoError(err)

	rec := s.view(doc.DocumentNumber)
	s.Equal(http.StatusOK, rec.Code)

	var body dto.DocumentResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(types.DocumentStatusPaid, body.DocumentStatus)
	s.Nil(body.ViewedAt, "rendering a paid document records nothing")
}

func (s *PortalHandlerSuite) TestViewDraftDocumentIsRejected() {
	doc := s.createInvoice()

	rec := s.view(doc.DocumentNumber)
	s.Equal(http.StatusBadRequest, rec.Code)
}

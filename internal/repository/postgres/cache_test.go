package postgres

import (
	"context"
	"testing"

	"github.com/propfolio/propfolio/internal/cache"
	"github.com/propfolio/propfolio/internal/config"
	"github.com/propfolio/propfolio/internal/domain/client"
	"github.com/propfolio/propfolio/internal/domain/document"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/testutil"
	"github.com/propfolio/propfolio/internal/types"
	"github.com/stretchr/testify/require"
)

// The mock client's querier is nil, so any read that reaches SQL would
// panic. These tests prove the Get paths are served from the cache once
// an entry is set, and that prefix invalidation empties it again.

func newCachedDocumentRepo(t *testing.T) (*documentRepository, cache.Cache, context.Context) {
	t.Helper()

	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)

	c := cache.NewInMemoryCache()
	repo := NewDocumentRepository(
		testutil.NewMockPostgresClient(log),
		config.GetDefaultConfig(),
		c,
		log,
	).(*documentRepository)

	return repo, c, context.Background()
}

func TestDocumentGetServedFromCache(t *testing.T) {
	repo, c, ctx := newCachedDocumentRepo(t)

	doc := &document.Document{
		ID:             "doc_01",
		DocumentType:   types.DocumentTypeInvoice,
		DocumentNumber: "INV-2026-001",
		DocumentStatus: types.DocumentStatusDraft,
	}
	repo.SetCache(ctx, doc)

	byID, err := repo.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, doc.DocumentNumber, byID.DocumentNumber)

	byNumber, err := repo.GetByNumber(ctx, doc.DocumentNumber)
	require.NoError(t, err)
	require.Equal(t, doc.ID, byNumber.ID)

	c.DeleteByPrefix(ctx, cache.PrefixDocument)
	require.Nil(t, repo.GetCache(ctx, doc.ID))
	require.Nil(t, repo.GetCache(ctx, doc.DocumentNumber))
}

func TestClientGetServedFromCache(t *testing.T) {
	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)

	c := cache.NewInMemoryCache()
	repo := NewClientRepository(
		testutil.NewMockPostgresClient(log),
		c,
		log,
	).(*clientRepository)
	ctx := context.Background()

	cl := &client.Client{
		ID:          "client_01",
		Name:        "Marie Dubois",
		AccessToken: "tok01",
	}
	repo.SetCache(ctx, cl)

	byID, err := repo.Get(ctx, cl.ID)
	require.NoError(t, err)
	require.Equal(t, cl.AccessToken, byID.AccessToken)

	byToken, err := repo.GetByAccessToken(ctx, cl.AccessToken)
	require.NoError(t, err)
	require.Equal(t, cl.ID, byToken.ID)

	c.DeleteByPrefix(ctx, cache.PrefixClient)
	require.Nil(t, repo.GetCache(ctx, cl.ID))
}

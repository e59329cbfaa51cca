package postgres

import (
	"context"
	"database/sql"

	"github.com/propfolio/propfolio/internal/cache"
	"github.com/propfolio/propfolio/internal/domain/client"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/postgres"
	"github.com/propfolio/propfolio/internal/types"
)

type clientRepository struct {
	db     postgres.IClient
	cache  cache.Cache
	logger *logger.Logger
}

func NewClientRepository(db postgres.IClient, c cache.Cache, logger *logger.Logger) client.Repository {
	return &clientRepository{db: db, cache: c, logger: logger}
}

const clientColumns = `
	id, name, email, notes, access_token, owner_id,
	status, created_at, updated_at, created_by, updated_by`

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	q := r.db.GetQuerier(ctx)

	query := `
	INSERT INTO clients (` + clientColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
	)`

	_, err := q.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Notes,
		c.AccessToken,
		c.OwnerID,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
		c.CreatedBy,
		c.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A client with this access token already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).WithHint("failed to insert client").Mark(ierr.ErrDatabase)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixClient)
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	if cached := r.GetCache(ctx, id); cached != nil {
		return cached, nil
	}
	return r.getOne(ctx, "id = $1", id)
}

func (r *clientRepository) GetByAccessToken(ctx context.Context, token string) (*client.Client, error) {
	if cached := r.GetCache(ctx, token); cached != nil {
		return cached, nil
	}
	return r.getOne(ctx, "access_token = $1", token)
}

func (r *clientRepository) getOne(ctx context.Context, predicate string, arg interface{}) (*client.Client, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + clientColumns + ` FROM clients WHERE ` + predicate + ` AND status != $2`

	var c client.Client
	if err := q.GetContext(ctx, &c, query, arg, types.StatusDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(client.ErrClientNotFound).
				WithHint("Client not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("failed to get client").Mark(ierr.ErrDatabase)
	}

	listingIDs, err := r.getListingIDs(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.ListingIDs = listingIDs

	r.SetCache(ctx, &c)
	return &c, nil
}

// caching
func (r *clientRepository) SetCache(ctx context.Context, c *client.Client) {
	// Clients are addressed by id in the back office and by access
	// token on the portal, so both keys point at the same entry
	idKey := cache.GenerateKey(cache.PrefixClient, c.ID)
	r.cache.Set(ctx, idKey, c, cache.DefaultExpiration)

	tokenKey := cache.GenerateKey(cache.PrefixClient, c.AccessToken)
	r.cache.Set(ctx, tokenKey, c, cache.DefaultExpiration)

	r.logger.Debugw("cache set", "id_key", idKey, "token_key", tokenKey)
}

func (r *clientRepository) GetCache(ctx context.Context, key string) *client.Client {
	cacheKey := cache.GenerateKey(cache.PrefixClient, key)
	if value, found := r.cache.Get(ctx, cacheKey); found {
		if c, ok := value.(*client.Client); ok {
			r.logger.Debugw("cache hit", "key", cacheKey)
			return c
		}
	}
	r.logger.Debugw("cache miss", "key", cacheKey)
	return nil
}

func (r *clientRepository) getListingIDs(ctx context.Context, clientID string) ([]string, error) {
	q := r.db.GetQuerier(ctx)

	var ids []string
	err := q.SelectContext(ctx, &ids,
		`SELECT listing_id FROM client_listings WHERE client_id = $1 ORDER BY created_at ASC`,
		clientID)
	if err != nil {
		return nil, ierr.WithError(err).WithHint("failed to get portfolio listings").Mark(ierr.ErrDatabase)
	}
	return ids, nil
}

func (r *clientRepository) Update(ctx context.Context, c *client.Client) error {
	q := r.db.GetQuerier(ctx)

	query := `
	UPDATE clients SET
		name = $1, email = $2, notes = $3, updated_at = $4, updated_by = $5
	WHERE id = $6 AND status != $7`

	res, err := q.ExecContext(ctx, query,
		c.Name,
		c.Email,
		c.Notes,
		c.UpdatedAt,
		c.UpdatedBy,
		c.ID,
		types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to update client").Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.WithError(client.ErrClientNotFound).
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixClient)
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	q := r.db.GetQuerier(ctx)

	res, err := q.ExecContext(ctx,
		`UPDATE clients SET status = $1, updated_by = $2 WHERE id = $3 AND status != $1`,
		types.StatusDeleted, types.GetUserID(ctx), id)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to delete client").Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.WithError(client.ErrClientNotFound).
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixClient)
	return nil
}

func (r *clientRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*client.Client, error) {
	q := r.db.GetQuerier(ctx)

	limit := types.NewDefaultQueryFilter().GetLimit()
	offset := 0
	if filter != nil {
		limit = filter.GetLimit()
		offset = filter.GetOffset()
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE status != $1
	ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	var clients []*client.Client
	if err := q.SelectContext(ctx, &clients, query, types.StatusDeleted, limit, offset); err != nil {
		return nil, ierr.WithError(err).WithHint("failed to list clients").Mark(ierr.ErrDatabase)
	}

	for _, c := range clients {
		ids, err := r.getListingIDs(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.ListingIDs = ids
	}

	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	q := r.db.GetQuerier(ctx)

	var count int
	if err := q.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM clients WHERE status != $1`, types.StatusDeleted); err != nil {
		return 0, ierr.WithError(err).WithHint("failed to count clients").Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *clientRepository) AssignListing(ctx context.Context, clientID, listingID string) error {
	q := r.db.GetQuerier(ctx)

	query := `
	INSERT INTO client_listings (client_id, listing_id, created_at, created_by)
	VALUES ($1, $2, CURRENT_TIMESTAMP, $3)
	ON CONFLICT (client_id, listing_id) DO NOTHING`

	res, err := q.ExecContext(ctx, query, clientID, listingID, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).WithHint("failed to assign listing").Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.WithError(client.ErrListingAlreadyAssigned).
			WithHint("Listing is already part of this portfolio").
			Mark(ierr.ErrAlreadyExists)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixClient)
	return nil
}

func (r *clientRepository) UnassignListing(ctx context.Context, clientID, listingID string) error {
	q := r.db.GetQuerier(ctx)

	res, err := q.ExecContext(ctx,
		`DELETE FROM client_listings WHERE client_id = $1 AND listing_id = $2`,
		clientID, listingID)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to unassign listing").Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.WithError(client.ErrListingNotAssigned).
			WithHint("Listing is not part of this portfolio").
			Mark(ierr.ErrNotFound)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixClient)
	return nil
}

func (r *clientRepository) CountAssignments(ctx context.Context, listingID string) (int, error) {
	q := r.db.GetQuerier(ctx)

	var count int
	if err := q.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM client_listings WHERE listing_id = $1`, listingID); err != nil {
		return 0, ierr.WithError(err).WithHint("failed to count assignments").Mark(ierr.ErrDatabase)
	}
	return count, nil
}

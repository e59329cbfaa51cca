package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/propfolio/propfolio/internal/cache"
	"github.com/propfolio/propfolio/internal/domain/listing"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/postgres"
	"github.com/propfolio/propfolio/internal/types"
)

type listingRepository struct {
	db     postgres.IClient
	cache  cache.Cache
	logger *logger.Logger
}

func NewListingRepository(db postgres.IClient, c cache.Cache, logger *logger.Logger) listing.Repository {
	return &listingRepository{db: db, cache: c, logger: logger}
}

const listingColumns = `
	id, title, address, city, price, bedrooms, bathrooms, description,
	listing_status, owner_id, status, created_at, updated_at, created_by, updated_by`

func (r *listingRepository) Create(ctx context.Context, l *listing.Listing) error {
	q := r.db.GetQuerier(ctx)

	query := `
	INSERT INTO listings (` + listingColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
	)`

	_, err := q.ExecContext(ctx, query,
		l.ID,
		l.Title,
		l.Address,
		l.City,
		l.Price,
		l.Bedrooms,
		l.Bathrooms,
		l.Description,
		l.ListingStatus,
		l.OwnerID,
		l.Status,
		l.CreatedAt,
		l.UpdatedAt,
		l.CreatedBy,
		l.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to insert listing").Mark(ierr.ErrDatabase)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixListing)
	return nil
}

func (r *listingRepository) Get(ctx context.Context, id string) (*listing.Listing, error) {
	if cached := r.GetCache(ctx, id); cached != nil {
		return cached, nil
	}

	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1 AND status != $2`

	var l listing.Listing
	if err := q.GetContext(ctx, &l, query, id, types.StatusDeleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(listing.ErrListingNotFound).
				WithHint("Listing not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).WithHint("failed to get listing").Mark(ierr.ErrDatabase)
	}

	r.SetCache(ctx, &l)
	return &l, nil
}

// caching
func (r *listingRepository) SetCache(ctx context.Context, l *listing.Listing) {
	cacheKey := cache.GenerateKey(cache.PrefixListing, l.ID)
	r.cache.Set(ctx, cacheKey, l, cache.DefaultExpiration)
	r.logger.Debugw("cache set", "key", cacheKey)
}

func (r *listingRepository) GetCache(ctx context.Context, key string) *listing.Listing {
	cacheKey := cache.GenerateKey(cache.PrefixListing, key)
	if value, found := r.cache.Get(ctx, cacheKey); found {
		if l, ok := value.(*listing.Listing); ok {
			r.logger.Debugw("cache hit", "key", cacheKey)
			return l
		}
	}
	r.logger.Debugw("cache miss", "key", cacheKey)
	return nil
}

func (r *listingRepository) Update(ctx context.Context, l *listing.Listing) error {
	q := r.db.GetQuerier(ctx)

	query := `
	UPDATE listings SET
		title = $1, address = $2, city = $3, price = $4, bedrooms = $5,
		bathrooms = $6, description = $7, listing_status = $8,
		updated_at = $9, updated_by = $10
	WHERE id = $11 AND status != $12`

	res, err := q.ExecContext(ctx, query,
		l.Title,
		l.Address,
		l.City,
		l.Price,
		l.Bedrooms,
		l.Bathrooms,
		l.Description,
		l.ListingStatus,
		l.UpdatedAt,
		l.UpdatedBy,
		l.ID,
		types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to update listing").Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.WithError(listing.ErrListingNotFound).
			WithHint("Listing not found").
			Mark(ierr.ErrNotFound)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixListing)
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	q := r.db.GetQuerier(ctx)

	res, err := q.ExecContext(ctx,
		`UPDATE listings SET status = $1, updated_by = $2 WHERE id = $3 AND status != $1`,
		types.StatusDeleted, types.GetUserID(ctx), id)
	if err != nil {
		return ierr.WithError(err).WithHint("failed to delete listing").Mark(ierr.ErrDatabase)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ierr.WithError(listing.ErrListingNotFound).
			WithHint("Listing not found").
			Mark(ierr.ErrNotFound)
	}

	r.cache.DeleteByPrefix(ctx, cache.PrefixListing)
	return nil
}

func (r *listingRepository) List(ctx context.Context, filter *types.ListingFilter) ([]*listing.Listing, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + listingColumns + ` FROM listings`
	where, args := buildListingPredicates(filter)
	query += where
	query += ` ORDER BY created_at DESC, id DESC`

	args = append(args, filter.GetLimit(), filter.GetOffset())
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	var listings []*listing.Listing
	if err := q.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, ierr.WithError(err).WithHint("failed to list listings").Mark(ierr.ErrDatabase)
	}
	return listings, nil
}

func (r *listingRepository) Count(ctx context.Context, filter *types.ListingFilter) (int, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT COUNT(*) FROM listings`
	where, args := buildListingPredicates(filter)
	query += where

	var count int
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).WithHint("failed to count listings").Mark(ierr.ErrDatabase)
	}
	return count, nil
}

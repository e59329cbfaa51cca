package types

import (
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/samber/lo"
)

// ListingStatus represents the curation state of a real-estate listing
type ListingStatus string

const (
	// ListingStatusActive indicates the listing is available for portfolios
	ListingStatusActive ListingStatus = "ACTIVE"
	// ListingStatusArchived indicates the listing is retired from curation
	ListingStatusArchived ListingStatus = "ARCHIVED"
)

func (s ListingStatus) String() string {
	return string(s)
}

func (s ListingStatus) Validate() error {
	allowed := []ListingStatus{
		ListingStatusActive,
		ListingStatusArchived,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid listing status").
			WithHint("Please provide a valid listing status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ListingFilter represents the filter options for listing queries
type ListingFilter struct {
	*QueryFilter

	ListingStatus *ListingStatus `json:"listing_status,omitempty" form:"listing_status"`
	City          *string        `json:"city,omitempty" form:"city"`
}

func (f *ListingFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.ListingStatus != nil {
		if err := f.ListingStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *ListingFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

func (f *ListingFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

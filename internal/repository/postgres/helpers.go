package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/propfolio/propfolio/internal/types"
)

// uniqueViolation is the postgres error code for unique constraint violations
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// buildDocumentPredicates renders the WHERE clause for document list and
// count queries with numbered placeholders.
func buildDocumentPredicates(filter *types.DocumentFilter) (string, []interface{}) {
	predicates := []string{"status != $1"}
	args := []interface{}{types.StatusDeleted}

	if filter == nil {
		return " WHERE " + strings.Join(predicates, " AND "), args
	}

	if filter.DocumentType != nil {
		args = append(args, *filter.DocumentType)
		predicates = append(predicates, fmt.Sprintf("document_type = $%d", len(args)))
	}
	if filter.DocumentStatus != nil {
		args = append(args, *filter.DocumentStatus)
		predicates = append(predicates, fmt.Sprintf("document_status = $%d", len(args)))
	}
	if filter.RecipientEmail != nil {
		args = append(args, *filter.RecipientEmail)
		predicates = append(predicates, fmt.Sprintf("recipient_email = $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		predicates = append(predicates, fmt.Sprintf("EXTRACT(YEAR FROM created_at) = $%d", len(args)))
	}

	return " WHERE " + strings.Join(predicates, " AND "), args
}

// buildListingPredicates renders the WHERE clause for listing queries
func buildListingPredicates(filter *types.ListingFilter) (string, []interface{}) {
	predicates := []string{"status != $1"}
	args := []interface{}{types.StatusDeleted}

	if filter == nil {
		return " WHERE " + strings.Join(predicates, " AND "), args
	}

	if filter.ListingStatus != nil {
		args = append(args, *filter.ListingStatus)
		predicates = append(predicates, fmt.Sprintf("listing_status = $%d", len(args)))
	}
	if filter.City != nil {
		args = append(args, *filter.City)
		predicates = append(predicates, fmt.Sprintf("city = $%d", len(args)))
	}

	return " WHERE " + strings.Join(predicates, " AND "), args
}

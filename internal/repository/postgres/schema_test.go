package postgres

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// The repositories write raw SQL against migrations/schema.sql. This keeps
// the column lists in the statements and the CREATE TABLE definitions from
// drifting apart, which postgres would only surface at runtime.
func TestSchemaCoversRepositoryColumns(t *testing.T) {
	columnsByTable := loadSchemaColumns(t, "../../../migrations/schema.sql")

	cases := map[string][]string{
		"documents": {
			"id", "document_type", "document_number", "document_status",
			"recipient_name", "recipient_email", "due_date", "sent_at",
			"viewed_at", "paid_at", "subtotal", "tax_rate", "tax_amount",
			"total", "notes", "owner_id",
			"status", "created_at", "updated_at", "created_by", "updated_by",
		},
		"document_line_items": {
			"id", "document_id", "description", "quantity", "unit_price",
			"amount", "status", "created_at", "updated_at", "created_by",
			"updated_by",
		},
		"document_sequences": {
			"document_type", "year", "last_value", "created_at", "updated_at",
		},
		"listings": {
			"id", "title", "address", "city", "price", "bedrooms",
			"bathrooms", "description", "listing_status", "owner_id",
			"status", "created_at", "updated_at", "created_by", "updated_by",
		},
		"clients": {
			"id", "name", "email", "notes", "access_token", "owner_id",
			"status", "created_at", "updated_at", "created_by", "updated_by",
		},
		"client_listings": {
			"client_id", "listing_id", "created_at", "created_by",
		},
	}

	for table, wanted := range cases {
		defined, ok := columnsByTable[table]
		require.True(t, ok, "table %s is not defined in schema.sql", table)
		for _, column := range wanted {
			require.Contains(t, defined, column,
				"table %s is missing column %s referenced by a repository statement", table, column)
		}
	}
}

// loadSchemaColumns extracts table -> column set from the schema file. It
// reads line by line: a CREATE TABLE opens a block and every leading
// identifier inside it is a column, except constraint clauses.
func loadSchemaColumns(t *testing.T, path string) map[string]map[string]bool {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	tables := make(map[string]map[string]bool)
	var current map[string]bool

	for _, line := range strings.Split(string(raw), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "CREATE TABLE") {
			fields := strings.Fields(trimmed)
			name := fields[len(fields)-2]
			current = make(map[string]bool)
			tables[name] = current
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(trimmed, ")") {
			current = nil
			continue
		}

		token := strings.TrimSpace(strings.Split(trimmed, " ")[0])
		switch token {
		case "", "PRIMARY", "CONSTRAINT", "UNIQUE", "FOREIGN", "--":
			continue
		}
		current[token] = true
	}

	return tables
}

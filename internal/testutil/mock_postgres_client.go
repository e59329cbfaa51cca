package testutil

import (
	"context"

	"github.com/propfolio/propfolio/internal/logger"
	"github.com/propfolio/propfolio/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient satisfies postgres.IClient for service tests backed
// by in-memory stores. WithTx runs the function directly; the stores
// provide their own consistency.
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// GetQuerier returns nil; in-memory stores never issue SQL
func (c *MockPostgresClient) GetQuerier(ctx context.Context) postgres.Querier {
	return nil
}

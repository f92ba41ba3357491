package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/store"
)

// DataSource abstracts the data layer for MCP tools. Both *store.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	QuerySets(ctx context.Context, f store.SetFilter, cursor string, limit int) (*store.Page, error)
	MuscleGroups(ctx context.Context, userID int) ([]string, error)
	Exercises(ctx context.Context, userID int, muscleGroup string) ([]string, error)
	GetDataStats(ctx context.Context, userID int) (*store.DataStats, error)
}

// Compile-time check: *store.DB satisfies DataSource.
var _ DataSource = (*store.DB)(nil)

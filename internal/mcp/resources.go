package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	now := time.Now()

	page, err := h.ds.QuerySets(ctx, store.SetFilter{
		UserID:   uid,
		DateFrom: now.AddDate(0, 0, -14).Format("2006-01-02"),
		DateTo:   now.Format("2006-01-02"),
	}, "", 0)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(workout.Aggregate(page.Sets))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) muscleCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	groups, err := h.ds.MuscleGroups(ctx, uid)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string][]string, len(groups))
	for _, g := range groups {
		exercises, err := h.ds.Exercises(ctx, uid, g)
		if err != nil {
			h.log.Warn("muscle_catalog: exercise query failed", "muscle", g, "error", err)
			continue
		}
		catalog[g] = exercises
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// ABOUTME: MCP resource implementations for the training log.
// ABOUTME: Provides gainsbook://workouts/recent, gainsbook://years and gainsbook://variables.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/gainsbook/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriRecentWorkouts = "gainsbook://workouts/recent"
	uriYears          = "gainsbook://years"
	uriVariables      = "gainsbook://variables"
)

func (s *Server) registerResources() {
	// gainsbook://workouts/recent - workouts of the current month
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriRecentWorkouts,
		Name:        "Recent Workouts",
		Description: "Workouts logged in the current month",
		MIMEType:    "application/json",
	}, s.handleRecentWorkoutsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriYears,
		Name:        "Log Years",
		Description: "Years available in the workout log",
		MIMEType:    "application/json",
	}, s.handleYearsResource)

	// gainsbook://variables - every tracked lift with all of its statistics
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriVariables,
		Name:        "Tracked Lifts",
		Description: "Tracked lifts with their recorded rep-max values",
		MIMEType:    "application/json",
	}, s.handleVariablesResource)
}

// Resource handlers

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleRecentWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.today()
	workouts, err := s.repo.ListWorkoutsByYearMonth(ctx, today.Year, today.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	if workouts == nil {
		workouts = []models.WorkoutWithExercises{}
	}

	exercises := 0
	for _, w := range workouts {
		exercises += len(w.Exercises)
	}

	result := map[string]interface{}{
		"generated_at": s.deps.Clock.Now().Format(time.RFC3339),
		"year":         today.Year,
		"month":        today.Month,
		"workouts":     workouts,
		"counts": map[string]int{
			"workouts":  len(workouts),
			"exercises": exercises,
		},
	}
	return jsonResource(uriRecentWorkouts, result)
}

func (s *Server) handleYearsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	years, err := s.repo.ListYears(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list years: %w", err)
	}
	out := make([]int, 0, len(years))
	for _, y := range years {
		out = append(out, y.Year)
	}
	return jsonResource(uriYears, map[string]interface{}{"years": out})
}

func (s *Server) handleVariablesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	vars, err := s.repo.ListVariables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}

	lifts := make([]map[string]interface{}, 0, len(vars))
	for _, v := range vars {
		vs, err := s.repo.GetVariableWithStatistics(ctx, v.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get statistics for %s: %w", v.Name, err)
		}
		best := make(map[string]float64)
		for _, st := range vs.Statistics {
			if cur, ok := best[string(st.Type)]; !ok || st.Value > cur {
				best[string(st.Type)] = st.Value
			}
		}
		lifts = append(lifts, map[string]interface{}{
			"id":         v.ID,
			"name":       v.Name,
			"statistics": vs.Statistics,
			"best":       best,
		})
	}
	return jsonResource(uriVariables, map[string]interface{}{"variables": lifts})
}

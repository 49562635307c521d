// ABOUTME: MCP tool implementations for the training log.
// ABOUTME: Provides workout, year, statistic and profile operations over the repository.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/gainsbook/internal/models"
	"github.com/harperreed/gainsbook/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Log a workout with one free-text entry per exercise",
	}, instrument(s, "add_workout", s.handleAddWorkout))

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "edit_workout",
		Description: "Replace a workout's exercises and optionally its date, keeping its ID",
	}, instrument(s, "edit_workout", s.handleEditWorkout))

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List the workouts of one month, defaulting to the current month",
	}, instrument(s, "list_workouts", s.handleListWorkouts))

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with its exercises",
	}, instrument(s, "get_workout", s.handleGetWorkout))

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workout",
		Description: "Delete a workout and its exercises",
	}, instrument(s, "delete_workout", s.handleDeleteWorkout))

	// years
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_years",
		Description: "List the years available in the log filter",
	}, instrument(s, "list_years", s.handleListYears))

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_year",
		Description: "Add a year to the log filter",
	}, instrument(s, "add_year", s.handleAddYear))

	// statistics
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_variables",
		Description: "List the tracked lifts",
	}, instrument(s, "list_variables", s.handleListVariables))

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_variable",
		Description: "Start tracking a new lift",
	}, instrument(s, "add_variable", s.handleAddVariable))

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_statistic",
		Description: "Record a rep-max value (10rm, 5rm or 1rm) for a tracked lift",
	}, instrument(s, "add_statistic", s.handleAddStatistic))

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_statistics",
		Description: "List a lift's rep-max values for one month with the best value",
	}, instrument(s, "list_statistics", s.handleListStatistics))

	// profile
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_profile",
		Description: "Get the local user profile",
	}, instrument(s, "get_profile", s.handleGetProfile))

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_profile",
		Description: "Update the local user profile",
	}, instrument(s, "set_profile", s.handleSetProfile))
}

// Tool input/output types

type addWorkoutInput struct {
	Exercises []string `json:"exercises" jsonschema:"One free-text entry per exercise, e.g. Squat 5x5 100kg"`
	Date      string   `json:"date,omitempty" jsonschema:"Workout date as YYYY-MM-DD, defaults to today"`
}

type editWorkoutInput struct {
	ID        int64    `json:"id" jsonschema:"Workout ID"`
	Exercises []string `json:"exercises" jsonschema:"The complete new exercise list in order"`
	Date      string   `json:"date,omitempty" jsonschema:"New date as YYYY-MM-DD, defaults to the current date of the workout"`
}

type workoutOutput struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date"`
	Exercises []string `json:"exercises"`
	Message   string   `json:"message"`
}

type listWorkoutsInput struct {
	Year  int `json:"year,omitempty" jsonschema:"Year to list, defaults to the current year"`
	Month int `json:"month,omitempty" jsonschema:"Month 1-12 to list, defaults to the current month"`
}

type listWorkoutsOutput struct {
	Year     int                           `json:"year"`
	Month    int                           `json:"month"`
	Workouts []models.WorkoutWithExercises `json:"workouts"`
	Message  string                        `json:"message,omitempty"`
}

type workoutIDInput struct {
	ID int64 `json:"id" jsonschema:"Workout ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type emptyInput struct{}

type yearsOutput struct {
	Years []int `json:"years"`
}

type addYearInput struct {
	Year int `json:"year" jsonschema:"Four digit year"`
}

type variablesOutput struct {
	Variables []models.Variable `json:"variables"`
}

type addVariableInput struct {
	Name string `json:"name" jsonschema:"Lift name, e.g. Front squat"`
}

type addStatisticInput struct {
	Variable string  `json:"variable" jsonschema:"Name of a tracked lift"`
	Type     string  `json:"type" jsonschema:"Rep-max type: 10rm, 5rm or 1rm"`
	Value    float64 `json:"value" jsonschema:"Weight lifted"`
	Date     string  `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
}

type statisticOutput struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type listStatisticsInput struct {
	Variable string `json:"variable" jsonschema:"Name of a tracked lift"`
	Type     string `json:"type,omitempty" jsonschema:"Rep-max type: 10rm, 5rm or 1rm, defaults to 10rm"`
	Year     int    `json:"year,omitempty" jsonschema:"Year, defaults to the current year"`
	Month    int    `json:"month,omitempty" jsonschema:"Month 1-12, defaults to the current month"`
}

type listStatisticsOutput struct {
	Variable   string             `json:"variable"`
	Type       string             `json:"type"`
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	Statistics []models.Statistic `json:"statistics"`
	Best       *float64           `json:"best,omitempty"`
}

type profileOutput struct {
	Profile *models.Profile `json:"profile,omitempty"`
	Message string          `json:"message,omitempty"`
}

type setProfileInput struct {
	Username    string `json:"username,omitempty" jsonschema:"Display name"`
	Description string `json:"description,omitempty" jsonschema:"Short bio"`
	PictureURI  string `json:"picture_uri,omitempty" jsonschema:"Profile picture URI, kept when empty"`
}

// Tool handlers

func (s *Server) parseDate(value string, fallback models.WorkoutDate) (models.WorkoutDate, error) {
	if value == "" {
		return fallback, nil
	}
	return models.ParseWorkoutDate(value)
}

func cleanExercises(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, e := range in {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("at least one exercise is required")
	}
	return out, nil
}

func (s *Server) filter(year, month int) (int, int, error) {
	today := s.today()
	if year == 0 {
		year = today.Year
	}
	if month == 0 {
		month = today.Month
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month %d out of range", month)
	}
	return year, month, nil
}

func (s *Server) getWorkout(ctx context.Context, id int64) (*models.WorkoutWithExercises, error) {
	rows, err := s.repo.GetWorkoutWithExercises(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get workout: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workout not found: %d", id)
	}
	return &rows[0], nil
}

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	exercises, err := cleanExercises(input.Exercises)
	if err != nil {
		return nil, workoutOutput{}, err
	}
	date, err := s.parseDate(input.Date, s.today())
	if err != nil {
		return nil, workoutOutput{}, err
	}

	id, err := s.repo.SaveWorkout(ctx, date, exercises)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to save workout: %w", err)
	}
	if err := s.repo.InsertYear(ctx, date.Year); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to add year: %w", err)
	}

	return nil, workoutOutput{
		ID:        id,
		Date:      date.String(),
		Exercises: exercises,
		Message:   fmt.Sprintf("Logged workout %d on %s with %d exercises", id, date, len(exercises)),
	}, nil
}

func (s *Server) handleEditWorkout(ctx context.Context, req *mcp.CallToolRequest, input editWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	exercises, err := cleanExercises(input.Exercises)
	if err != nil {
		return nil, workoutOutput{}, err
	}

	unlock := s.deps.Locks.Lock(input.ID)
	defer unlock()

	existing, err := s.getWorkout(ctx, input.ID)
	if err != nil {
		return nil, workoutOutput{}, err
	}
	date, err := s.parseDate(input.Date, existing.Workout.Date())
	if err != nil {
		return nil, workoutOutput{}, err
	}

	if err := s.repo.ReplaceWorkout(ctx, input.ID, date, exercises); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to replace workout: %w", err)
	}
	if err := s.repo.InsertYear(ctx, date.Year); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to add year: %w", err)
	}

	return nil, workoutOutput{
		ID:        input.ID,
		Date:      date.String(),
		Exercises: exercises,
		Message:   fmt.Sprintf("Updated workout %d", input.ID),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, listWorkoutsOutput, error) {
	year, month, err := s.filter(input.Year, input.Month)
	if err != nil {
		return nil, listWorkoutsOutput{}, err
	}

	workouts, err := s.repo.ListWorkoutsByYearMonth(ctx, year, month)
	if err != nil {
		return nil, listWorkoutsOutput{}, fmt.Errorf("failed to list workouts: %w", err)
	}

	out := listWorkoutsOutput{Year: year, Month: month, Workouts: workouts}
	if len(workouts) == 0 {
		out.Message = "No workouts found."
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, workoutOutput, error) {
	w, err := s.getWorkout(ctx, input.ID)
	if err != nil {
		return nil, workoutOutput{}, err
	}
	return nil, workoutOutput{
		ID:        w.Workout.ID,
		Date:      w.Workout.Date().String(),
		Exercises: w.Descriptions(),
	}, nil
}

func (s *Server) handleDeleteWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	unlock := s.deps.Locks.Lock(input.ID)
	defer unlock()

	if _, err := s.getWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.repo.RemoveWorkout(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workout: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted workout: %d", input.ID),
	}, nil
}

func (s *Server) handleListYears(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, yearsOutput, error) {
	years, err := s.repo.ListYears(ctx)
	if err != nil {
		return nil, yearsOutput{}, fmt.Errorf("failed to list years: %w", err)
	}
	out := yearsOutput{Years: make([]int, 0, len(years))}
	for _, y := range years {
		out.Years = append(out.Years, y.Year)
	}
	return nil, out, nil
}

func (s *Server) handleAddYear(ctx context.Context, req *mcp.CallToolRequest, input addYearInput) (*mcp.CallToolResult, simpleOutput, error) {
	if input.Year < 1 || input.Year > 9999 {
		return nil, simpleOutput{}, fmt.Errorf("year %d out of range", input.Year)
	}
	if err := s.repo.InsertYear(ctx, input.Year); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to add year: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Added year %d", input.Year)}, nil
}

func (s *Server) handleListVariables(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, variablesOutput, error) {
	vars, err := s.repo.ListVariables(ctx)
	if err != nil {
		return nil, variablesOutput{}, fmt.Errorf("failed to list variables: %w", err)
	}
	if vars == nil {
		vars = []models.Variable{}
	}
	return nil, variablesOutput{Variables: vars}, nil
}

func (s *Server) handleAddVariable(ctx context.Context, req *mcp.CallToolRequest, input addVariableInput) (*mcp.CallToolResult, simpleOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, simpleOutput{}, errors.New("variable name is required")
	}
	if _, err := s.repo.GetVariableIDByName(ctx, name); err == nil {
		return nil, simpleOutput{}, fmt.Errorf("variable already exists: %s", name)
	}
	id, err := s.repo.InsertVariable(ctx, &models.Variable{Name: name})
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to add variable: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Tracking %s (ID: %d)", name, id)}, nil
}

func (s *Server) variableID(ctx context.Context, name string) (int64, error) {
	id, err := s.repo.GetVariableIDByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("unknown variable: %s", name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to find variable: %w", err)
	}
	return id, nil
}

func (s *Server) handleAddStatistic(ctx context.Context, req *mcp.CallToolRequest, input addStatisticInput) (*mcp.CallToolResult, statisticOutput, error) {
	if !models.IsValidRepMaxType(input.Type) {
		return nil, statisticOutput{}, fmt.Errorf("invalid type %q (use 10rm, 5rm or 1rm)", input.Type)
	}
	date, err := s.parseDate(input.Date, s.today())
	if err != nil {
		return nil, statisticOutput{}, err
	}
	varID, err := s.variableID(ctx, input.Variable)
	if err != nil {
		return nil, statisticOutput{}, err
	}

	st := models.NewStatistic(varID, models.RepMaxType(input.Type), input.Value).WithDate(date)
	id, err := s.repo.InsertStatistic(ctx, st)
	if err != nil {
		return nil, statisticOutput{}, fmt.Errorf("failed to add statistic: %w", err)
	}

	return nil, statisticOutput{
		ID:      id,
		Message: fmt.Sprintf("Recorded %s %s: %g on %s", input.Variable, input.Type, input.Value, date),
	}, nil
}

func (s *Server) handleListStatistics(ctx context.Context, req *mcp.CallToolRequest, input listStatisticsInput) (*mcp.CallToolResult, listStatisticsOutput, error) {
	t := input.Type
	if t == "" {
		t = string(models.AllRepMaxTypes[0])
	}
	if !models.IsValidRepMaxType(t) {
		return nil, listStatisticsOutput{}, fmt.Errorf("invalid type %q (use 10rm, 5rm or 1rm)", t)
	}
	year, month, err := s.filter(input.Year, input.Month)
	if err != nil {
		return nil, listStatisticsOutput{}, err
	}
	varID, err := s.variableID(ctx, input.Variable)
	if err != nil {
		return nil, listStatisticsOutput{}, err
	}

	stats, err := s.repo.ListStatistics(ctx, varID, models.RepMaxType(t), month, year)
	if err != nil {
		return nil, listStatisticsOutput{}, fmt.Errorf("failed to list statistics: %w", err)
	}
	if stats == nil {
		stats = []models.Statistic{}
	}

	out := listStatisticsOutput{
		Variable:   input.Variable,
		Type:       t,
		Year:       year,
		Month:      month,
		Statistics: stats,
	}
	if best, ok := models.BestValue(stats); ok {
		out.Best = &best
	}
	return nil, out, nil
}

func (s *Server) handleGetProfile(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, profileOutput, error) {
	p, err := s.repo.GetProfile(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, profileOutput{Message: "No profile set."}, nil
	}
	if err != nil {
		return nil, profileOutput{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return nil, profileOutput{Profile: p}, nil
}

func (s *Server) handleSetProfile(ctx context.Context, req *mcp.CallToolRequest, input setProfileInput) (*mcp.CallToolResult, profileOutput, error) {
	p, err := s.repo.GetProfile(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		p = models.NewProfile("", "")
	} else if err != nil {
		return nil, profileOutput{}, fmt.Errorf("failed to get profile: %w", err)
	}

	if input.Username != "" {
		p.Username = input.Username
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if input.PictureURI != "" {
		p.WithPicture(input.PictureURI)
	}

	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, profileOutput{}, fmt.Errorf("failed to save profile: %w", err)
	}
	return nil, profileOutput{Profile: p, Message: "Profile updated."}, nil
}

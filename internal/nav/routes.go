// ABOUTME: Screen route identifiers and path parsing for navigation.
// ABOUTME: Workout screens take an integer workout ID segment; a missing ID parses as -1.
package nav

import (
	"fmt"
	"strconv"
	"strings"
)

// Route names a screen.
type Route string

const (
	LogScreen         Route = "log_screen"
	StatsScreen       Route = "stats_screen"
	TimerScreen       Route = "timer_screen"
	ProfileScreen     Route = "profile_screen"
	ViewWorkoutScreen Route = "view_workout_screen"
	EditWorkoutScreen Route = "edit_workout_screen"
	NewWorkoutScreen  Route = "new_workout_screen"
	NewStatScreen     Route = "new_statistic_screen"
)

// StartRoute is the screen shown on launch.
const StartRoute = LogScreen

// NoWorkoutID is the workout ID of a path that omits it.
const NoWorkoutID int64 = -1

var routes = map[Route]bool{
	LogScreen:         false,
	StatsScreen:       false,
	TimerScreen:       false,
	ProfileScreen:     false,
	ViewWorkoutScreen: true,
	EditWorkoutScreen: true,
	NewWorkoutScreen:  false,
	NewStatScreen:     false,
}

// TakesWorkoutID reports whether r has a workoutID argument.
func (r Route) TakesWorkoutID() bool {
	return routes[r]
}

// Pattern returns the route with its argument placeholder.
func (r Route) Pattern() string {
	if r.TakesWorkoutID() {
		return string(r) + "/{workoutID}"
	}
	return string(r)
}

// WithArgs appends one /arg segment per argument.
func (r Route) WithArgs(args ...int64) string {
	var sb strings.Builder
	sb.WriteString(string(r))
	for _, arg := range args {
		fmt.Fprintf(&sb, "/%d", arg)
	}
	return sb.String()
}

// Destination is a parsed path.
type Destination struct {
	Route     Route
	WorkoutID int64
}

// Parse resolves a path such as "view_workout_screen/7".
func Parse(path string) (Destination, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	r := Route(parts[0])
	takesID, ok := routes[r]
	if !ok {
		return Destination{}, fmt.Errorf("unknown route %q", parts[0])
	}

	dest := Destination{Route: r, WorkoutID: NoWorkoutID}
	args := parts[1:]
	switch {
	case len(args) == 0:
		return dest, nil
	case !takesID:
		return Destination{}, fmt.Errorf("route %s takes no arguments", r)
	case len(args) > 1:
		return Destination{}, fmt.Errorf("route %s takes one argument, got %d", r, len(args))
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return Destination{}, fmt.Errorf("workoutID %q is not an integer", args[0])
	}
	dest.WorkoutID = id
	return dest, nil
}

// BottomNavItem is one entry of the bottom navigation bar.
type BottomNavItem struct {
	Title string
	Route Route
}

// BottomNavItems lists the top-level screens in bar order.
var BottomNavItems = []BottomNavItem{
	{Title: "LOG", Route: LogScreen},
	{Title: "GRAPH", Route: StatsScreen},
	{Title: "TIMER", Route: TimerScreen},
	{Title: "PROFILE", Route: ProfileScreen},
}

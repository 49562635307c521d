// ABOUTME: Repository implementation over a generic key-value store.
// ABOUTME: Rows are JSON values under prefixed keys; cascades and ID sequences are handled manually.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/harperreed/gainsbook/internal/kvstore"
	"github.com/harperreed/gainsbook/internal/models"
)

// Key prefixes for each table.
const (
	WorkoutPrefix   = "workout:"
	ExercisePrefix  = "exercise:"
	YearPrefix      = "year:"
	VariablePrefix  = "variable:"
	StatisticPrefix = "statistic:"
	LiftPrefix      = "lift:"
	ProfilePrefix   = "profile:"
	seqPrefix       = "seq:"
)

// KVStore implements Repository on top of a kvstore.Store.
type KVStore struct {
	store kvstore.Store
}

var _ Repository = (*KVStore)(nil)

// NewKVStore wraps a key-value store.
func NewKVStore(store kvstore.Store) *KVStore {
	return &KVStore{store: store}
}

// Close closes the underlying store.
func (k *KVStore) Close() error {
	return k.store.Close()
}

// reader is satisfied by both kvstore.Store and kvstore.Txn.
type reader interface {
	Get(key string) ([]byte, error)
	Keys(prefix string) ([]string, error)
}

func rowKey(prefix string, id int64) string {
	return fmt.Sprintf("%s%010d", prefix, id)
}

func yearKey(year int) string {
	return fmt.Sprintf("%s%04d", YearPrefix, year)
}

// assignID returns id when set, otherwise the next value of the table's sequence.
// The sequence is kept at or above every explicit ID.
func assignID(txn kvstore.Txn, prefix string, id int64) (int64, error) {
	seqKey := seqPrefix + prefix
	var current int64
	raw, err := txn.Get(seqKey)
	switch {
	case errors.Is(err, kvstore.ErrKeyNotFound):
	case err != nil:
		return 0, fmt.Errorf("read sequence: %w", err)
	default:
		current, err = strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse sequence %s: %w", seqKey, err)
		}
	}

	if id == 0 {
		id = current + 1
	}
	if id > current {
		if err := txn.Set(seqKey, []byte(strconv.FormatInt(id, 10))); err != nil {
			return 0, fmt.Errorf("write sequence: %w", err)
		}
	}
	return id, nil
}

func putJSON(txn kvstore.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set(key, data)
}

func getJSON[T any](r reader, key string) (*T, error) {
	data, err := r.Get(key)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return &out, nil
}

// listJSON decodes every value under prefix in key order. Undecodable values are skipped.
func listJSON[T any](r reader, prefix string) ([]T, error) {
	keys, err := r.Keys(prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	var out []T
	for _, key := range keys {
		item, err := getJSON[T](r, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				continue
			}
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

func (k *KVStore) update(ctx context.Context, fn func(kvstore.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return k.store.Update(fn)
}

func putWorkout(txn kvstore.Txn, w *models.Workout) (int64, error) {
	id, err := assignID(txn, WorkoutPrefix, w.ID)
	if err != nil {
		return 0, err
	}
	w.ID = id
	if err := putJSON(txn, rowKey(WorkoutPrefix, id), w); err != nil {
		return 0, fmt.Errorf("insert workout: %w", err)
	}
	return id, nil
}

func putExercise(txn kvstore.Txn, e *models.Exercise) (int64, error) {
	id, err := assignID(txn, ExercisePrefix, e.ID)
	if err != nil {
		return 0, err
	}
	e.ID = id
	if err := putJSON(txn, rowKey(ExercisePrefix, id), e); err != nil {
		return 0, fmt.Errorf("insert exercise: %w", err)
	}
	return id, nil
}

func deleteExercises(txn kvstore.Txn, workoutID int64) error {
	exercises, err := listJSON[models.Exercise](txn, ExercisePrefix)
	if err != nil {
		return fmt.Errorf("list exercises: %w", err)
	}
	for _, e := range exercises {
		if e.WorkoutID != workoutID {
			continue
		}
		if err := txn.Delete(rowKey(ExercisePrefix, e.ID)); err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}
	}
	return nil
}

// InsertWorkout inserts or replaces a workout and returns its ID.
func (k *KVStore) InsertWorkout(ctx context.Context, w *models.Workout) (int64, error) {
	var id int64
	err := k.update(ctx, func(txn kvstore.Txn) error {
		var err error
		id, err = putWorkout(txn, w)
		return err
	})
	return id, err
}

// InsertExercise inserts or replaces an exercise and returns its ID.
func (k *KVStore) InsertExercise(ctx context.Context, e *models.Exercise) (int64, error) {
	var id int64
	err := k.update(ctx, func(txn kvstore.Txn) error {
		var err error
		id, err = putExercise(txn, e)
		return err
	})
	return id, err
}

// GetWorkoutWithExercises returns zero or one workout joined with its exercises.
func (k *KVStore) GetWorkoutWithExercises(ctx context.Context, workoutID int64) ([]models.WorkoutWithExercises, error) {
	w, err := getJSON[models.Workout](k.store, rowKey(WorkoutPrefix, workoutID))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workout: %w", err)
	}
	return k.attachExercises([]models.Workout{*w})
}

// ListWorkoutsByYearMonth returns the workouts dated in the given month, oldest first.
func (k *KVStore) ListWorkoutsByYearMonth(ctx context.Context, year, month int) ([]models.WorkoutWithExercises, error) {
	all, err := listJSON[models.Workout](k.store, WorkoutPrefix)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	var matched []models.Workout
	for _, w := range all {
		if w.Year == year && w.Month == month {
			matched = append(matched, w)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Day < matched[j].Day
	})
	return k.attachExercises(matched)
}

// ListAllWorkouts returns every workout with its exercises.
func (k *KVStore) ListAllWorkouts(ctx context.Context) ([]models.WorkoutWithExercises, error) {
	all, err := listJSON[models.Workout](k.store, WorkoutPrefix)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date().String() < all[j].Date().String()
	})
	return k.attachExercises(all)
}

func (k *KVStore) attachExercises(workouts []models.Workout) ([]models.WorkoutWithExercises, error) {
	if len(workouts) == 0 {
		return nil, nil
	}
	exercises, err := listJSON[models.Exercise](k.store, ExercisePrefix)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	byWorkout := make(map[int64][]models.Exercise)
	for _, e := range exercises {
		byWorkout[e.WorkoutID] = append(byWorkout[e.WorkoutID], e)
	}

	out := make([]models.WorkoutWithExercises, 0, len(workouts))
	for _, w := range workouts {
		ex := byWorkout[w.ID]
		if ex == nil {
			ex = []models.Exercise{}
		}
		out = append(out, models.WorkoutWithExercises{Workout: w, Exercises: ex})
	}
	return out, nil
}

// DeleteWorkout deletes the workout row only.
func (k *KVStore) DeleteWorkout(ctx context.Context, workoutID int64) error {
	return k.update(ctx, func(txn kvstore.Txn) error {
		return txn.Delete(rowKey(WorkoutPrefix, workoutID))
	})
}

// DeleteExercisesByWorkoutID deletes all exercises of a workout.
func (k *KVStore) DeleteExercisesByWorkoutID(ctx context.Context, workoutID int64) error {
	return k.update(ctx, func(txn kvstore.Txn) error {
		return deleteExercises(txn, workoutID)
	})
}

// SaveWorkout inserts a new workout and its exercises in submission order.
func (k *KVStore) SaveWorkout(ctx context.Context, date models.WorkoutDate, descriptions []string) (int64, error) {
	var id int64
	err := k.update(ctx, func(txn kvstore.Txn) error {
		var err error
		id, err = putWorkout(txn, models.NewWorkout(date))
		if err != nil {
			return err
		}
		for _, desc := range descriptions {
			if _, err := putExercise(txn, models.NewExercise(id, desc, date)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ReplaceWorkout rewrites a workout under the same ID with new exercises.
func (k *KVStore) ReplaceWorkout(ctx context.Context, workoutID int64, date models.WorkoutDate, descriptions []string) error {
	return k.update(ctx, func(txn kvstore.Txn) error {
		if err := deleteExercises(txn, workoutID); err != nil {
			return err
		}
		if _, err := putWorkout(txn, models.NewWorkout(date).WithID(workoutID)); err != nil {
			return err
		}
		for _, desc := range descriptions {
			if _, err := putExercise(txn, models.NewExercise(workoutID, desc, date)); err != nil {
				return err
			}
		}
		return nil
	})
}

// RemoveWorkout deletes a workout and its exercises.
func (k *KVStore) RemoveWorkout(ctx context.Context, workoutID int64) error {
	return k.update(ctx, func(txn kvstore.Txn) error {
		if err := deleteExercises(txn, workoutID); err != nil {
			return err
		}
		return txn.Delete(rowKey(WorkoutPrefix, workoutID))
	})
}

// InsertYear records a year. Inserting an existing year is a no-op.
func (k *KVStore) InsertYear(ctx context.Context, year int) error {
	return k.update(ctx, func(txn kvstore.Txn) error {
		return putJSON(txn, yearKey(year), models.Year{Year: year})
	})
}

// ListYears returns all recorded years in ascending order.
func (k *KVStore) ListYears(ctx context.Context) ([]models.Year, error) {
	years, err := listJSON[models.Year](k.store, YearPrefix)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })
	return years, nil
}

// InsertVariable inserts or replaces a variable and returns its ID.
func (k *KVStore) InsertVariable(ctx context.Context, v *models.Variable) (int64, error) {
	var id int64
	err := k.update(ctx, func(txn kvstore.Txn) error {
		var err error
		if id, err = assignID(txn, VariablePrefix, v.ID); err != nil {
			return err
		}
		v.ID = id
		return putJSON(txn, rowKey(VariablePrefix, id), v)
	})
	return id, err
}

// ListVariables returns all variables in ID order.
func (k *KVStore) ListVariables(ctx context.Context) ([]models.Variable, error) {
	vars, err := listJSON[models.Variable](k.store, VariablePrefix)
	if err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	return vars, nil
}

// GetVariableIDByName returns the lowest ID among variables with the given name.
func (k *KVStore) GetVariableIDByName(ctx context.Context, name string) (int64, error) {
	vars, err := k.ListVariables(ctx)
	if err != nil {
		return 0, err
	}
	for _, v := range vars {
		if v.Name == name {
			return v.ID, nil
		}
	}
	return 0, fmt.Errorf("variable %q: %w", name, ErrNotFound)
}

// DeleteVariable deletes a variable and its statistics.
func (k *KVStore) DeleteVariable(ctx context.Context, id int64) error {
	return k.update(ctx, func(txn kvstore.Txn) error {
		stats, err := listJSON[models.Statistic](txn, StatisticPrefix)
		if err != nil {
			return fmt.Errorf("list statistics: %w", err)
		}
		for _, s := range stats {
			if s.VariableID != id {
				continue
			}
			if err := txn.Delete(rowKey(StatisticPrefix, s.ID)); err != nil {
				return fmt.Errorf("delete statistic: %w", err)
			}
		}
		return txn.Delete(rowKey(VariablePrefix, id))
	})
}

// InsertStatistic inserts or replaces a statistic and returns its ID.
func (k *KVStore) InsertStatistic(ctx context.Context, s *models.Statistic) (int64, error) {
	var id int64
	err := k.update(ctx, func(txn kvstore.Txn) error {
		var err error
		if id, err = assignID(txn, StatisticPrefix, s.ID); err != nil {
			return err
		}
		s.ID = id
		return putJSON(txn, rowKey(StatisticPrefix, id), s)
	})
	return id, err
}

// ListStatistics returns the statistics matching all four filters, ordered by day.
func (k *KVStore) ListStatistics(ctx context.Context, variableID int64, t models.RepMaxType, month, year int) ([]models.Statistic, error) {
	all, err := listJSON[models.Statistic](k.store, StatisticPrefix)
	if err != nil {
		return nil, fmt.Errorf("list statistics: %w", err)
	}
	var out []models.Statistic
	for _, s := range all {
		if s.VariableID == variableID && s.Type == t && s.Month == month && s.Year == year {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// GetVariableWithStatistics returns a variable joined with all of its statistics.
func (k *KVStore) GetVariableWithStatistics(ctx context.Context, variableID int64) (*models.VariableWithStatistics, error) {
	v, err := getJSON[models.Variable](k.store, rowKey(VariablePrefix, variableID))
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("variable %d: %w", variableID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get variable: %w", err)
	}
	all, err := listJSON[models.Statistic](k.store, StatisticPrefix)
	if err != nil {
		return nil, fmt.Errorf("list statistics: %w", err)
	}
	result := &models.VariableWithStatistics{Variable: *v}
	for _, s := range all {
		if s.VariableID == variableID {
			result.Statistics = append(result.Statistics, s)
		}
	}
	sort.SliceStable(result.Statistics, func(i, j int) bool {
		return result.Statistics[i].Date().String() < result.Statistics[j].Date().String()
	})
	return result, nil
}

// DeleteStatistic deletes a statistic by ID.
func (k *KVStore) DeleteStatistic(ctx context.Context, id int64) error {
	return k.update(ctx, func(txn kvstore.Txn) error {
		return txn.Delete(rowKey(StatisticPrefix, id))
	})
}

// InsertLift inserts or replaces a legacy lift row.
func (k *KVStore) InsertLift(ctx context.Context, l *models.Lift) (int64, error) {
	var id int64
	err := k.update(ctx, func(txn kvstore.Txn) error {
		var err error
		if id, err = assignID(txn, LiftPrefix, l.ID); err != nil {
			return err
		}
		l.ID = id
		return putJSON(txn, rowKey(LiftPrefix, id), l)
	})
	return id, err
}

// ListLifts returns legacy lift rows matching all four filters.
func (k *KVStore) ListLifts(ctx context.Context, lift string, t models.RepMaxType, year, month int) ([]models.Lift, error) {
	all, err := listJSON[models.Lift](k.store, LiftPrefix)
	if err != nil {
		return nil, fmt.Errorf("list lifts: %w", err)
	}
	var out []models.Lift
	for _, l := range all {
		if l.Lift == lift && l.Type == t && l.Year == year && l.Month == month {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// SaveProfile inserts or replaces the profile.
func (k *KVStore) SaveProfile(ctx context.Context, p *models.Profile) error {
	if p.UserID == 0 {
		p.UserID = models.DefaultUserID
	}
	return k.update(ctx, func(txn kvstore.Txn) error {
		return putJSON(txn, rowKey(ProfilePrefix, p.UserID), p)
	})
}

// GetProfile returns the default user's profile.
func (k *KVStore) GetProfile(ctx context.Context) (*models.Profile, error) {
	p, err := getJSON[models.Profile](k.store, rowKey(ProfilePrefix, models.DefaultUserID))
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("profile: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// GetAllData retrieves all data for export.
func (k *KVStore) GetAllData(ctx context.Context) (*ExportData, error) {
	data := newExportData()
	var err error

	if data.Workouts, err = k.ListAllWorkouts(ctx); err != nil {
		return nil, err
	}
	if data.Years, err = k.ListYears(ctx); err != nil {
		return nil, err
	}
	if data.Variables, err = k.ListVariables(ctx); err != nil {
		return nil, err
	}
	if data.Statistics, err = listJSON[models.Statistic](k.store, StatisticPrefix); err != nil {
		return nil, fmt.Errorf("list statistics: %w", err)
	}
	if data.Lifts, err = listJSON[models.Lift](k.store, LiftPrefix); err != nil {
		return nil, fmt.Errorf("list lifts: %w", err)
	}
	if data.Profile, err = optionalProfile(ctx, k); err != nil {
		return nil, err
	}
	return data, nil
}

// ImportData imports data from an export, keeping the exported IDs.
func (k *KVStore) ImportData(ctx context.Context, data *ExportData) error {
	return importData(ctx, k, data)
}

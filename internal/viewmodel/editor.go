// ABOUTME: In-memory exercise list editing shared by the new and edit workout view-models.
// ABOUTME: Edits are applied synchronously so consecutive calls never lose an update.
package viewmodel

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/gainsbook/internal/models"
)

type exerciseEditor struct {
	mu sync.Mutex

	Exercises *State[[]models.ExerciseWithIndex]
	Date      *State[models.WorkoutDate]
}

func newExerciseEditor(date models.WorkoutDate) exerciseEditor {
	return exerciseEditor{
		Exercises: NewState[[]models.ExerciseWithIndex](nil),
		Date:      NewState(date),
	}
}

// AddExercise appends text after the highest index and returns the new entry.
func (e *exerciseEditor) AddExercise(text string) (models.ExerciseWithIndex, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ExerciseWithIndex{}, ErrEmptyDescription
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	list := models.AppendExercise(e.Exercises.Value(), text)
	e.Exercises.Set(list)
	return list[len(list)-1], nil
}

// EditExercise changes the description of the entry with the given key.
func (e *exerciseEditor) EditExercise(key uuid.UUID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyDescription
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	list, ok := models.ReplaceExerciseByKey(e.Exercises.Value(), key, text)
	if !ok {
		return fmt.Errorf("%w: %s", ErrExerciseNotFound, key)
	}
	e.Exercises.Set(list)
	return nil
}

// DeleteExercise removes the entry with the given key.
func (e *exerciseEditor) DeleteExercise(key uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	list, ok := models.RemoveExerciseByKey(e.Exercises.Value(), key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrExerciseNotFound, key)
	}
	e.Exercises.Set(list)
	return nil
}

// SetExercises replaces the whole list.
func (e *exerciseEditor) SetExercises(list []models.ExerciseWithIndex) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Exercises.Set(append([]models.ExerciseWithIndex(nil), list...))
}

// SetDate changes the workout date.
func (e *exerciseEditor) SetDate(d models.WorkoutDate) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidDate, d)
	}
	e.Date.Set(d)
	return nil
}

func (e *exerciseEditor) snapshot() (models.WorkoutDate, []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Date.Value(), models.Descriptions(e.Exercises.Value())
}

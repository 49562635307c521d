// ABOUTME: In-memory editing of the exercise list while a workout is composed.
// ABOUTME: Pure helpers that append, replace and remove entries and keep them ordered by index.
package models

import (
	"sort"

	"github.com/google/uuid"
)

// ExerciseWithIndex is a not-yet-persisted exercise tagged with its display position.
// Key identifies the entry for the lifetime of the edit session.
type ExerciseWithIndex struct {
	Key         uuid.UUID `json:"key"`
	Description string    `json:"description"`
	Index       int       `json:"index"`
}

// NewExerciseWithIndex creates an entry with a fresh key.
func NewExerciseWithIndex(description string, index int) ExerciseWithIndex {
	return ExerciseWithIndex{
		Key:         uuid.New(),
		Description: description,
		Index:       index,
	}
}

func (e ExerciseWithIndex) matches(description string, index int) bool {
	return e.Description == description && e.Index == index
}

// NextIndex returns one more than the highest index, or 1 for an empty list.
func NextIndex(list []ExerciseWithIndex) int {
	highest := 0
	for _, e := range list {
		if e.Index > highest {
			highest = e.Index
		}
	}
	return highest + 1
}

// AppendExercise adds text as a new entry after the highest index. The result is not re-sorted.
func AppendExercise(list []ExerciseWithIndex, text string) []ExerciseWithIndex {
	out := clone(list, 1)
	return append(out, NewExerciseWithIndex(text, NextIndex(list)))
}

// ReplaceExercise removes the first entry equal to (oldDescription, index), appends
// (newText, index) and sorts by index. If several entries are equal only the first is replaced.
func ReplaceExercise(list []ExerciseWithIndex, oldDescription string, index int, newText string) []ExerciseWithIndex {
	out := clone(list, 1)
	replacement := NewExerciseWithIndex(newText, index)
	for i, e := range out {
		if e.matches(oldDescription, index) {
			replacement.Key = e.Key
			out = append(out[:i], out[i+1:]...)
			break
		}
	}
	out = append(out, replacement)
	sortByIndex(out)
	return out
}

// RemoveExercise removes the first entry equal to (description, index) and sorts by index.
func RemoveExercise(list []ExerciseWithIndex, description string, index int) []ExerciseWithIndex {
	out := clone(list, 0)
	for i, e := range out {
		if e.matches(description, index) {
			out = append(out[:i], out[i+1:]...)
			break
		}
	}
	sortByIndex(out)
	return out
}

// ReplaceExerciseByKey changes the description of the entry with the given key.
// It reports false and returns the list unchanged when no entry has that key.
func ReplaceExerciseByKey(list []ExerciseWithIndex, key uuid.UUID, newText string) ([]ExerciseWithIndex, bool) {
	out := clone(list, 0)
	for i := range out {
		if out[i].Key == key {
			out[i].Description = newText
			sortByIndex(out)
			return out, true
		}
	}
	return out, false
}

// RemoveExerciseByKey removes the entry with the given key.
func RemoveExerciseByKey(list []ExerciseWithIndex, key uuid.UUID) ([]ExerciseWithIndex, bool) {
	out := clone(list, 0)
	for i := range out {
		if out[i].Key == key {
			out = append(out[:i], out[i+1:]...)
			sortByIndex(out)
			return out, true
		}
	}
	return out, false
}

// FindExercise returns the entry whose key, or key prefix, matches ref.
func FindExercise(list []ExerciseWithIndex, ref string) (ExerciseWithIndex, bool) {
	var found []ExerciseWithIndex
	for _, e := range list {
		if len(ref) > 0 && len(ref) <= len(e.Key.String()) && e.Key.String()[:len(ref)] == ref {
			found = append(found, e)
		}
	}
	if len(found) != 1 {
		return ExerciseWithIndex{}, false
	}
	return found[0], true
}

// ExercisesFromRows converts stored exercises into an editable list indexed 1..n.
func ExercisesFromRows(rows []Exercise) []ExerciseWithIndex {
	out := make([]ExerciseWithIndex, 0, len(rows))
	for i, r := range rows {
		out = append(out, NewExerciseWithIndex(r.Description, i+1))
	}
	return out
}

// Descriptions returns the descriptions in list order.
func Descriptions(list []ExerciseWithIndex) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.Description)
	}
	return out
}

// ToExercises converts the list into rows for the given workout and date.
func ToExercises(list []ExerciseWithIndex, workoutID int64, date WorkoutDate) []Exercise {
	out := make([]Exercise, 0, len(list))
	for _, e := range list {
		out = append(out, *NewExercise(workoutID, e.Description, date))
	}
	return out
}

func clone(list []ExerciseWithIndex, extra int) []ExerciseWithIndex {
	out := make([]ExerciseWithIndex, len(list), len(list)+extra)
	copy(out, list)
	return out
}

func sortByIndex(list []ExerciseWithIndex) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Index < list[j].Index
	})
}

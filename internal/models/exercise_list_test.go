// ABOUTME: Tests for the in-memory exercise list helpers.
// ABOUTME: Checks append/replace/remove ordering and the key-based variants.
package models

import (
	"sort"
	"testing"

	"github.com/google/uuid"
)

func list(entries ...string) []ExerciseWithIndex {
	var out []ExerciseWithIndex
	for _, e := range entries {
		out = AppendExercise(out, e)
	}
	return out
}

func isSortedByIndex(l []ExerciseWithIndex) bool {
	return sort.SliceIsSorted(l, func(i, j int) bool { return l[i].Index < l[j].Index })
}

func TestAppendExercise(t *testing.T) {
	tests := []struct {
		name      string
		list      []ExerciseWithIndex
		wantIndex int
	}{
		{name: "empty list starts at 1", list: nil, wantIndex: 1},
		{name: "contiguous", list: list("A", "B"), wantIndex: 3},
		{
			name: "gap uses max",
			list: []ExerciseWithIndex{
				NewExerciseWithIndex("A", 1),
				NewExerciseWithIndex("B", 7),
				NewExerciseWithIndex("C", 4),
			},
			wantIndex: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AppendExercise(tt.list, "new")
			if len(got) != len(tt.list)+1 {
				t.Fatalf("len = %d, want %d", len(got), len(tt.list)+1)
			}
			last := got[len(got)-1]
			if last.Index != tt.wantIndex || last.Description != "new" {
				t.Errorf("appended %+v, want index %d", last, tt.wantIndex)
			}
			if last.Key == uuid.Nil {
				t.Error("expected appended entry to get a key")
			}
		})
	}
}

func TestAppendExerciseDoesNotMutateInput(t *testing.T) {
	in := list("A", "B")
	_ = AppendExercise(in[:1], "C")

	if in[1].Description != "B" {
		t.Errorf("input was modified: %+v", in)
	}
}

func TestReplaceExercise(t *testing.T) {
	in := list("A", "B", "C")
	oldKey := in[1].Key

	got := ReplaceExercise(in, "B", 2, "B2")

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if !isSortedByIndex(got) {
		t.Errorf("result not sorted: %+v", got)
	}
	if got[1].Description != "B2" || got[1].Index != 2 {
		t.Errorf("got[1] = %+v, want (B2, 2)", got[1])
	}
	if got[1].Key != oldKey {
		t.Error("expected replaced entry to keep its key")
	}
	for _, e := range got {
		if e.Description == "B" && e.Index == 2 {
			t.Error("old entry still present")
		}
	}
	if in[1].Description != "B" {
		t.Error("input was modified")
	}
}

func TestReplaceExerciseNoMatchStillAppends(t *testing.T) {
	got := ReplaceExercise(list("A"), "missing", 5, "X")

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[1].Description != "X" || got[1].Index != 5 {
		t.Errorf("got[1] = %+v, want (X, 5)", got[1])
	}
}

func TestRemoveExercise(t *testing.T) {
	in := []ExerciseWithIndex{
		NewExerciseWithIndex("C", 3),
		NewExerciseWithIndex("A", 1),
		NewExerciseWithIndex("B", 2),
	}

	got := RemoveExercise(in, "A", 1)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !isSortedByIndex(got) {
		t.Errorf("result not sorted: %+v", got)
	}
	if got[0].Description != "B" || got[1].Description != "C" {
		t.Errorf("got %v, want [B C]", Descriptions(got))
	}
}

// Two entries equal by (description, index) are indistinguishable to the
// value-matching helpers: exactly one of them is removed.
func TestRemoveExerciseDuplicatePairRemovesOne(t *testing.T) {
	first := NewExerciseWithIndex("A", 1)
	second := NewExerciseWithIndex("A", 1)

	got := RemoveExercise([]ExerciseWithIndex{first, second}, "A", 1)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Key != second.Key {
		t.Error("expected the first match to be removed")
	}
}

func TestKeyVariantsTargetOneEntry(t *testing.T) {
	first := NewExerciseWithIndex("A", 1)
	second := NewExerciseWithIndex("A", 1)
	in := []ExerciseWithIndex{first, second}

	replaced, ok := ReplaceExerciseByKey(in, second.Key, "A2")
	if !ok {
		t.Fatal("expected key to be found")
	}
	if replaced[0].Description != "A" || replaced[1].Description != "A2" {
		t.Errorf("got %v, want [A A2]", Descriptions(replaced))
	}

	removed, ok := RemoveExerciseByKey(in, first.Key)
	if !ok {
		t.Fatal("expected key to be found")
	}
	if len(removed) != 1 || removed[0].Key != second.Key {
		t.Errorf("unexpected result: %+v", removed)
	}

	if _, ok := RemoveExerciseByKey(in, uuid.New()); ok {
		t.Error("expected unknown key to report false")
	}
}

func TestFindExerciseByPrefix(t *testing.T) {
	in := list("A", "B")
	ref := in[1].Key.String()[:8]

	got, ok := FindExercise(in, ref)
	if !ok || got.Key != in[1].Key {
		t.Errorf("FindExercise(%q) = %+v, %v", ref, got, ok)
	}
	if _, ok := FindExercise(in, ""); ok {
		t.Error("expected empty ref to match nothing")
	}
}

func TestExercisesRoundTrip(t *testing.T) {
	rows := []Exercise{{Description: "A"}, {Description: "C"}, {Description: "D"}}
	editable := ExercisesFromRows(rows)

	for i, e := range editable {
		if e.Index != i+1 {
			t.Errorf("editable[%d].Index = %d, want %d", i, e.Index, i+1)
		}
	}

	date := WorkoutDate{Day: 1, Month: 1, Year: 2024}
	back := ToExercises(editable, 7, date)
	for i, e := range back {
		if e.WorkoutID != 7 || e.Description != rows[i].Description || e.Date() != date {
			t.Errorf("back[%d] = %+v", i, e)
		}
	}
}

// ABOUTME: Tests for the composition root.
// ABOUTME: Builds Apps over temp directories for each local backend.
package app

import (
	"context"
	"testing"

	"github.com/harperreed/gainsbook/internal/config"
	"github.com/harperreed/gainsbook/internal/models"
	"github.com/harperreed/gainsbook/internal/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOverrides(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			a, err := New(Options{
				ConfigDir: t.TempDir(),
				DataDir:   t.TempDir(),
				Backend:   backend,
				LogLevel:  "error",
			})
			require.NoError(t, err)
			defer func() { assert.NoError(t, a.Close()) }()

			assert.Equal(t, backend, a.Config.GetBackend())

			id, err := a.Repo.SaveWorkout(context.Background(), models.WorkoutDate{Day: 1, Month: 1, Year: 2024}, []string{"Squat"})
			require.NoError(t, err)
			assert.NotZero(t, id)
		})
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(Options{ConfigDir: t.TempDir(), DataDir: t.TempDir(), Backend: "floppy"})
	assert.Error(t, err)
}

func TestNewRejectsBadLogLevel(t *testing.T) {
	_, err := New(Options{ConfigDir: t.TempDir(), DataDir: t.TempDir(), LogLevel: "loud"})
	assert.Error(t, err)
}

func TestDepsDriveViewModels(t *testing.T) {
	a, err := New(Options{ConfigDir: t.TempDir(), DataDir: t.TempDir(), LogLevel: "error"})
	require.NoError(t, err)
	defer a.Close()

	vm := viewmodel.NewSupportViewModel(context.Background(), a.Deps())
	defer vm.Close()
	vm.InsertYear(2024)
	vm.Wait()

	assert.Equal(t, []models.Year{{Year: 2024}}, vm.Years.Value())

	families, err := a.Registry.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "gainsbook_operations_total" {
			found = true
		}
	}
	assert.True(t, found)
}

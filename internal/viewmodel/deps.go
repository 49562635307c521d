// ABOUTME: Shared dependencies handed to every view-model constructor.
// ABOUTME: Built once by the application root; tests fill in only what they need.
package viewmodel

import (
	"github.com/charmbracelet/log"
	"github.com/harperreed/gainsbook/internal/metrics"
	"github.com/harperreed/gainsbook/internal/storage"
)

// Deps carries the repository and ambient services.
type Deps struct {
	Repo    storage.Repository
	Logger  *log.Logger
	Metrics *metrics.Manager
	Clock   Clock
	// Locks serializes writes per workout ID across view-models.
	Locks *KeyedMutex
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = SystemClock{}
	}
	if d.Locks == nil {
		d.Locks = NewKeyedMutex()
	}
	return d
}

func (d Deps) logger(name string) *log.Logger {
	if d.Logger == nil {
		return nil
	}
	return d.Logger.With("vm", name)
}

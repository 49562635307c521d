// ABOUTME: Composition root that wires config, logging, metrics and storage together.
// ABOUTME: Commands and the MCP server build one App and hand its Deps to view-models.
package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harperreed/gainsbook/internal/config"
	"github.com/harperreed/gainsbook/internal/logging"
	"github.com/harperreed/gainsbook/internal/metrics"
	"github.com/harperreed/gainsbook/internal/storage"
	"github.com/harperreed/gainsbook/internal/viewmodel"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
)

// Options overrides values from the config file. Empty fields keep the configured value.
type Options struct {
	ConfigDir string
	DataDir   string
	Backend   string
	LogLevel  string

	// LogToFile sends logs to the configured rotating file instead of stderr.
	// The MCP server sets it because stdout and stdin carry the protocol.
	LogToFile bool
}

// App owns the process-wide resources.
type App struct {
	Config   *config.Config
	Logger   *log.Logger
	Metrics  *metrics.Manager
	Registry *prometheus.Registry
	Repo     storage.Repository
	Locks    *viewmodel.KeyedMutex

	logCloser io.Closer
}

// New loads the config, applies opts and opens the repository.
func New(opts Options) (*App, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = config.ConfigDir()
	}
	cfg, err := config.LoadFrom(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	params := logging.Params{Level: cfg.GetLogLevel(), Prefix: "gainsbook"}
	if opts.LogToFile {
		params.File = cfg.GetLogFile()
	}
	logger, logCloser, err := logging.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewManager(metrics.Namespace, "", reg)

	repo, err := cfg.OpenStorage(logger)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	logger.Debug("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())

	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   m,
		Registry:  reg,
		Repo:      repo,
		Locks:     viewmodel.NewKeyedMutex(),
		logCloser: logCloser,
	}, nil
}

// Deps returns the dependencies shared by every view-model of this App.
func (a *App) Deps() viewmodel.Deps {
	return viewmodel.Deps{
		Repo:    a.Repo,
		Logger:  a.Logger,
		Metrics: a.Metrics,
		Clock:   viewmodel.SystemClock{},
		Locks:   a.Locks,
	}
}

// Close releases the repository and the log file.
func (a *App) Close() error {
	var err error
	if a.Repo != nil {
		err = multierr.Append(err, a.Repo.Close())
	}
	if a.logCloser != nil {
		err = multierr.Append(err, a.logCloser.Close())
	}
	return err
}

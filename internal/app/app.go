package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/dori/weekly/internal/config"
	"github.com/dori/weekly/internal/db"
	"github.com/dori/weekly/internal/kv"
	"github.com/dori/weekly/internal/logging"
	"github.com/dori/weekly/internal/notify"
	"github.com/dori/weekly/internal/persist"
	"github.com/dori/weekly/internal/store"
)

const (
	lockFileName = "weekly.lock"
	dbFileName   = "weekly.db"
	recordsDir   = "records"
)

// App holds the application state and dependencies
type App struct {
	Config  config.Config
	DataDir string
	Store   *store.Store
	Logger  *log.Logger
	Desktop *notify.Desktop
	// Status keeps the summaries shown in the TUI status line
	Status *notify.Recorder
	// LoadErr is set when a saved record could not be read at startup
	LoadErr error

	medium   kv.Store
	lockFile *flock.Flock
	logFile  io.Closer

	mu       sync.Mutex
	writeErr error
}

// Options controls how New wires the process
type Options struct {
	Config config.Config
	// Logger overrides the logger built from Config.Log
	Logger *log.Logger
	// LogToStderr sends logs to stderr instead of the log file
	LogToStderr bool
}

// New creates a new application instance and loads saved state
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = db.DefaultDataDir()
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:  cfg,
		DataDir: dataDir,
		Desktop: notify.NewDesktop(),
		Status:  &notify.Recorder{},
	}
	app.Desktop.SetEnabled(cfg.Notifications)

	if err := app.setupLogger(opts); err != nil {
		return nil, err
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		app.closeLog()
		return nil, err
	}

	medium, err := app.openMedium()
	if err != nil {
		app.releaseLock()
		app.closeLog()
		return nil, err
	}
	app.medium = medium

	app.Store = store.New(persist.New(medium),
		store.WithLogger(app.Logger),
		store.WithNotifier(notify.Multi(notify.Log{Logger: app.Logger}, app.Desktop, app.Status)),
		store.WithWriteErrorHandler(app.recordWriteError),
	)
	if err := app.Store.Load(ctx); err != nil {
		app.Logger.Warn("started with unreadable records", "err", err)
		app.LoadErr = err
	}

	if database, ok := medium.(*db.DB); ok {
		if at, err := database.UpdatedAt(ctx, persist.TasksKey); err == nil {
			app.Logger.Debug("tasks last saved", "at", at, "driver", database.Driver())
		}
	}

	app.Logger.Info("weekly started", "backend", cfg.Backend, "data_dir", dataDir)
	return app, nil
}

func (a *App) setupLogger(opts Options) error {
	logOpts := logging.Options{
		Level:      a.Config.Log.Level,
		Format:     a.Config.Log.Format,
		Prefix:     "weekly",
		Timestamps: true,
	}
	switch {
	case opts.Logger != nil:
		a.Logger = opts.Logger
	case opts.LogToStderr:
		logOpts.Timestamps = false
		a.Logger = logging.New(os.Stderr, logOpts)
	case a.Config.LogPath(a.DataDir) == "":
		a.Logger = logging.Discard()
	default:
		logger, f, err := logging.OpenFile(a.Config.LogPath(a.DataDir), logOpts)
		if err != nil {
			return err
		}
		a.Logger = logger
		a.logFile = f
	}
	return nil
}

// openMedium selects the storage backend named in config
func (a *App) openMedium() (kv.Store, error) {
	switch a.Config.Backend {
	case config.BackendSQLite:
		database, err := db.Open(filepath.Join(a.DataDir, dbFileName), a.Config.SQLiteDriver)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return database, nil
	case config.BackendFile:
		f, err := kv.OpenFile(filepath.Join(a.DataDir, recordsDir))
		if err != nil {
			return nil, fmt.Errorf("failed to open records directory: %w", err)
		}
		return f, nil
	case config.BackendMemory:
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", a.Config.Backend)
	}
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, lockFileName)
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of weekly is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

func (a *App) closeLog() {
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
}

func (a *App) recordWriteError(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writeErr = err
}

// TakeWriteError returns the last persistence failure once, then clears it
func (a *App) TakeWriteError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	err := a.writeErr
	a.writeErr = nil
	return err
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.medium != nil {
		if err := a.medium.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
		}
	}

	a.releaseLock()
	a.closeLog()

	return errors.Join(errs...)
}

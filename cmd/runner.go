package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/coursetrack/internal/course"
	"github.com/desertthunder/coursetrack/internal/embedurl"
	"github.com/desertthunder/coursetrack/internal/services"
	"github.com/desertthunder/coursetrack/internal/shared"
	"github.com/desertthunder/coursetrack/internal/storage"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	source     services.ContentSource
	store      storage.Store
	db         *sql.DB
	lock       *shared.SessionLock
	ctrl       *course.Controller
	urls       *embedurl.Cache
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	openURL    func(string) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Source and Store override the ones derived from Config, mainly for tests.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Source     services.ContentSource
	Store      storage.Store
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	OpenURL    func(string) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.OpenURL == nil {
		opts.OpenURL = shared.OpenBrowser
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		source:     opts.Source,
		store:      opts.Store,
		urls:       embedurl.NewCache(),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		openURL:    opts.OpenURL,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, tuiCommand, catalogCommand, sectionsCommand, selectCommand,
		watchCommand, unwatchCommand, commentCommand, progressCommand, urlCommand, openCommand, resetCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Prepare loads the configuration named by the root --config flag and applies the log level.
//
// A missing file is not an error; defaults are used.
func (r *Runner) Prepare(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	r.configPath = path

	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
	} else {
		r.logger.Debug("config file not found, using defaults", "path", path)
	}

	level, err := r.config.LogLevel()
	if override := cmd.String("log-level"); override != "" {
		level, err = log.ParseLevel(override)
		if err != nil {
			err = fmt.Errorf("%w: --log-level: %v", shared.ErrInvalidFlag, err)
		}
	}
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	if cmd.Bool("ephemeral") && r.store == nil {
		r.store = storage.NewMemoryStore()
	}

	return ctx, nil
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the database handle and session lock, if they were taken.
func (r *Runner) Close() error {
	var err error
	if r.db != nil {
		err = r.db.Close()
		r.db = nil
	}
	if lerr := r.lock.Release(); lerr != nil && err == nil {
		err = lerr
	}
	r.lock = nil
	return err
}

func (r *Runner) contentSource() services.ContentSource {
	if r.source == nil {
		r.source = services.NewSource(r.config.Content, services.WithHTTPClient(r.httpClient))
	}
	return r.source
}

// persistence returns the state adapter over the configured database.
//
// A database that cannot be opened degrades to an in-memory store for this run; only a lock held by
// another session is fatal.
func (r *Runner) persistence() (*storage.Persistence, error) {
	if r.store == nil {
		store, err := r.openStore()
		if errors.Is(err, shared.ErrLocked) {
			return nil, err
		}
		if err != nil {
			r.logger.Warn("progress will not be saved", "path", r.config.Database.Path, "error", err)
			store = storage.NewMemoryStore()
		}
		r.store = store
	}
	return storage.NewPersistence(r.store, r.config.Storage.KeyPrefix), nil
}

func (r *Runner) openStore() (storage.Store, error) {
	lock, err := shared.AcquireSessionLock(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		_ = lock.Release()
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	r.lock = lock
	r.db = db
	return storage.NewSQLiteStore(db), nil
}

// newController builds an uninitialized [course.Controller] from the runner's configuration.
func (r *Runner) newController() (*course.Controller, error) {
	p, err := r.persistence()
	if err != nil {
		return nil, err
	}

	return course.New(course.Options{
		Source:           r.contentSource(),
		Persistence:      p,
		Logger:           shared.WithLogger(r.logger, "component", "course"),
		Breakpoint:       r.config.UI.Breakpoint,
		HomeKey:          r.config.UI.HomeSection,
		FallbackToSample: r.config.Content.FallbackToSample,
	}), nil
}

// controller returns an initialized controller, building it on first use.
func (r *Runner) controller(ctx context.Context) (*course.Controller, error) {
	if r.ctrl != nil {
		return r.ctrl, nil
	}

	ctrl, err := r.newController()
	if err != nil {
		return nil, err
	}
	ctrl.Initialize(ctx)
	if msg := ctrl.LoadError(); msg != "" {
		r.logger.Warn(msg, "source", r.contentSource().Name())
	}

	r.ctrl = ctrl
	return ctrl, nil
}

// requireArg returns the named positional argument or an error wrapping [shared.ErrMissingArgument].
func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return v, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/sedaily/internal/client/config"
	"github.com/dmitrijs2005/sedaily/internal/client/diskcache"
	"github.com/dmitrijs2005/sedaily/internal/client/events"
	"github.com/dmitrijs2005/sedaily/internal/client/models"
	"github.com/dmitrijs2005/sedaily/internal/client/session"
	"github.com/dmitrijs2005/sedaily/internal/client/storage"
	"github.com/dmitrijs2005/sedaily/internal/filex"
	"github.com/dmitrijs2005/sedaily/internal/logging"
	"github.com/spf13/afero"
)

// SessionService is the part of session.Store the commands use.
type SessionService interface {
	ActiveUser(ctx context.Context) models.User
	CurrentUser() models.User
	SetCurrentUser(ctx context.Context, u models.User) error
	IsCurrentUserLoggedIn() bool
	Logout(ctx context.Context) error
}

// PodcastCache is the part of diskcache.Cache the commands use.
type PodcastCache interface {
	Save(ctx context.Context, key models.DiskKey, v any) error
	Load(ctx context.Context, key models.DiskKey, v any) error
}

// LocalStore is the part of metadata.Repository used to inspect and wipe
// everything the client keeps on this device.
type LocalStore interface {
	List(ctx context.Context) (map[string][]byte, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

type App struct {
	config  *config.Config
	log     logging.Logger
	session SessionService
	cache   PodcastCache
	local   LocalStore
	bus     *events.Bus
	closers []io.Closer
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, c.LogFormat)

	repo, closer, err := storage.Open(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening storage", "storage", c.Storage, "error", err)
		return nil, err
	}

	fs := afero.NewOsFs()
	cacheDir, err := filex.EnsureDir(fs, c.CacheDir)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	cache := diskcache.New(fs, cacheDir)

	bus := events.NewBus()
	store := session.NewStore(repo, cache, bus, log)

	a := &App{
		config:  c,
		log:     log,
		session: store,
		cache:   cache,
		local:   repo,
		bus:     bus,
		closers: []io.Closer{closer},
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	if z, ok := log.(*logging.ZapLogger); ok {
		a.closers = append(a.closers, closerFunc(z.Sync))
	}

	bus.Subscribe(events.LoginChanged, a.onLoginChanged)

	return a, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// onLoginChanged reacts to session changes made anywhere in the client.
func (a *App) onLoginChanged(ctx context.Context, _ events.Event) {
	a.log.Info(ctx, "login state changed", "logged_in", a.session.IsCurrentUserLoggedIn())
}

// Run restores the previous session and runs the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsCurrentUserLoggedIn()
}

// withTimeout bounds a single storage-touching command.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.OperationTimeout)
}

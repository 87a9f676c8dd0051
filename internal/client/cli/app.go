package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/todosync/internal/client/client"
	"github.com/dmitrijs2005/todosync/internal/client/config"
	"github.com/dmitrijs2005/todosync/internal/client/credcache"
	"github.com/dmitrijs2005/todosync/internal/client/models"
	"github.com/dmitrijs2005/todosync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/todosync/internal/client/services"
	"github.com/dmitrijs2005/todosync/internal/client/storage"
	"github.com/dmitrijs2005/todosync/internal/client/viewstore"
	"github.com/dmitrijs2005/todosync/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// sessionService is the part of services.SessionManager the CLI drives.
type sessionService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) *models.User
	ResumeFromCache(ctx context.Context) *models.User
	Logout(ctx context.Context)
}

type App struct {
	config  *config.Config
	api     client.Client
	db      *sql.DB
	session sessionService
	login   *viewstore.LoginStore
	home    *viewstore.HomeStore
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local cache, connects the remote client and wires the
// services and view stores together.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cache := credcache.New(metadata.NewSQLiteRepository(db), logger)
	session := services.NewSessionManager(apiClient, cache, logger)
	lists := services.NewListSynchronizer(apiClient)

	a := newApp(c, session, viewstore.NewHomeStore(lists), logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.api = apiClient
	a.db = db
	return a, nil
}

func newApp(c *config.Config, session sessionService, home *viewstore.HomeStore, logger logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	a := &App{
		config:  c,
		session: session,
		login:   viewstore.NewLoginStore(),
		home:    home,
		logger:  logger,
		reader:  reader,
		out:     out,
	}
	// signing out tears down the home screen
	a.login.Subscribe(func(u *models.User) {
		if u == nil {
			a.home.Reset()
		}
	})
	return a
}

// Run resumes the cached session if any, then serves the REPL until the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to todosync (type 'help' for commands)")
	a.resume(ctx)

	if a.api != nil && a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.api != nil {
		if err := a.api.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing client", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing cache database", "error", err)
		}
	}
}

func (a *App) resume(ctx context.Context) {
	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user := a.session.ResumeFromCache(rctx)
	if user == nil {
		return
	}
	fmt.Fprintf(a.out, "Welcome back, %s\n", user.DisplayName())
	a.signedIn(ctx, user)
}

// signedIn publishes user and mounts the home screen. Switching accounts
// drops the previous user's lists before anything else can touch them.
func (a *App) signedIn(ctx context.Context, user *models.User) {
	if prev := a.login.Get(); prev == nil || prev.ID != user.ID {
		a.home.Reset()
	}
	a.login.Set(user)
	a.setMode(ModeOnline)

	hctx, cancel := a.withTimeout(ctx)
	defer cancel()
	if err := a.home.Init(hctx, user); err != nil {
		a.printListError("load lists", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.login.SignedIn()
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.login.Get(); u != nil {
		s = u.DisplayName() + " "
	}
	if m := a.currentMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// connectivity mode shown in the prompt. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

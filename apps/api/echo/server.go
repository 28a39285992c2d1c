package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/kat-co/vala"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/subject"
	"github.com/trezcool/ratiba/core/timetable"
)

type (
	Options struct {
		Address        string
		AppName        string
		Debug          bool
		DisableReqLogs bool
	}

	Deps struct {
		Logger  core.Logger
		Store   *timetable.Store
		Catalog *subject.Catalog
	}

	Server struct {
		opts     *Options
		deps     *Deps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal

		// the Store is not safe for concurrent use
		storeMu sync.Mutex
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(opts *Options, deps *Deps) *Server {
	vala.BeginValidation().Validate(
		vala.IsNotNil(opts, "opts"),
		vala.IsNotNil(deps, "deps"),
		vala.IsNotNil(deps.Logger, "deps.Logger"),
		vala.IsNotNil(deps.Store, "deps.Store"),
		vala.IsNotNil(deps.Catalog, "deps.Catalog"),
	).CheckAndPanic()

	s := &Server{
		opts:     opts,
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	registerTimetableAPI(v1, s)
	registerSubjectAPI(v1, s.deps.Catalog)
}

// withStore runs `fn` with exclusive access to the Store, loading it first if needed.
func (s *Server) withStore(ctx context.Context, fn func(store *timetable.Store) error) error {
	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	if !s.deps.Store.Loaded() {
		if _, err := s.deps.Store.Load(ctx); err != nil {
			return err
		}
	}
	return fn(s.deps.Store)
}

// Start listens on the configured address; failures are sent to Errors().
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	name := s.opts.AppName
	if name == "" {
		name = "Ratiba"
	}
	return ctx.String(http.StatusOK, "Welcome to "+name+" API!")
}

package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/shkolla/portal/core"
	"github.com/shkolla/portal/core/attendance"
	"github.com/shkolla/portal/core/grading"
	"github.com/shkolla/portal/core/news"
	"github.com/shkolla/portal/core/school"
	"github.com/shkolla/portal/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		UserSvc        *user.Service
		SchoolSvc      *school.Service
		GradingSvc     *grading.Service
		AttendanceSvc  *attendance.Service
		NewsSvc        *news.Service
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	registerAuthAPI(api, s.deps)
	registerNewsAPI(api, s.deps)
	registerStudentAPI(api, jwt, s.deps)
	registerSchoolAPI(api, jwt, s.deps)
	registerGradeAPI(api, jwt, s.deps)
	registerAdminAPI(api, jwt, s.deps)
}

// signalShutdown is called by the error handler on unrecoverable errors.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

// Start serves the API; it blocks and reports the terminal error on Errors().
func (s *server) Start() {
	s.errs <- s.app.Start(s.deps.Conf.Server.Address())
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Shkolla API!")
}

// Package api serves the admin back office and the public site as a JSON
// HTTP API.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"aplus-academy/internal/admin"
	"aplus-academy/pkg/logger"
)

type Options struct {
	Address   string
	JWTSecret string
	JWTTTL    time.Duration
	Logger    *zap.Logger
}

type Server struct {
	opts Options
	svc  *admin.Service
	log  *zap.Logger
	app  *echo.Echo
}

func New(svc *admin.Service, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.L()
	}
	if opts.JWTTTL <= 0 {
		opts.JWTTTL = 12 * time.Hour
	}
	s := &Server{opts: opts, svc: svc, log: log, app: echo.New()}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Validator = newRequestValidator()
	s.app.HTTPErrorHandler = errorHandler(s.log)

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.Recover())
	s.app.Use(requestLogger(s.log))

	s.app.GET("/health", s.health)

	v1 := s.app.Group("/api")
	v1.POST("/auth/login", s.login)
	s.registerPublic(v1.Group("/public"))

	g := v1.Group("/admin", RequireAuth(s.opts.JWTSecret))
	g.GET("/me", s.me)
	s.registerDashboard(g)
	s.registerTeachers(g.Group("/teachers"))
	s.registerGroups(g.Group("/groups"))
	s.registerStudents(g.Group("/students"))
	s.registerFinance(g.Group("/finance"))
	s.registerContent(g.Group("/content"))
}

// Start blocks serving HTTP until Stop is called.
func (s *Server) Start() error {
	s.log.Info("http server listening", zap.String(logger.FieldAddr, s.opts.Address))
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

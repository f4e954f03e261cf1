// Package devserver is a self-contained stand-in for the production backend:
// it implements the REST surface the SDK consumes, including the envelope
// quirks the client layer has to tolerate (some endpoints wrap payloads in a
// "data" key, others return them bare).
package devserver

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	db       *gorm.DB
	sessions *Sessions
	search   *SearchService
	echo     *echo.Echo
}

// New wires the echo app: logging, recovery, compression, request timing,
// bearer auth with public-path skipper, and every registered route module.
func New(db *gorm.DB) *Server {
	s := &Server{
		db:       db,
		sessions: NewSessions(),
		search:   NewSearchService(db),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(authMiddleware(db, s.sessions))
	ApplyModules(s, apiGroup)

	s.echo = e
	return s
}

// Echo exposes the underlying app (tests serve it via httptest).
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(port string) error {
	if port == "" {
		port = "8080"
	}
	log.Printf("Dev server running on :%s", port)
	return s.echo.Start(":" + port)
}

// --- response helpers ---

// wrapped responds with the {"data": ..., "message": ...} envelope.
func wrapped(c echo.Context, status int, data interface{}, message string) error {
	body := echo.Map{"data": data}
	if message != "" {
		body["message"] = message
	}
	return c.JSON(status, body)
}

// bare responds with the payload directly, no envelope.
func bare(c echo.Context, status int, payload interface{}) error {
	return c.JSON(status, payload)
}

func errJSON(c echo.Context, status int, msg, code, field string) error {
	body := echo.Map{"error": msg}
	if code != "" {
		body["code"] = code
	}
	if field != "" {
		body["field"] = field
	}
	return c.JSON(status, body)
}

func notFound(c echo.Context, what string) error {
	return errJSON(c, http.StatusNotFound, what+" not found", "not_found", "")
}

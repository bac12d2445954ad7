package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// VERSION is reported by /version so deployments can be told apart from the
// Voiceflow side.
const VERSION = "assistant-bridge-v1"

// how much turn history /stats summarizes
const STATS_WINDOW = 24 * time.Hour

// bridge.Bridge interface wrapper for modularity and testing.
// Contains only the methods the handlers use.
type Bridge interface {
	SubmitTurn(ctx context.Context, threadID string, message string) (string, error)
	StartThread(ctx context.Context) (string, error)
	TurnStats(window time.Duration) (map[string]int64, error)
}

// Server represents the HTTP server the Voiceflow flow calls into
type Server struct {
	echo   *echo.Echo
	bridge Bridge
	port   int
}

// NewServer creates a new HTTP server around the given bridge
func NewServer(bridge Bridge, port int) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	server := &Server{
		echo:   e,
		bridge: bridge,
		port:   port,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all endpoints
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.health)
	s.echo.GET("/version", s.version)
	s.echo.GET("/vf-test", s.vfTest)
	s.echo.GET("/start", s.startConversation)
	s.echo.GET("/stats", s.stats)
	s.echo.POST("/chat", s.chat)
}

// Start begins the server and blocks until an interrupt arrives, then shuts
// down gracefully.
func (s *Server) Start() error {
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			s.echo.Logger.Fatal("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

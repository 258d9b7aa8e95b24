// Package web serves the survey analysis dashboard and its JSON API.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KaramelBytes/surveylens/internal/chart"
	"github.com/KaramelBytes/surveylens/internal/locale"
	"github.com/KaramelBytes/surveylens/internal/telemetry"
)

// Settings are the dashboard defaults taken from configuration.
type Settings struct {
	// DefaultLang is used when neither the request nor Accept-Language picks one.
	DefaultLang    locale.Lang
	DefaultTheme   chart.Theme
	XColumn        string
	YColumn        string
	PreviewRows    int
	MaxUploadBytes int64
}

type Server struct {
	addr     string
	router   *http.ServeMux
	settings Settings
	logger   *slog.Logger
	recorder telemetry.Recorder
}

func NewServer(addr string, settings Settings, logger *slog.Logger, recorder telemetry.Recorder) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = telemetry.NoOp{}
	}
	if settings.DefaultLang == "" {
		settings.DefaultLang = locale.English
	}
	if settings.DefaultTheme == "" {
		settings.DefaultTheme = chart.Light
	}
	if settings.MaxUploadBytes <= 0 {
		settings.MaxUploadBytes = 200 << 20
	}
	s := &Server{
		addr:     addr,
		router:   http.NewServeMux(),
		settings: settings,
		logger:   logger,
		recorder: recorder,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.HandleFunc("GET /{$}", s.handleDashboard)
	s.router.HandleFunc("POST /analyze", s.handleAnalyze)
	s.router.HandleFunc("POST /api/analyze", s.handleAPIAnalyze)
}

// Handler returns the routes wrapped in request id and logging middleware.
func (s *Server) Handler() http.Handler {
	return RequestID(Logging(s.logger)(s.router))
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting dashboard", slog.String("addr", s.addr))
	fmt.Printf("Starting server at http://%s\n", displayAddr(s.addr))

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown", slog.Any("error", err))
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Graceful shutdown
	}
	return err
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

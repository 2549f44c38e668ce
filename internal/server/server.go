package server

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rydey/attendance-bot/internal/service"
)

const triggerSecretHeader = "X-Trigger-Secret"

// ReminderJob is the scheduled reminder trigger. It always returns a
// structured outcome; faults never surface as transport errors.
type ReminderJob interface {
	Run(ctx context.Context, force bool) service.Outcome
}

type Server struct {
	job    ReminderJob
	secret string

	log *slog.Logger
}

func New(job ReminderJob, secret string, log *slog.Logger) *Server {
	return &Server{
		job:    job,
		secret: secret,

		log: log.With("component", "server"),
	}
}

// Router builds the gin engine. The reminder endpoint is meant for external
// cron services, so the shared secret is accepted from either a header or a
// query parameter.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/reminders/run", s.runReminder)
	}

	return router
}

func (s *Server) runReminder(c *gin.Context) {
	if !s.authorized(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid trigger secret"})
		return
	}

	force := c.Query("force") == "true" || c.Query("force") == "1"

	outcome := s.job.Run(c.Request.Context(), force)
	// faults are part of the outcome; the transport always answers 200 so
	// upstream cron services don't retry
	c.JSON(http.StatusOK, outcome)
}

func (s *Server) authorized(c *gin.Context) bool {
	if s.secret == "" {
		return true
	}

	got := c.GetHeader(triggerSecretHeader)
	if got == "" {
		got = c.Query("secret")
	}

	return subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) == 1
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second, //nolint:mnd // it's ok
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info("HTTP server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second) //nolint:mnd // it's ok
	defer cancel()

	s.log.Info("Stopping HTTP server")
	return srv.Shutdown(shutdownCtx)
}

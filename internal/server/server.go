// Package server exposes a session over a JSON API and streams animations
// over WebSocket for a browser front end.
package server

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/arrayviz/internal/anim"
	"github.com/san-kum/arrayviz/internal/config"
	"github.com/san-kum/arrayviz/internal/logging"
	"github.com/san-kum/arrayviz/internal/session"
	"github.com/san-kum/arrayviz/internal/storage"
)

type Options struct {
	Logger *slog.Logger
	Rand   *rand.Rand
	Speed  int
	// Runs enables the recorded-run endpoints when set.
	Runs *storage.Store
	// Scheduler drives the shared session's runner; nil uses real time.
	Scheduler anim.Scheduler
}

// Server serialises all HTTP access to one shared session. WebSocket
// animations run on per-connection runners.
type Server struct {
	mu     sync.Mutex
	sess   *session.Session
	runs   *storage.Store
	log    *slog.Logger
	speed  int
	router *gin.Engine
}

func New(opts Options) *Server {
	log := logging.OrDiscard(opts.Logger)
	speed := opts.Speed
	if speed == 0 {
		speed = config.DefaultSpeed
	}
	speed = config.ClampSpeed(speed)
	interval, _ := config.IntervalForSpeed(speed)

	runnerOpts := []anim.Option{anim.WithInterval(interval)}
	if opts.Scheduler != nil {
		runnerOpts = append(runnerOpts, anim.WithScheduler(opts.Scheduler))
	}

	s := &Server{
		sess: session.New(
			session.WithLogger(log),
			session.WithRand(opts.Rand),
			session.WithRunnerOptions(runnerOpts...),
		),
		runs:  opts.Runs,
		log:   log,
		speed: speed,
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery(), s.logRequests())
	s.RegisterRoutes(s.router)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.mu.Lock()
	s.sess.Runner().Stop()
	s.mu.Unlock()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

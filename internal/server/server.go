// Package server exposes the assistant over HTTP and WebSocket: message and
// action endpoints feed the turn engine, status endpoints read the schedulers
// and the store, and the per-owner socket is the delivery channel.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"remi/internal/assistant"
	"remi/internal/config"
	"remi/internal/logging"
	"remi/internal/store"
)

// Server wires the turn engine, the delivery hub, and the status reads into
// one HTTP listener.
type Server struct {
	cfg    config.ServerConfig
	engine *assistant.Engine
	hub    *Hub
	store  *store.Store
	logger logging.Logger

	http *http.Server
}

// New builds the router and returns a ready-to-run Server.
func New(cfg config.ServerConfig, eng *assistant.Engine, hub *Hub, st *store.Store, reg *prometheus.Registry, logger logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:    cfg,
		engine: eng,
		hub:    hub,
		store:  st,
		logger: logging.OrNop(logger),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.EnableCORS {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		r.Use(cors.New(corsCfg))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if reg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/owners/:id")
	{
		api.POST("/messages", s.handleMessage)
		api.POST("/actions", s.handleAction)
		api.GET("/tasks", s.handleTasks)
		api.GET("/habits", s.handleHabits)
		api.GET("/focus", s.handleFocusStatus)
		api.GET("/reminder", s.handleIntervalStatus)
	}
	r.GET("/ws/:id", hub.HandleWS)

	s.http = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: r,
	}
	return s
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server: listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.hub.Close()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

type messageRequest struct {
	Text string `json:"text" binding:"required"`
}

type actionRequest struct {
	ActionID string `json:"action_id" binding:"required"`
	Text     string `json:"text"`
}

func (s *Server) handleMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	reply := s.engine.HandleTurn(c.Request.Context(), c.Param("id"), req.Text)
	c.JSON(http.StatusOK, gin.H{"reply": reply.Text, "intent": string(reply.Intent)})
}

func (s *Server) handleAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action_id is required"})
		return
	}
	reply := s.engine.HandleAction(c.Param("id"), req.ActionID, req.Text)
	c.JSON(http.StatusOK, gin.H{"reply": reply.Text})
}

func (s *Server) handleTasks(c *gin.Context) {
	tasks, err := s.store.ListTasks(c.Param("id"))
	if err != nil {
		s.logger.Error("server: list tasks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (s *Server) handleHabits(c *gin.Context) {
	habits, err := s.store.ListHabits(c.Param("id"))
	if err != nil {
		s.logger.Error("server: list habits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list habits"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

func (s *Server) handleFocusStatus(c *gin.Context) {
	status, ok := s.engine.Focus.Status(c.Param("id"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"active":            true,
		"phase":             string(status.Phase),
		"elapsed_seconds":   int(status.Elapsed.Seconds()),
		"remaining_seconds": int(status.Remaining.Seconds()),
	})
}

func (s *Server) handleIntervalStatus(c *gin.Context) {
	status, ok := s.engine.Reminders.IntervalStatus(c.Param("id"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"active":           true,
		"text":             status.Text,
		"interval_minutes": status.IntervalMinutes,
		"elapsed_seconds":  int(status.Elapsed.Seconds()),
		"firings":          status.Firings,
	})
}

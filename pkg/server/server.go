package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xlttj/whitelist/pkg/logging"
	"github.com/xlttj/whitelist/pkg/store"
	"github.com/xlttj/whitelist/pkg/whitelist"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Server exposes a whitelist over a local JSON API
type Server struct {
	list  *whitelist.List
	mutex sync.Mutex // The list is not safe for concurrent use
}

type entryResponse struct {
	ID        int64     `json:"id"`
	Hostname  string    `json:"hostname"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

type hostnameRequest struct {
	Hostname string `json:"hostname" binding:"required"`
}

func New(l *whitelist.List) *Server {
	return &Server{list: l}
}

// Handler builds the gin engine with all routes
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), LogMiddleware())

	engine.GET("/entries", s.listEntries)
	engine.POST("/entries", s.addEntry)
	engine.PUT("/entries/:id", s.editEntry)
	engine.POST("/entries/:id/toggle", s.toggleEntry)
	engine.DELETE("/entries/:id", s.deleteEntry)
	engine.GET("/hosts", s.enabledHosts)
	engine.GET("/info", s.info)

	return engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.LogInfo("Whitelist API listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.LogInfo("Shutting down whitelist API")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func toResponse(entries []store.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{ID: e.ID, Hostname: e.Hostname, Enabled: e.Enabled, CreatedAt: e.CreatedAt})
	}
	return out
}

func (s *Server) listEntries(c *gin.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Rows may have been changed by the TUI or CLI in another process
	if err := s.list.Refresh(); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(s.list.Entries()))
}

func (s *Server) addEntry(c *gin.Context) {
	var req hostnameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"hostname\": \"...\"}"})
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.list.Add(req.Hostname); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(s.list.Entries()))
}

func (s *Server) editEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req hostnameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"hostname\": \"...\"}"})
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.list.Refresh(); err != nil {
		s.fail(c, err)
		return
	}
	if _, exists := s.list.Get(id); !exists {
		s.fail(c, fmt.Errorf("%w: %d", whitelist.ErrEntryNotFound, id))
		return
	}
	if err := s.list.Edit(id, req.Hostname); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(s.list.Entries()))
}

func (s *Server) toggleEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.list.Refresh(); err != nil {
		s.fail(c, err)
		return
	}
	enabled, err := s.list.Toggle(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "enabled": enabled})
}

func (s *Server) deleteEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.list.Delete(id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// enabledHosts lists enabled hostnames one per line, for hosts file generators
func (s *Server) enabledHosts(c *gin.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.list.Refresh(); err != nil {
		s.fail(c, err)
		return
	}

	var b strings.Builder
	for _, e := range s.list.Entries() {
		if e.Enabled {
			b.WriteString(e.Hostname)
			b.WriteString("\n")
		}
	}
	c.String(http.StatusOK, b.String())
}

func (s *Server) info(c *gin.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.list.Refresh(); err != nil {
		s.fail(c, err)
		return
	}

	entries := s.list.Entries()
	enabled := 0
	for _, e := range entries {
		if e.Enabled {
			enabled++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"total_entries":   len(entries),
		"enabled_entries": enabled,
	})
}

// fail maps whitelist and store errors to status codes
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, whitelist.ErrInvalidHostname):
		status = http.StatusBadRequest
	case errors.Is(err, whitelist.ErrEntryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrHostnameExists):
		status = http.StatusConflict
	default:
		logging.LogError("Whitelist API request failed: %v", err)
	}
	c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return 0, false
	}
	return id, true
}

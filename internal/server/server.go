// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the knowledge service HTTP API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/knowledge-engine/internal/ingest"
	"github.com/pdiddy/knowledge-engine/internal/knowledge"
	"github.com/pdiddy/knowledge-engine/pkg/common/errors"
)

// Server holds the state for the REST API server.
type Server struct {
	store    *knowledge.Store
	pipeline *ingest.Pipeline
	router   *gin.Engine
	log      *slog.Logger
}

// New creates a Server with its routes registered.
func New(store *knowledge.Store, pipeline *ingest.Pipeline, logger *slog.Logger) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		store:    store,
		pipeline: pipeline,
		router:   r,
		log:      logger,
	}
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler returns the underlying handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	api.POST("/knowledge", s.createKnowledge)
	api.GET("/knowledge", s.listKnowledge)
	api.GET("/knowledge/:id", s.getKnowledge)
	api.GET("/knowledge/:id/download", s.downloadKnowledgeFile)
	api.GET("/knowledge/:id/recommendations", s.getRecommendations)
	api.GET("/knowledge/author/:authorId", s.getKnowledgeByAuthor)
}

// handleError logs the failure with its operation context and writes
// the mapped response. Not-found responses carry an empty body; every
// other failure gets a stable code and message, never the raw error.
func (s *Server) handleError(c *gin.Context, operation string, err error) {
	appErr := errors.Map(err)
	s.log.Error("request failed",
		"operation", operation,
		"path", c.Request.URL.Path,
		"status", appErr.Status,
		"error", err,
	)
	if appErr.Status == http.StatusNotFound {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(appErr.Status, gin.H{"error": appErr.Code, "message": appErr.Message})
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pdiddy/knowledge-engine/pkg/common/errors"
	"github.com/pdiddy/knowledge-engine/pkg/types"
)

const (
	defaultPageSize    = 10
	defaultRecommended = 5
)

type knowledgeRequest struct {
	URL string `json:"url"`
}

// createKnowledge ingests the landing page named in the request body
// and returns the created record.
func (s *Server) createKnowledge(c *gin.Context) {
	var req knowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, "create", fmt.Errorf("decoding request body: %w", errors.ErrInvalidInput))
		return
	}
	if !validSourceURL(req.URL) {
		s.handleError(c, "create", fmt.Errorf("url %q is not a valid http(s) URL: %w", req.URL, errors.ErrInvalidInput))
		return
	}

	created, err := s.pipeline.CreateFromURL(c.Request.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		s.handleError(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// getKnowledge returns a single record by identifier.
func (s *Server) getKnowledge(c *gin.Context) {
	id := c.Param("id")
	k, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, k)
}

// downloadKnowledgeFile streams the stored attachment. The filename is
// a random UUID; the service never learns the original name.
func (s *Server) downloadKnowledgeFile(c *gin.Context) {
	id := c.Param("id")
	file, err := s.store.GetFile(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, "download", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", uuid.NewString()+".pdf"))
	c.Data(http.StatusOK, "application/octet-stream", file)
}

// listKnowledge returns one page of records, ranked by relevance when
// a search query is present and by creation year otherwise.
func (s *Server) listKnowledge(c *gin.Context) {
	page := intQuery(c, "page", 0)
	size := intQuery(c, "size", defaultPageSize)
	search := strings.TrimSpace(c.Query("search"))

	var (
		results []types.Knowledge
		err     error
	)
	if search != "" {
		results, err = s.store.Search(c.Request.Context(), search, page, size)
	} else {
		results, err = s.store.List(c.Request.Context(), page, size)
	}
	if err != nil {
		s.handleError(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, emptyAsList(results))
}

// getKnowledgeByAuthor returns one page of records for an author.
func (s *Server) getKnowledgeByAuthor(c *gin.Context) {
	authorID := c.Param("authorId")
	page := intQuery(c, "page", 0)
	size := intQuery(c, "size", defaultPageSize)

	results, err := s.store.ListByAuthor(c.Request.Context(), authorID, page, size)
	if err != nil {
		s.handleError(c, "list-by-author", err)
		return
	}
	c.JSON(http.StatusOK, emptyAsList(results))
}

// getRecommendations returns records ranked by shared-author count.
func (s *Server) getRecommendations(c *gin.Context) {
	id := c.Param("id")
	limit := intQuery(c, "limit", defaultRecommended)

	results, err := s.store.Recommend(c.Request.Context(), id, limit)
	if err != nil {
		s.handleError(c, "recommend", err)
		return
	}
	if results == nil {
		results = []types.Recommendation{}
	}
	c.JSON(http.StatusOK, results)
}

// intQuery parses an integer query parameter, falling back to def on
// absence or malformed input.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// validSourceURL accepts absolute http(s) URLs with a host.
func validSourceURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func emptyAsList(results []types.Knowledge) []types.Knowledge {
	if results == nil {
		return []types.Knowledge{}
	}
	return results
}

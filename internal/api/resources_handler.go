// File path: internal/api/resources_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/imashishkh/commerce-kb/internal/common"
	"github.com/imashishkh/commerce-kb/internal/kb"
	"github.com/imashishkh/commerce-kb/internal/relevance"
	"github.com/imashishkh/commerce-kb/internal/sqlite"
)

type createResourceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source,omitempty"`
}

type createResourceResponse struct {
	Resource kb.Resource `json:"resource"`
	Indexed  bool        `json:"indexed"`
}

func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req createResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, errors.New("title required"))
		return
	}
	res := kb.Resource{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Content:     req.Content,
		Tags:        req.Tags,
		DateAdded:   time.Now().UTC(),
	}
	kb.Annotate(&res)
	if err := s.saveResource(r.Context(), res); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	indexed := false
	if s.knowledge != nil && strings.TrimSpace(res.Content) != "" {
		source := req.Source
		if source == "" {
			source = "api"
		}
		if _, err := s.knowledge.AddKnowledge(r.Context(), "resource", source, res.ID, res.Content); err != nil {
			logger.Warn("api: resource indexing failed", "resource", res.ID, "error", err)
		} else {
			indexed = true
		}
	}
	logger.Info("api: resource created", "resource", res.ID, "category", res.Category, "indexed", indexed)
	writeJSON(w, http.StatusCreated, createResourceResponse{Resource: res, Indexed: indexed})
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	var resources []kb.Resource
	if category != "" {
		resources = s.collection.ByCategory(category)
	} else {
		resources = s.collection.All()
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"resources":  resources,
		"count":      len(resources),
		"categories": s.collection.Categories(),
	})
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, ok := s.collection.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, sqlite.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.catalog != nil {
		if err := s.catalog.DeleteResource(r.Context(), id); err != nil {
			if errors.Is(err, sqlite.ErrNotFound) {
				writeError(w, http.StatusNotFound, err)
				return
			}
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	if err := s.collection.Remove(id); err != nil && s.catalog == nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	common.Logger().Info("api: resource deleted", "resource", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleRecordAccess bumps the usage counter in both stores.
func (s *Server) handleRecordAccess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	now := time.Now().UTC()
	if s.catalog != nil {
		if err := s.catalog.RecordAccess(r.Context(), id, now); err != nil {
			if errors.Is(err, sqlite.ErrNotFound) {
				writeError(w, http.StatusNotFound, err)
				return
			}
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	if err := s.collection.Touch(id, now); err != nil && s.catalog == nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	res, _ := s.collection.Get(id)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":            id,
		"access_count":  res.AccessCount,
		"last_accessed": res.LastAccessed,
	})
}

func (s *Server) handleRelatedResources(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	target, ok := s.collection.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, sqlite.ErrNotFound)
		return
	}
	related := relevance.Related(target, s.collection.All())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"related": related,
	})
}

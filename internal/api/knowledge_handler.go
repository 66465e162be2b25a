// File path: internal/api/knowledge_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/imashishkh/commerce-kb/internal/knowledge"
)

var errKnowledgeUnavailable = errors.New("knowledge backend unavailable")

type addKnowledgeRequest struct {
	Kind       string `json:"kind,omitempty"`
	Source     string `json:"source,omitempty"`
	ResourceID string `json:"resource_id,omitempty"`
	Text       string `json:"text"`
}

func (s *Server) handleAddKnowledge(w http.ResponseWriter, r *http.Request) {
	if s.knowledge == nil {
		writeError(w, http.StatusServiceUnavailable, errKnowledgeUnavailable)
		return
	}
	var req addKnowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, errors.New("text required"))
		return
	}
	kind := req.Kind
	if kind == "" {
		kind = "note"
	}
	chunks, err := s.knowledge.AddKnowledge(r.Context(), kind, req.Source, req.ResourceID, req.Text)
	if err != nil {
		writeKnowledgeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"kind":   kind,
		"chunks": chunks,
	})
}

func (s *Server) handleKnowledgeSearch(w http.ResponseWriter, r *http.Request) {
	if s.knowledge == nil {
		writeError(w, http.StatusServiceUnavailable, errKnowledgeUnavailable)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing q parameter"))
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	kind := r.URL.Query().Get("kind")
	source := r.URL.Query().Get("source")
	results, err := s.knowledge.Search(r.Context(), query, limit, kind, source)
	if err != nil {
		writeKnowledgeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
	})
}

type contentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleKnowledgeExtract(w http.ResponseWriter, r *http.Request) {
	if s.knowledge == nil {
		writeError(w, http.StatusServiceUnavailable, errKnowledgeUnavailable)
		return
	}
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, errors.New("content required"))
		return
	}
	insights, err := s.knowledge.Extract(r.Context(), req.Content)
	if err != nil {
		writeKnowledgeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handleKnowledgeSummarize(w http.ResponseWriter, r *http.Request) {
	if s.knowledge == nil {
		writeError(w, http.StatusServiceUnavailable, errKnowledgeUnavailable)
		return
	}
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, errors.New("content required"))
		return
	}
	summary, err := s.knowledge.Summarize(r.Context(), req.Content)
	if err != nil {
		writeKnowledgeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func writeKnowledgeError(w http.ResponseWriter, err error) {
	if errors.Is(err, knowledge.ErrNotInitialized) {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

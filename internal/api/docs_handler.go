// File path: internal/api/docs_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/imashishkh/commerce-kb/internal/docs"
)

type componentDocRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleComponentDoc(w http.ResponseWriter, r *http.Request) {
	var req componentDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, errors.New("name required"))
		return
	}
	doc := docs.ComponentDoc(req.Name, req.Type, req.Description)
	writeJSON(w, http.StatusOK, map[string]string{
		"name":     req.Name,
		"markdown": doc,
	})
}

type apiDocRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAPIDoc(w http.ResponseWriter, r *http.Request) {
	var req apiDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, errors.New("name required"))
		return
	}
	doc := docs.APIDoc(req.Name)
	writeJSON(w, http.StatusOK, map[string]string{
		"name":     req.Name,
		"markdown": doc,
	})
}

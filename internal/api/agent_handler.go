// File path: internal/api/agent_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/imashishkh/commerce-kb/internal/common"
)

type agentRunRequest struct {
	Title   string `json:"title,omitempty"`
	Source  string `json:"source,omitempty"`
	Content string `json:"content"`
}

func (s *Server) handleAgentRun(w http.ResponseWriter, r *http.Request) {
	if s.agent == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("agent unavailable"))
		return
	}
	var req agentRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, errors.New("content required"))
		return
	}
	report, err := s.agent.RunIngest(r.Context(), req.Title, req.Source, req.Content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	common.Logger().Info("api: agent run complete", "resource", report.ResourceID)
	writeJSON(w, http.StatusOK, report)
}

// File path: internal/api/logs_handler.go
package api

import (
	"net/http"

	"github.com/imashishkh/commerce-kb/internal/common"
)

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := common.LogEntries()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// File path: internal/api/search_handler.go
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/imashishkh/commerce-kb/internal/common"
	"github.com/imashishkh/commerce-kb/internal/relevance"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing q parameter"))
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	results := relevance.RankByQuery(query, s.collection.All(), limit)
	logger.Debug("api: search served", "query", query, "results", len(results))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
	})
}

func (s *Server) handleProductRecommendations(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing q parameter"))
		return
	}
	results := relevance.RecommendProducts(query, s.collection.All())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":           query,
		"recommendations": results,
	})
}

func (s *Server) handleStageRecommendations(w http.ResponseWriter, r *http.Request) {
	stageName := strings.TrimSpace(r.URL.Query().Get("stage"))
	if stageName == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing stage parameter"))
		return
	}
	stage := relevance.ResolveStage(stageName)
	results := relevance.StageRecommendations(stageName, s.collection.All())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stage":           stage.Name,
		"recommendations": results,
	})
}

func (s *Server) handleBestPractices(w http.ResponseWriter, r *http.Request) {
	areaName := strings.TrimSpace(r.URL.Query().Get("area"))
	if areaName == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing area parameter"))
		return
	}
	area := relevance.ResolveArea(areaName)
	results := relevance.FindBestPractices(areaName, s.collection.All())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"area":      area.Name,
		"practices": results,
	})
}

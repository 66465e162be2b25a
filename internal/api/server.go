// File path: internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/imashishkh/commerce-kb/internal/agent"
	"github.com/imashishkh/commerce-kb/internal/common"
	"github.com/imashishkh/commerce-kb/internal/kb"
	"github.com/imashishkh/commerce-kb/internal/knowledge"
	"github.com/imashishkh/commerce-kb/internal/llm"
	"github.com/imashishkh/commerce-kb/internal/memory"
	"github.com/imashishkh/commerce-kb/internal/sqlite"
	"github.com/imashishkh/commerce-kb/internal/vector"
)

type Server struct {
	router     chi.Router
	catalog    *sqlite.Store
	collection *memory.Collection
	knowledge  *knowledge.Manager
	provider   llm.Provider
	agent      *agent.Runner
	vector     vector.Store
}

// NewServer loads the catalog into the in-memory collection and wires the
// knowledge manager and ingestion agent. A missing vector backend downgrades
// the knowledge routes but never blocks startup.
func NewServer(ctx context.Context, catalog *sqlite.Store, vectorClient vector.Store, provider llm.Provider) (*Server, error) {
	logger := common.Logger()
	collection := memory.NewCollection()
	if catalog != nil {
		resources, err := catalog.ListResources(ctx)
		if err != nil {
			logger.Error("api: failed to load catalog", "error", err)
			return nil, err
		}
		collection.Replace(resources)
		logger.Info("api: catalog loaded", "resources", collection.Len())
	}
	providerName := "none"
	if provider != nil {
		providerName = provider.Name()
	}
	logger.Info(
		"api: building server",
		"provider", providerName,
		"vector_available", vectorClient != nil && vectorClient.Available(),
	)
	srv := &Server{
		router:     chi.NewRouter(),
		catalog:    catalog,
		collection: collection,
		provider:   provider,
		vector:     vectorClient,
	}
	if provider != nil && vectorClient != nil {
		manager := knowledge.NewManager(provider, vectorClient)
		if err := manager.Init(ctx); err != nil {
			logger.Warn("api: knowledge manager unavailable", "error", err)
		}
		srv.knowledge = manager
		srv.agent = agent.NewRunner(manager, srv.saveResource)
	}
	srv.routes()
	logger.Info("api: server ready")
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Collection exposes the in-memory resource collection.
func (s *Server) Collection() *memory.Collection {
	if s == nil {
		return nil
	}
	return s.collection
}

func (s *Server) routes() {
	logger := common.Logger()
	logger.Info("api: configuring routes")
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/resources", s.handleCreateResource)
	s.router.Get("/v1/resources", s.handleListResources)
	s.router.Get("/v1/resources/{id}", s.handleGetResource)
	s.router.Delete("/v1/resources/{id}", s.handleDeleteResource)
	s.router.Post("/v1/resources/{id}/access", s.handleRecordAccess)
	s.router.Get("/v1/resources/{id}/related", s.handleRelatedResources)
	s.router.Get("/v1/search", s.handleSearch)
	s.router.Get("/v1/recommendations/products", s.handleProductRecommendations)
	s.router.Get("/v1/recommendations/stage", s.handleStageRecommendations)
	s.router.Get("/v1/best-practices", s.handleBestPractices)
	s.router.Post("/v1/docs/component", s.handleComponentDoc)
	s.router.Post("/v1/docs/api", s.handleAPIDoc)
	s.router.Post("/v1/knowledge", s.handleAddKnowledge)
	s.router.Get("/v1/knowledge/search", s.handleKnowledgeSearch)
	s.router.Post("/v1/knowledge/extract", s.handleKnowledgeExtract)
	s.router.Post("/v1/knowledge/summarize", s.handleKnowledgeSummarize)
	s.router.Post("/v1/agent/run", s.handleAgentRun)
	s.router.Get("/v1/logs", s.handleLogs)
}

// saveResource writes through to the catalog first, then the collection, so a
// storage failure never leaves a resource visible in memory only.
func (s *Server) saveResource(ctx context.Context, res kb.Resource) error {
	if s.catalog != nil {
		if err := s.catalog.SaveResource(ctx, res); err != nil {
			return err
		}
	}
	s.collection.Add(res)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

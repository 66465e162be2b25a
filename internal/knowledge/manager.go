// File path: internal/knowledge/manager.go

// Package knowledge coordinates text chunking, embedding, and vector storage
// behind a single facade used by the API layer.
package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"

	"github.com/imashishkh/commerce-kb/internal/common"
	"github.com/imashishkh/commerce-kb/internal/llm"
	"github.com/imashishkh/commerce-kb/internal/vector"
)

// ErrNotInitialized is returned when a manager method is called before Init.
var ErrNotInitialized = errors.New("knowledge manager not initialized")

const defaultSearchLimit = 5

type Manager struct {
	provider llm.Provider
	store    vector.Store
	splitter textsplitter.RecursiveCharacter

	mu          sync.RWMutex
	initialized bool
}

// Result is one search hit from the vector collection.
type Result struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Score      float32 `json:"score"`
	Kind       string  `json:"kind,omitempty"`
	Source     string  `json:"source,omitempty"`
	ResourceID string  `json:"resource_id,omitempty"`
}

// Insights is the structured extraction produced from free-form content.
type Insights struct {
	Category string   `json:"category"`
	Topics   []string `json:"topics"`
	Entities []string `json:"entities"`
	Summary  string   `json:"summary"`
}

func NewManager(provider llm.Provider, store vector.Store) *Manager {
	return &Manager{
		provider: provider,
		store:    store,
		splitter: newSplitter(),
	}
}

// Init probes the embedding dimension and ensures the vector collection
// exists. It is safe to call more than once.
func (m *Manager) Init(ctx context.Context) error {
	if m == nil || m.provider == nil || m.store == nil {
		return errors.New("knowledge manager misconfigured")
	}
	m.mu.RLock()
	ready := m.initialized
	m.mu.RUnlock()
	if ready {
		return nil
	}
	logger := common.Logger()
	probe, err := m.provider.Embed(ctx, []string{"dimension probe"})
	if err != nil {
		return fmt.Errorf("probe embedding dimension: %w", err)
	}
	dim := vector.VectorDimension(probe)
	if dim == 0 {
		return errors.New("embedding provider returned empty vector")
	}
	if err := m.store.EnsureCollection(ctx, dim); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	m.mu.Lock()
	m.initialized = true
	m.mu.Unlock()
	logger.Info("knowledge: manager initialized", "provider", m.provider.Name(), "dimension", dim)
	return nil
}

func (m *Manager) ready() error {
	if m == nil {
		return ErrNotInitialized
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.initialized {
		return ErrNotInitialized
	}
	return nil
}

// AddKnowledge chunks the text, embeds every chunk, and upserts the batch in
// one call so a failed embedding never leaves partial chunks behind. It
// returns the number of chunks stored.
func (m *Manager) AddKnowledge(ctx context.Context, kind, source, resourceID, text string) (int, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}
	chunks, err := splitText(m.splitter, text)
	if err != nil {
		return 0, fmt.Errorf("split text: %w", err)
	}
	if len(chunks) == 0 {
		return 0, errors.New("no content to index")
	}
	vectors, err := m.provider.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}
	batch := make([]vector.Chunk, 0, len(chunks))
	baseID := uuid.NewString()
	for i, chunk := range chunks {
		batch = append(batch, vector.Chunk{
			ID:         fmt.Sprintf("%s-%d", baseID, i),
			Text:       chunk,
			Kind:       kind,
			Source:     source,
			ResourceID: resourceID,
		})
	}
	if err := m.store.UpsertChunks(ctx, batch, vectors); err != nil {
		return 0, fmt.Errorf("upsert chunks: %w", err)
	}
	common.Logger().Info("knowledge: content indexed", "kind", kind, "source", source, "chunks", len(batch))
	return len(batch), nil
}

// Search embeds the query and runs a nearest-neighbour lookup, optionally
// restricted by kind and source metadata.
func (m *Manager) Search(ctx context.Context, query string, limit int, kind, source string) ([]Result, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, errors.New("query required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	vectors, err := m.provider.Embed(ctx, []string{trimmed})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, errors.New("embedding provider returned no vectors")
	}
	filter := map[string]interface{}{}
	if strings.TrimSpace(kind) != "" {
		filter["kind"] = kind
	}
	if strings.TrimSpace(source) != "" {
		filter["source"] = source
	}
	hits, err := m.store.Search(ctx, vectors[0], limit, filter)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, resultFromHit(hit))
	}
	return results, nil
}

func resultFromHit(hit vector.SearchResult) Result {
	result := Result{ID: hit.ID, Score: hit.Score}
	if text, ok := hit.Payload["content"].(string); ok {
		result.Text = text
	}
	if kind, ok := hit.Payload["kind"].(string); ok {
		result.Kind = kind
	}
	if source, ok := hit.Payload["source"].(string); ok {
		result.Source = source
	}
	if resourceID, ok := hit.Payload["resource_id"].(string); ok {
		result.ResourceID = resourceID
	}
	return result
}

const extractSystemPrompt = `You extract structured insights from e-commerce documentation.
Respond with a single JSON object containing exactly these fields:
"category" (string), "topics" (array of strings), "entities" (array of strings), "summary" (string).
Respond with JSON only, no prose.`

// Extract asks the chat model for structured insights and parses the reply,
// tolerating markdown code fences around the JSON.
func (m *Manager) Extract(ctx context.Context, content string) (Insights, error) {
	if err := m.ready(); err != nil {
		return Insights{}, err
	}
	if strings.TrimSpace(content) == "" {
		return Insights{}, errors.New("content required")
	}
	reply, err := m.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: extractSystemPrompt},
		{Role: "user", Content: content},
	})
	if err != nil {
		return Insights{}, fmt.Errorf("extract insights: %w", err)
	}
	insights, err := parseInsights(reply)
	if err != nil {
		common.Logger().Warn("knowledge: extraction reply was not valid JSON", "error", err)
		return Insights{Summary: strings.TrimSpace(reply)}, nil
	}
	return insights, nil
}

func parseInsights(reply string) (Insights, error) {
	cleaned := strings.TrimSpace(reply)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	var insights Insights
	if err := json.Unmarshal([]byte(cleaned), &insights); err != nil {
		return Insights{}, err
	}
	return insights, nil
}

const summarizeSystemPrompt = `You summarize e-commerce documentation for developers.
Reply with a concise summary of at most three sentences.`

// Summarize produces a short natural-language summary of the content.
func (m *Manager) Summarize(ctx context.Context, content string) (string, error) {
	if err := m.ready(); err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", errors.New("content required")
	}
	reply, err := m.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: summarizeSystemPrompt},
		{Role: "user", Content: content},
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

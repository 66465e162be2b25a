// File path: internal/api/server_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imashishkh/commerce-kb/internal/kb"
	"github.com/imashishkh/commerce-kb/internal/llm"
	"github.com/imashishkh/commerce-kb/internal/sqlite"
	"github.com/imashishkh/commerce-kb/internal/vector"
)

type testProvider struct {
	chatReply string
}

func (p *testProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	return p.chatReply, nil
}

func (p *testProvider) Embed(ctx context.Context, input []string) ([][]float32, error) {
	vectors := make([][]float32, len(input))
	for i := range input {
		vectors[i] = []float32{0.1, 0.2, 0.3}
	}
	return vectors, nil
}

func (p *testProvider) Name() string { return "test" }

type testVectorStore struct {
	chunks []vector.Chunk
	hits   []vector.SearchResult
}

func (s *testVectorStore) Available() bool           { return true }
func (s *testVectorStore) SetCollection(name string) {}
func (s *testVectorStore) Collection() string        { return "test" }

func (s *testVectorStore) EnsureCollection(ctx context.Context, dim int) error { return nil }

func (s *testVectorStore) UpsertChunks(ctx context.Context, chunks []vector.Chunk, vectors [][]float32) error {
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *testVectorStore) Search(ctx context.Context, vec []float32, limit int, filter map[string]interface{}) ([]vector.SearchResult, error) {
	return s.hits, nil
}

func newTestServer(t *testing.T) (*Server, *testVectorStore) {
	t.Helper()
	cfg, err := sqlite.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Path = filepath.Join(t.TempDir(), "catalog.db")
	catalog, err := sqlite.OpenWithConfig(cfg)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { catalog.Close() })
	store := &testVectorStore{}
	provider := &testProvider{
		chatReply: `{"category":"Payment Solutions","topics":["checkout"],"entities":["Stripe"],"summary":"Checkout notes."}`,
	}
	srv, err := NewServer(context.Background(), catalog, store, provider)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, store
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

func createResource(t *testing.T, srv *Server, title, content string, tags []string) kb.Resource {
	t.Helper()
	rec := doRequest(t, srv, http.MethodPost, "/v1/resources", map[string]interface{}{
		"title":   title,
		"content": content,
		"tags":    tags,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp createResourceResponse
	decodeBody(t, rec, &resp)
	return resp.Resource
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestCreateResourceClassifiesAndIndexes(t *testing.T) {
	srv, store := newTestServer(t)
	res := createResource(t, srv, "Stripe checkout guide", "Integrate stripe payment and checkout flows.", []string{"payments"})
	if res.ID == "" {
		t.Fatal("expected generated id")
	}
	if res.Category != kb.CategoryPayment {
		t.Fatalf("expected payment category, got %q", res.Category)
	}
	if res.PaymentGateway != kb.GatewayStripe {
		t.Fatalf("expected stripe gateway, got %q", res.PaymentGateway)
	}
	if len(store.chunks) == 0 {
		t.Fatal("expected content to be indexed")
	}
	if store.chunks[0].ResourceID != res.ID {
		t.Fatalf("chunk must reference resource")
	}
}

func TestCreateResourceRequiresTitle(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/v1/resources", map[string]string{"content": "x"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestResourceLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	res := createResource(t, srv, "Order tracking", "Track order status and returns.", nil)

	rec := doRequest(t, srv, http.MethodGet, "/v1/resources/"+res.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get returned %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodGet, "/v1/resources?category="+strings.ReplaceAll(res.Category, " ", "%20"), nil)
	var listResp struct {
		Count int `json:"count"`
	}
	decodeBody(t, rec, &listResp)
	if listResp.Count != 1 {
		t.Fatalf("expected 1 resource in category, got %d", listResp.Count)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/v1/resources/"+res.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete returned %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/v1/resources/"+res.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestRecordAccessEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	res := createResource(t, srv, "Catalog sync", "inventory sync notes", nil)
	rec := doRequest(t, srv, http.MethodPost, "/v1/resources/"+res.ID+"/access", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("access returned %d", rec.Code)
	}
	var resp struct {
		AccessCount int `json:"access_count"`
	}
	decodeBody(t, rec, &resp)
	if resp.AccessCount != 1 {
		t.Fatalf("expected access count 1, got %d", resp.AccessCount)
	}
	rec = doRequest(t, srv, http.MethodPost, "/v1/resources/missing/access", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing resource, got %d", rec.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	createResource(t, srv, "Stripe checkout guide", "payment flows", nil)
	createResource(t, srv, "Design tokens", "color palette", nil)

	rec := doRequest(t, srv, http.MethodGet, "/v1/search?q=stripe", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("search returned %d", rec.Code)
	}
	var resp struct {
		Results []kb.ScoredResource `json:"results"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Results) == 0 || resp.Results[0].Resource.Title != "Stripe checkout guide" {
		t.Fatalf("unexpected ranking: %+v", resp.Results)
	}

	rec = doRequest(t, srv, http.MethodGet, "/v1/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without query, got %d", rec.Code)
	}
}

func TestRelatedEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	a := createResource(t, srv, "Product catalog schema", "product inventory sku design", nil)
	createResource(t, srv, "Product merchandising", "product inventory sku pricing", nil)

	rec := doRequest(t, srv, http.MethodGet, "/v1/resources/"+a.ID+"/related", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("related returned %d", rec.Code)
	}
	var resp struct {
		Related []kb.ScoredResource `json:"related"`
	}
	decodeBody(t, rec, &resp)
	for _, item := range resp.Related {
		if item.Resource.ID == a.ID {
			t.Fatal("related must exclude the target itself")
		}
	}
}

func TestStageRecommendationsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	createResource(t, srv, "Component library", "component code pattern library framework api implementation", nil)

	rec := doRequest(t, srv, http.MethodGet, "/v1/recommendations/stage?stage=development", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stage returned %d", rec.Code)
	}
	var resp struct {
		Stage           string              `json:"stage"`
		Recommendations []kb.ScoredResource `json:"recommendations"`
	}
	decodeBody(t, rec, &resp)
	if resp.Stage != "development" {
		t.Fatalf("expected development stage, got %q", resp.Stage)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(resp.Recommendations))
	}
}

func TestBestPracticesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	createResource(t, srv, "Checkout best practice", "best practice for checkout conversion funnels", nil)
	createResource(t, srv, "Random note", "nothing relevant here", nil)

	rec := doRequest(t, srv, http.MethodGet, "/v1/best-practices?area=checkout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("best practices returned %d", rec.Code)
	}
	var resp struct {
		Area      string        `json:"area"`
		Practices []kb.Resource `json:"practices"`
	}
	decodeBody(t, rec, &resp)
	if resp.Area != "checkout" || len(resp.Practices) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestDocsEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/v1/docs/component", map[string]string{
		"name": "CartSummary",
		"type": "cart",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("component doc returned %d", rec.Code)
	}
	var resp struct {
		Markdown string `json:"markdown"`
	}
	decodeBody(t, rec, &resp)
	if !strings.HasPrefix(resp.Markdown, "# CartSummary") {
		t.Fatalf("unexpected markdown: %q", resp.Markdown[:40])
	}

	rec = doRequest(t, srv, http.MethodPost, "/v1/docs/api", map[string]string{"name": "Payments API"})
	if rec.Code != http.StatusOK {
		t.Fatalf("api doc returned %d", rec.Code)
	}
	decodeBody(t, rec, &resp)
	if !strings.Contains(resp.Markdown, "/api/payments/intents") {
		t.Fatal("expected payment endpoints in markdown")
	}

	rec = doRequest(t, srv, http.MethodPost, "/v1/docs/component", map[string]string{"type": "cart"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without name, got %d", rec.Code)
	}
}

func TestKnowledgeEndpoints(t *testing.T) {
	srv, store := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/v1/knowledge", map[string]string{
		"text":   "Shipping carriers and delivery SLAs.",
		"source": "manual",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add knowledge returned %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.chunks) == 0 {
		t.Fatal("expected chunks stored")
	}

	store.hits = []vector.SearchResult{
		{ID: "c-1", Score: 0.8, Payload: map[string]interface{}{"content": "Shipping carriers", "kind": "note"}},
	}
	rec = doRequest(t, srv, http.MethodGet, "/v1/knowledge/search?q=shipping", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("knowledge search returned %d", rec.Code)
	}
	var searchResp struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	decodeBody(t, rec, &searchResp)
	if len(searchResp.Results) != 1 || searchResp.Results[0].ID != "c-1" {
		t.Fatalf("unexpected results: %+v", searchResp.Results)
	}

	rec = doRequest(t, srv, http.MethodPost, "/v1/knowledge/extract", map[string]string{"content": "stripe docs"})
	if rec.Code != http.StatusOK {
		t.Fatalf("extract returned %d", rec.Code)
	}
	var insights struct {
		Category string `json:"category"`
	}
	decodeBody(t, rec, &insights)
	if insights.Category != "Payment Solutions" {
		t.Fatalf("unexpected insights: %+v", insights)
	}

	rec = doRequest(t, srv, http.MethodPost, "/v1/knowledge/summarize", map[string]string{"content": "long text"})
	if rec.Code != http.StatusOK {
		t.Fatalf("summarize returned %d", rec.Code)
	}
}

func TestAgentRunEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/v1/agent/run", map[string]string{
		"source":  "import",
		"content": "Stripe checkout payment integration notes.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("agent run returned %d: %s", rec.Code, rec.Body.String())
	}
	var report struct {
		ResourceID string   `json:"resource_id"`
		Category   string   `json:"category"`
		Steps      []string `json:"steps"`
	}
	decodeBody(t, rec, &report)
	if report.ResourceID == "" || report.Category != kb.CategoryPayment {
		t.Fatalf("unexpected report: %+v", report)
	}
	rec = doRequest(t, srv, http.MethodGet, "/v1/resources/"+report.ResourceID, nil)
	if rec.Code != http.StatusOK {
		t.Fatal("agent-created resource must be retrievable")
	}
}

func TestLogsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/v1/logs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logs returned %d", rec.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	decodeBody(t, rec, &resp)
	if resp.Count == 0 {
		t.Fatal("expected captured log entries")
	}
}

func TestServerReloadsCatalogOnStartup(t *testing.T) {
	cfg, err := sqlite.LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Path = filepath.Join(t.TempDir(), "catalog.db")
	catalog, err := sqlite.OpenWithConfig(cfg)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { catalog.Close() })

	provider := &testProvider{chatReply: "{}"}
	store := &testVectorStore{}
	srv, err := NewServer(context.Background(), catalog, store, provider)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	res := createResource(t, srv, "Persisted", "content body", nil)

	reloaded, err := NewServer(context.Background(), catalog, store, provider)
	if err != nil {
		t.Fatalf("reload server: %v", err)
	}
	if _, ok := reloaded.Collection().Get(res.ID); !ok {
		t.Fatal("resource must survive a server restart")
	}
}

// File path: internal/agent/graph_test.go
package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/imashishkh/commerce-kb/internal/kb"
	"github.com/imashishkh/commerce-kb/internal/knowledge"
	"github.com/imashishkh/commerce-kb/internal/llm"
	"github.com/imashishkh/commerce-kb/internal/vector"
)

type stubProvider struct {
	chatReply string
	chatErr   error
}

func (s *stubProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	if s.chatErr != nil {
		return "", s.chatErr
	}
	return s.chatReply, nil
}

func (s *stubProvider) Embed(ctx context.Context, input []string) ([][]float32, error) {
	vectors := make([][]float32, len(input))
	for i := range input {
		vectors[i] = []float32{0.1, 0.2}
	}
	return vectors, nil
}

func (s *stubProvider) Name() string { return "stub" }

type stubStore struct {
	upserted []vector.Chunk
}

func (s *stubStore) Available() bool           { return true }
func (s *stubStore) SetCollection(name string) {}
func (s *stubStore) Collection() string        { return "test" }

func (s *stubStore) EnsureCollection(ctx context.Context, dim int) error { return nil }

func (s *stubStore) UpsertChunks(ctx context.Context, chunks []vector.Chunk, vectors [][]float32) error {
	s.upserted = append(s.upserted, chunks...)
	return nil
}

func (s *stubStore) Search(ctx context.Context, vec []float32, limit int, filter map[string]interface{}) ([]vector.SearchResult, error) {
	return nil, nil
}

func newTestRunner(t *testing.T, provider llm.Provider, save SaveFunc) (*Runner, *stubStore) {
	t.Helper()
	store := &stubStore{}
	manager := knowledge.NewManager(provider, store)
	if err := manager.Init(context.Background()); err != nil {
		t.Fatalf("init manager: %v", err)
	}
	return NewRunner(manager, save), store
}

func TestRunIngestFullPipeline(t *testing.T) {
	provider := &stubProvider{
		chatReply: `{"category":"Payment Solutions","topics":["checkout","stripe"],"entities":["Stripe"],"summary":"Stripe checkout integration guide."}`,
	}
	var saved []kb.Resource
	runner, store := newTestRunner(t, provider, func(ctx context.Context, res kb.Resource) error {
		saved = append(saved, res)
		return nil
	})

	report, err := runner.RunIngest(context.Background(), "", "import", "How to integrate Stripe checkout payment flows.")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(report.Steps) != 3 || report.Steps[0] != "extract" || report.Steps[2] != "store" {
		t.Fatalf("unexpected step trace: %v", report.Steps)
	}
	if report.Category != kb.CategoryPayment {
		t.Fatalf("expected payment category, got %q", report.Category)
	}
	if report.Title != "Stripe checkout integration guide" {
		t.Fatalf("title must come from the extracted summary, got %q", report.Title)
	}
	if report.Chunks < 1 {
		t.Fatalf("expected at least one indexed chunk")
	}
	if len(saved) != 1 {
		t.Fatalf("expected one saved resource, got %d", len(saved))
	}
	if saved[0].Category != kb.CategoryPayment || saved[0].PaymentGateway != kb.GatewayStripe {
		t.Fatalf("resource not annotated: %+v", saved[0])
	}
	if len(store.upserted) == 0 {
		t.Fatalf("expected chunks in vector store")
	}
	if store.upserted[0].ResourceID != report.ResourceID {
		t.Fatalf("chunk must reference the stored resource")
	}
}

func TestRunIngestExplicitTitleWins(t *testing.T) {
	provider := &stubProvider{chatReply: `{"category":"","topics":[],"entities":[],"summary":"Some summary."}`}
	runner, _ := newTestRunner(t, provider, nil)
	report, err := runner.RunIngest(context.Background(), "Inventory sync", "manual", "inventory catalog sync notes")
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if report.Title != "Inventory sync" {
		t.Fatalf("explicit title must win, got %q", report.Title)
	}
}

func TestRunIngestRejectsEmptyContent(t *testing.T) {
	runner, _ := newTestRunner(t, &stubProvider{chatReply: "{}"}, nil)
	if _, err := runner.RunIngest(context.Background(), "t", "s", "  "); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestRunIngestSaveFailureAborts(t *testing.T) {
	provider := &stubProvider{chatReply: `{"category":"","topics":[],"entities":[],"summary":"s."}`}
	runner, store := newTestRunner(t, provider, func(ctx context.Context, res kb.Resource) error {
		return errors.New("catalog down")
	})
	if _, err := runner.RunIngest(context.Background(), "t", "s", "content"); err == nil {
		t.Fatal("expected error when save fails")
	}
	if len(store.upserted) != 0 {
		t.Fatalf("failed save must not index chunks")
	}
}

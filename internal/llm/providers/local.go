// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

type Message struct {
	Role    string
	Content string
}

type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
	Embed(ctx context.Context, input []string) ([][]float32, error)
	Name() string
}

// LocalProvider is the offline fallback used when no API key is configured.
// Chat echoes the last message and Embed produces small deterministic vectors,
// which keeps the service and its tests runnable without network access.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	last := messages[len(messages)-1].Content
	return "[local-stub] " + strings.TrimSpace(last), nil
}

func (l *LocalProvider) Embed(ctx context.Context, input []string) ([][]float32, error) {
	vectors := make([][]float32, len(input))
	for i, text := range input {
		vectors[i] = hashVector(text, 8)
	}
	return vectors, nil
}

func hashVector(text string, dim int) []float32 {
	vec := make([]float32, dim)
	for _, field := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(field))
		vec[int(h.Sum32())%dim]++
	}
	return vec
}

func (l *LocalProvider) Name() string {
	return "local"
}

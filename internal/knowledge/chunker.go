// File path: internal/knowledge/chunker.go
package knowledge

import (
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// newSplitter builds the recursive character splitter used for all ingested
// text. Overlapping chunks keep sentence context across boundaries.
func newSplitter() textsplitter.RecursiveCharacter {
	return textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
}

// splitText chunks the input, dropping whitespace-only fragments. Short input
// comes back as a single chunk.
func splitText(splitter textsplitter.RecursiveCharacter, text string) ([]string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	parts, err := splitter.SplitText(trimmed)
	if err != nil {
		return nil, err
	}
	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		chunks = append(chunks, part)
	}
	return chunks, nil
}

// File path: internal/relevance/stage.go
package relevance

import (
	"sort"
	"strings"

	"github.com/imashishkh/commerce-kb/internal/kb"
)

const (
	stageThreshold = 0.2
	stageLimit     = 5
)

// Stage is a development stage bucket with the topical keywords scored during
// stage recommendation.
type Stage struct {
	Name     string
	Keywords []string
}

// stages holds the six canonical buckets. The planning bucket doubles as the
// fallback for unrecognized stage names.
var stages = []Stage{
	{"planning", []string{"requirement", "specification", "roadmap", "scope", "stakeholder", "estimate"}},
	{"design", []string{"design", "wireframe", "mockup", "prototype", "layout", "style"}},
	{"development", []string{"component", "implementation", "code", "pattern", "library", "framework", "api"}},
	{"testing", []string{"test", "qa", "quality", "bug", "validation", "coverage"}},
	{"deployment", []string{"deploy", "release", "pipeline", "hosting", "infrastructure", "launch"}},
	{"maintenance", []string{"maintenance", "monitoring", "optimization", "support", "upgrade", "refactor"}},
}

// ResolveStage maps a free-text stage name onto a canonical bucket by
// substring containment, defaulting to planning.
func ResolveStage(name string) Stage {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, stage := range stages {
		if strings.Contains(normalized, stage.Name) {
			return stage
		}
	}
	return stages[0]
}

// StageScore computes the fraction of the stage's keywords present in the
// resource's combined text.
func StageScore(stage Stage, res kb.Resource) float64 {
	if len(stage.Keywords) == 0 {
		return 0
	}
	text := res.CombinedText()
	hits := 0
	for _, keyword := range stage.Keywords {
		if strings.Contains(text, keyword) {
			hits++
		}
	}
	return float64(hits) / float64(len(stage.Keywords))
}

// StageRecommendations returns up to five resources scoring above 0.2 for the
// named stage, strongest first with stable ties. Scores are attached to the
// returned copies only.
func StageRecommendations(stageName string, resources []kb.Resource) []kb.ScoredResource {
	stage := ResolveStage(stageName)
	scored := make([]kb.ScoredResource, 0, len(resources))
	for _, res := range resources {
		score := StageScore(stage, res)
		if score <= stageThreshold {
			continue
		}
		scored = append(scored, kb.ScoredResource{Resource: res, Score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > stageLimit {
		scored = scored[:stageLimit]
	}
	return scored
}

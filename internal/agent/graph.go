// File path: internal/agent/graph.go

// Package agent runs the content ingestion pipeline as a small message graph:
// extract insights, classify the resource, then store and index it.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langgraphgo/graph"

	"github.com/imashishkh/commerce-kb/internal/common"
	"github.com/imashishkh/commerce-kb/internal/kb"
	"github.com/imashishkh/commerce-kb/internal/knowledge"
)

// SaveFunc persists a classified resource. The API layer supplies a
// write-through implementation covering both catalog and collection.
type SaveFunc func(ctx context.Context, res kb.Resource) error

type Runner struct {
	manager *knowledge.Manager
	save    SaveFunc
}

// Report describes what the pipeline produced for one piece of content.
type Report struct {
	ResourceID string   `json:"resource_id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Topics     []string `json:"topics,omitempty"`
	Summary    string   `json:"summary"`
	Chunks     int      `json:"chunks"`
	Steps      []string `json:"steps"`
}

func NewRunner(manager *knowledge.Manager, save SaveFunc) *Runner {
	return &Runner{manager: manager, save: save}
}

const (
	nodeExtract  = "extract"
	nodeClassify = "classify"
	nodeStore    = "store"
)

// RunIngest pushes raw content through the extract, classify, and store
// stages. Pipeline state lives in the run struct; the message slice carries a
// readable trace of each stage.
func (r *Runner) RunIngest(ctx context.Context, title, source, content string) (Report, error) {
	if r == nil || r.manager == nil {
		return Report{}, errors.New("agent runner not configured")
	}
	if strings.TrimSpace(content) == "" {
		return Report{}, errors.New("content required")
	}

	run := &ingestRun{
		runner:  r,
		title:   strings.TrimSpace(title),
		source:  strings.TrimSpace(source),
		content: content,
	}

	g := graph.NewMessageGraph()
	g.AddNode(nodeExtract, run.extract)
	g.AddNode(nodeClassify, run.classify)
	g.AddNode(nodeStore, run.store)
	g.AddEdge(nodeExtract, nodeClassify)
	g.AddEdge(nodeClassify, nodeStore)
	g.AddEdge(nodeStore, graph.END)
	g.SetEntryPoint(nodeExtract)

	runnable, err := g.Compile()
	if err != nil {
		return Report{}, fmt.Errorf("compile ingest graph: %w", err)
	}
	initial := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, content),
	}
	if _, err := runnable.Invoke(ctx, initial); err != nil {
		return Report{}, err
	}
	return run.report, nil
}

type ingestRun struct {
	runner  *Runner
	title   string
	source  string
	content string

	insights knowledge.Insights
	report   Report
}

func (run *ingestRun) extract(ctx context.Context, state []llms.MessageContent) ([]llms.MessageContent, error) {
	insights, err := run.runner.manager.Extract(ctx, run.content)
	if err != nil {
		return nil, fmt.Errorf("extract stage: %w", err)
	}
	run.insights = insights
	run.report.Steps = append(run.report.Steps, nodeExtract)
	common.Logger().Debug("agent: extraction complete", "topics", len(insights.Topics))
	return append(state, llms.TextParts(llms.ChatMessageTypeAI, "extracted: "+insights.Summary)), nil
}

func (run *ingestRun) classify(ctx context.Context, state []llms.MessageContent) ([]llms.MessageContent, error) {
	classification := kb.Classify(run.title, run.content, run.insights.Summary)
	run.report.Category = classification.Category
	run.report.Steps = append(run.report.Steps, nodeClassify)
	common.Logger().Debug("agent: classification complete", "category", classification.Category)
	return append(state, llms.TextParts(llms.ChatMessageTypeAI, "classified: "+classification.Category)), nil
}

func (run *ingestRun) store(ctx context.Context, state []llms.MessageContent) ([]llms.MessageContent, error) {
	title := run.title
	if title == "" {
		title = firstSentence(run.insights.Summary)
	}
	if title == "" {
		title = "Untitled resource"
	}
	res := kb.Resource{
		ID:          uuid.NewString(),
		Title:       title,
		Description: run.insights.Summary,
		Content:     run.content,
		Tags:        run.insights.Topics,
		DateAdded:   time.Now().UTC(),
	}
	kb.Annotate(&res)
	if run.runner.save != nil {
		if err := run.runner.save(ctx, res); err != nil {
			return nil, fmt.Errorf("store stage: %w", err)
		}
	}
	chunks, err := run.runner.manager.AddKnowledge(ctx, "resource", run.source, res.ID, run.content)
	if err != nil {
		return nil, fmt.Errorf("index stage: %w", err)
	}
	run.report.ResourceID = res.ID
	run.report.Title = res.Title
	run.report.Topics = run.insights.Topics
	run.report.Summary = run.insights.Summary
	run.report.Chunks = chunks
	run.report.Steps = append(run.report.Steps, nodeStore)
	common.Logger().Info("agent: resource ingested", "resource", res.ID, "category", res.Category, "chunks", chunks)
	return append(state, llms.TextParts(llms.ChatMessageTypeAI, "stored: "+res.ID)), nil
}

func firstSentence(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexAny(trimmed, ".!?"); idx > 0 {
		return strings.TrimSpace(trimmed[:idx])
	}
	return trimmed
}

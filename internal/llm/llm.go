// File path: internal/llm/llm.go
package llm

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go/v2/option"

	openai "github.com/openai/openai-go/v2"

	"github.com/imashishkh/commerce-kb/internal/common"
	"github.com/imashishkh/commerce-kb/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// NewProvider selects the OpenAI provider when OPENAI_API_KEY is set and the
// deterministic local fallback otherwise.
func NewProvider() Provider {
	logger := common.Logger()
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		logger.Warn("llm: OPENAI_API_KEY not set; falling back to local provider")
		return providers.NewLocalProvider()
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			logger.Warn("llm: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
		} else {
			logger.Info("llm: configuring OpenAI client with custom HTTP timeout", "timeout", timeout)
			opts = append(opts, option.WithRequestTimeout(timeout))
		}
	}
	if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
		logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
		opts = append(opts, option.WithBaseURL(endpoint))
	}
	client := openai.NewClient(opts...)
	logger.Info("llm: OpenAI provider selected")
	return providers.NewOpenAIProvider(client)
}

// NormalizeMessages lowercases message roles and rejects empty conversations.
func NormalizeMessages(messages []Message) ([]Message, error) {
	if len(messages) == 0 {
		return nil, errors.New("no messages provided")
	}
	for i := range messages {
		messages[i].Role = strings.ToLower(messages[i].Role)
	}
	return messages, nil
}

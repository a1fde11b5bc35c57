package services

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const claudeProvider = "claude"

// claudeService backs GenerationClient with Anthropic's Messages API.
type claudeService struct {
	client anthropic.Client
	model  anthropic.Model
	logger *logrus.Entry
}

func NewClaudeService(apiKey, model string, logger *logrus.Logger) (GenerationClient, error) {
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY is not set")
	}
	if model == "" {
		model = string(anthropic.ModelClaude3_7SonnetLatest)
	}

	return &claudeService{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
		logger: logger.WithFields(logrus.Fields{"component": "llm", "provider": claudeProvider}),
	}, nil
}

// Generate implements GenerationClient.
func (c *claudeService) Generate(ctx context.Context, systemInstruction, userPrompt string, temperature float32, maxOutputTokens int32) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   int64(maxOutputTokens),
		Temperature: anthropic.Float(float64(temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: userPrompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	}
	if systemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemInstruction}}
	}

	response, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.logger.WithError(err).Error("Claude API error")
		return "", &ServiceError{Provider: claudeProvider, Err: errors.Wrap(err, "failed to call Claude API")}
	}

	var parts []string
	for _, content := range response.Content {
		if content.Type != "text" {
			continue
		}
		parts = append(parts, content.AsText().Text)
	}

	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", &ServiceError{Provider: claudeProvider, Err: errors.New("no text content in Claude response")}
	}

	c.logger.WithField("chars", len(text)).Debug("Claude response received")
	return text, nil
}

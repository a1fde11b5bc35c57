package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const geminiProvider = "gemini"

// maxEmbeddingChars keeps embedding input under the model's token limit.
const maxEmbeddingChars = 40000

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

type GeminiService interface {
	GenerationClient
	Embedder
	Transcriber
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	logger     *logrus.Entry
}

func NewGeminiService(ctx context.Context, apiKey, modelName, embedModel string, logger *logrus.Logger) (GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gemini client")
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: embedModel,
		logger:     logger.WithFields(logrus.Fields{"component": "llm", "provider": geminiProvider}),
	}, nil
}

// Generate implements GenerationClient.
func (g *geminiService) Generate(ctx context.Context, systemInstruction, userPrompt string, temperature float32, maxOutputTokens int32) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: maxOutputTokens,
	}
	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(userPrompt), config)
	if err != nil {
		g.logger.WithError(err).Error("Gemini API error")
		return "", &ServiceError{Provider: geminiProvider, Err: errors.Wrap(err, "failed to generate text")}
	}
	if resp == nil {
		return "", &ServiceError{Provider: geminiProvider, Err: errors.New("no response generated (nil response)")}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		reason := "unknown"
		if len(resp.Candidates) > 0 {
			reason = string(resp.Candidates[0].FinishReason)
		}
		return "", &ServiceError{Provider: geminiProvider, Err: errors.Errorf("no text content in response (finish reason: %s)", reason)}
	}

	g.logger.WithField("chars", len(text)).Debug("Gemini response received")
	return text, nil
}

// GenerateEmbedding implements Embedder.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if len(text) > maxEmbeddingChars {
		text = text[:maxEmbeddingChars]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, &ServiceError{Provider: geminiProvider, Err: errors.Wrap(err, "failed to generate embedding")}
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, &ServiceError{Provider: geminiProvider, Err: errors.New("empty embedding result")}
	}

	return result.Embeddings[0].Values, nil
}

// Transcribe implements Transcriber.
func (g *geminiService) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText("Transcribe this interview answer verbatim. Return only the transcript text."),
			genai.NewPartFromBytes(audio, mimeType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return "", &ServiceError{Provider: geminiProvider, Err: errors.Wrap(err, "failed to transcribe audio")}
	}
	if resp == nil {
		return "", &ServiceError{Provider: geminiProvider, Err: errors.New("no transcription generated")}
	}

	return strings.TrimSpace(resp.Text()), nil
}

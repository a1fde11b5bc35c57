package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/models"
)

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// QuestionBank supplies reference questions that steer generation.
type QuestionBank interface {
	ReferenceQuestions(ctx context.Context, query string, round models.RoundType, limit int) ([]string, error)
	Ingest(ctx context.Context, source string, round models.RoundType, text string) (int, error)
}

type questionBank struct {
	embedder Embedder
	store    QdrantService
	chunker  TextChunker
	logger   *logrus.Entry
}

const maxQuestionChars = 500

func NewQuestionBank(embedder Embedder, store QdrantService, chunker TextChunker, logger *logrus.Logger) QuestionBank {
	return &questionBank{
		embedder: embedder,
		store:    store,
		chunker:  chunker,
		logger:   logger.WithField("component", "question_bank"),
	}
}

// ReferenceQuestions implements QuestionBank.
func (b *questionBank) ReferenceQuestions(ctx context.Context, query string, round models.RoundType, limit int) ([]string, error) {
	embedding, err := b.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to embed retrieval query")
	}

	results, err := b.store.SearchSimilar(ctx, embedding, round, limit)
	if err != nil {
		return nil, err
	}

	b.logger.WithFields(logrus.Fields{"round": round, "hits": len(results)}).Debug("Reference questions retrieved")
	return FormatReferenceQuestions(results), nil
}

// Ingest implements QuestionBank. It replaces everything previously stored
// under source and returns the number of questions stored.
func (b *questionBank) Ingest(ctx context.Context, source string, round models.RoundType, text string) (int, error) {
	if err := b.store.DeleteSource(ctx, source); err != nil {
		return 0, err
	}

	stored := 0
	for i, chunk := range b.chunker.ChunkText(text, maxQuestionChars) {
		embedding, err := b.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			b.logger.WithError(err).WithField("entry", i+1).Warn("❌ Failed to embed entry")
			continue
		}
		if err := b.store.UpsertQuestion(ctx, source, round, chunk, embedding); err != nil {
			b.logger.WithError(err).WithField("entry", i+1).Warn("❌ Failed to store entry")
			continue
		}
		stored++
	}

	if stored == 0 {
		return 0, errors.Errorf("no questions stored from %s", source)
	}
	return stored, nil
}

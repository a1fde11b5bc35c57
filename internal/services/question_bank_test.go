package services

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-practice/internal/models"
)

type fakeEmbedder struct {
	fail string
}

func (e fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if e.fail != "" && strings.Contains(text, e.fail) {
		return nil, errors.New("embedding failed")
	}
	return []float32{float32(len(text))}, nil
}

type storedQuestion struct {
	source string
	round  models.RoundType
	text   string
}

type fakeStore struct {
	points  []storedQuestion
	deleted []string
	hits    []SearchResult
}

func (s *fakeStore) InitCollection(context.Context) error { return nil }

func (s *fakeStore) UpsertQuestion(_ context.Context, source string, round models.RoundType, text string, _ []float32) error {
	s.points = append(s.points, storedQuestion{source: source, round: round, text: text})
	return nil
}

func (s *fakeStore) SearchSimilar(_ context.Context, _ []float32, round models.RoundType, limit int) ([]SearchResult, error) {
	var hits []SearchResult
	for _, h := range s.hits {
		if h.Round == round && len(hits) < limit {
			hits = append(hits, h)
		}
	}
	return hits, nil
}

func (s *fakeStore) DeleteSource(_ context.Context, source string) error {
	s.deleted = append(s.deleted, source)
	return nil
}

func TestQuestionBank(t *testing.T) {
	ctx := context.Background()

	t.Run(`ingests one entry per line`, func(t *testing.T) {
		store := &fakeStore{}
		bank := NewQuestionBank(fakeEmbedder{fail: "skip me"}, store, NewTextChunker(), quietLogger())

		stored, err := bank.Ingest(ctx, "hr.txt", models.RoundHR, "1. Tell me about yourself?\n\n- Why this company?\n* skip me please?")
		require.NoError(t, err)
		require.Equal(t, 2, stored)
		require.Equal(t, []string{"hr.txt"}, store.deleted)
		require.Equal(t, []storedQuestion{
			{source: "hr.txt", round: models.RoundHR, text: "Tell me about yourself?"},
			{source: "hr.txt", round: models.RoundHR, text: "Why this company?"},
		}, store.points)
	})

	t.Run(`empty source is an error`, func(t *testing.T) {
		bank := NewQuestionBank(fakeEmbedder{}, &fakeStore{}, NewTextChunker(), quietLogger())
		_, err := bank.Ingest(ctx, "empty.txt", models.RoundHR, "\n\n")
		require.Error(t, err)
	})

	t.Run(`returns reference lines for the round`, func(t *testing.T) {
		store := &fakeStore{hits: []SearchResult{
			{Text: "How does a hash map work?", Round: models.RoundTechnical},
			{Text: "Describe a conflict you resolved.", Round: models.RoundHR},
			{Text: "What is an index?", Round: models.RoundTechnical},
		}}
		bank := NewQuestionBank(fakeEmbedder{}, store, NewTextChunker(), quietLogger())

		refs, err := bank.ReferenceQuestions(ctx, "Go interview questions", models.RoundTechnical, 5)
		require.NoError(t, err)
		require.Len(t, refs, 2)
		require.Contains(t, refs[0], "How does a hash map work?")
		require.Contains(t, refs[1], "What is an index?")
	})

	t.Run(`embedding failure is returned`, func(t *testing.T) {
		bank := NewQuestionBank(fakeEmbedder{fail: "Go"}, &fakeStore{}, NewTextChunker(), quietLogger())
		_, err := bank.ReferenceQuestions(ctx, "Go interview questions", models.RoundTechnical, 5)
		require.Error(t, err)
	})
}

func TestTextChunker(t *testing.T) {
	chunker := NewTextChunker()

	t.Run(`strips numbering and bullets`, func(t *testing.T) {
		chunks := chunker.ChunkText("1) First question?\n2. Second question?\n• Third question?\n\n", 100)
		require.Equal(t, []string{"First question?", "Second question?", "Third question?"}, chunks)
	})

	t.Run(`splits long lines on sentences`, func(t *testing.T) {
		chunks := chunker.ChunkText("One two three. Four five six! Seven eight nine?", 20)
		require.Equal(t, []string{"One two three.", "Four five six!", "Seven eight nine?"}, chunks)
	})
}

package services

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-practice/internal/models"
)

func roundQuestions() []models.Question {
	return []models.Question{
		{ID: "q1", Text: "Describe a project you are proud of.", Type: models.RoundTechnical},
		{ID: "q2", Text: "What is a race condition?", Type: models.RoundTechnical},
		{ID: "q3", Text: "How do you design an API?", Type: models.RoundTechnical},
	}
}

// scoreByAnswer grades answers containing "strong" with 9 and anything else with 6.
func scoreByAnswer(_ context.Context, _, user string, _ float32) (string, error) {
	if strings.Contains(user, "strong answer") {
		return `{"score": 9, "strengths": ["Depth"], "areasForImprovement": [], "feedback": "Great", "overallAssessment": "Strong"}`, nil
	}
	return `{"score": 6, "strengths": ["Clarity"], "areasForImprovement": ["Examples"], "feedback": "Fine", "overallAssessment": "Okay"}`, nil
}

func TestAnswerEvaluator(t *testing.T) {
	ctx := context.Background()

	t.Run(`evaluates answered questions in question order`, func(t *testing.T) {
		client := newFakeClient(scoreByAnswer)
		evaluator := NewAnswerEvaluatorService(client, NewPromptBuilder(), 3, quietLogger())

		answers := []models.Answer{
			{QuestionID: "q3", Text: "a plain answer"},
			{QuestionID: "q1", Text: "a strong answer"},
			{QuestionID: "q1", Text: "a second attempt that is ignored"},
			{QuestionID: "unknown", Text: "answer to nothing"},
		}

		round, err := evaluator.EvaluateRound(ctx, roundQuestions(), answers, models.RoundTechnical)
		require.NoError(t, err)
		require.Equal(t, 2, client.callCount())

		require.Len(t, round.Evaluations, 2)
		require.Equal(t, "q1", round.Evaluations[0].QuestionID)
		require.Equal(t, 9.0, round.Evaluations[0].Score)
		require.Equal(t, "q3", round.Evaluations[1].QuestionID)
		require.Equal(t, 6.0, round.Evaluations[1].Score)

		require.Equal(t, 3, round.TotalQuestions)
		require.Equal(t, 7.5, round.AverageScore)
		require.Equal(t, "Good", round.PerformanceLevel)
		require.Equal(t, models.RoundTechnical, round.RoundType)
	})

	t.Run(`no answers`, func(t *testing.T) {
		client := newFakeClient(scoreByAnswer)
		evaluator := NewAnswerEvaluatorService(client, NewPromptBuilder(), 2, quietLogger())

		round, err := evaluator.EvaluateRound(ctx, roundQuestions(), nil, models.RoundHR)
		require.NoError(t, err)
		require.Equal(t, 0, client.callCount())
		require.Empty(t, round.Evaluations)
		require.Equal(t, 3, round.TotalQuestions)
		require.Equal(t, 0.0, round.AverageScore)
	})

	t.Run(`respects the concurrency limit`, func(t *testing.T) {
		var inFlight, peak int32
		client := newFakeClient(func(ctx context.Context, system, user string, temperature float32) (string, error) {
			n := atomic.AddInt32(&inFlight, 1)
			defer atomic.AddInt32(&inFlight, -1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return scoreByAnswer(ctx, system, user, temperature)
		})
		evaluator := NewAnswerEvaluatorService(client, NewPromptBuilder(), 1, quietLogger())

		answers := []models.Answer{{QuestionID: "q1"}, {QuestionID: "q2"}, {QuestionID: "q3"}}
		round, err := evaluator.EvaluateRound(ctx, roundQuestions(), answers, models.RoundTechnical)
		require.NoError(t, err)
		require.Len(t, round.Evaluations, 3)
		require.Equal(t, int32(1), atomic.LoadInt32(&peak))
	})

	t.Run(`service failure aborts the round`, func(t *testing.T) {
		cause := &ServiceError{Provider: "gemini", Err: errors.New("quota exceeded")}
		evaluator := NewAnswerEvaluatorService(failWith(cause), NewPromptBuilder(), 2, quietLogger())

		answers := []models.Answer{{QuestionID: "q2", Text: "data race"}}
		round, err := evaluator.EvaluateRound(ctx, roundQuestions(), answers, models.RoundTechnical)
		require.Nil(t, round)

		var evalErr *EvaluationError
		require.ErrorAs(t, err, &evalErr)
		require.Equal(t, "q2", evalErr.QuestionID)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		require.Equal(t, "gemini", svcErr.Provider)
	})

	t.Run(`malformed reply uses the label fallback`, func(t *testing.T) {
		evaluator := NewAnswerEvaluatorService(replyWith("Score: 3\nFeedback: Too short"), NewPromptBuilder(), 1, quietLogger())

		eval, err := evaluator.EvaluateAnswer(ctx, roundQuestions()[0], models.Answer{QuestionID: "q1", Text: "idk"})
		require.NoError(t, err)
		require.Equal(t, 3.0, eval.Score)
		require.Equal(t, "Too short", eval.Feedback)
		require.Equal(t, "q1", eval.QuestionID)
	})
}

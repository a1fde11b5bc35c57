package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/interview-practice/internal/models"
)

type AnswerEvaluatorService interface {
	EvaluateAnswer(ctx context.Context, question models.Question, answer models.Answer) (models.Evaluation, error)
	EvaluateRound(ctx context.Context, questions []models.Question, answers []models.Answer, round models.RoundType) (*models.RoundEvaluation, error)
}

type answerEvaluatorService struct {
	client      GenerationClient
	prompts     *PromptBuilder
	concurrency int
	logger      *logrus.Entry
}

// NewAnswerEvaluatorService builds the evaluator. concurrency bounds the
// number of answers graded at once; 1 grades them one after another.
func NewAnswerEvaluatorService(client GenerationClient, prompts *PromptBuilder, concurrency int, logger *logrus.Logger) AnswerEvaluatorService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &answerEvaluatorService{
		client:      client,
		prompts:     prompts,
		concurrency: concurrency,
		logger:      logger.WithField("component", "answer_evaluator"),
	}
}

// EvaluateAnswer implements AnswerEvaluatorService.
func (s *answerEvaluatorService) EvaluateAnswer(ctx context.Context, question models.Question, answer models.Answer) (models.Evaluation, error) {
	raw, err := generatePrompt(ctx, s.client, s.prompts.BuildEvaluationPrompt(question, answer))
	if err != nil {
		return models.Evaluation{}, &EvaluationError{QuestionID: question.ID, Err: err}
	}

	reply := parseEvaluationReply(raw)
	if !reply.WellFormed {
		s.logger.WithField("question_id", question.ID).Warn("Evaluation reply is not valid JSON, using label fallback")
	}

	eval := decodeEvaluation(reply, question.ID)
	s.logger.WithFields(logrus.Fields{
		"question_id": question.ID,
		"score":       eval.Score,
	}).Debug("Answer evaluated")
	return eval, nil
}

// EvaluateRound implements AnswerEvaluatorService. Unanswered questions are
// skipped but still counted in TotalQuestions; evaluations keep question order.
func (s *answerEvaluatorService) EvaluateRound(ctx context.Context, questions []models.Question, answers []models.Answer, round models.RoundType) (*models.RoundEvaluation, error) {
	byQuestion := make(map[string]models.Answer, len(answers))
	for _, a := range answers {
		if _, ok := byQuestion[a.QuestionID]; !ok {
			byQuestion[a.QuestionID] = a
		}
	}

	log := s.logger.WithFields(logrus.Fields{
		"round":     round,
		"questions": len(questions),
		"answers":   len(byQuestion),
	})
	log.Info("Evaluating round")

	results := make([]*models.Evaluation, len(questions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, q := range questions {
		answer, ok := byQuestion[q.ID]
		if !ok {
			continue
		}
		g.Go(func() error {
			eval, err := s.EvaluateAnswer(gctx, q, answer)
			if err != nil {
				return err
			}
			results[i] = &eval
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Round evaluation failed")
		return nil, err
	}

	evaluations := make([]models.Evaluation, 0, len(byQuestion))
	for _, r := range results {
		if r != nil {
			evaluations = append(evaluations, *r)
		}
	}

	roundEval := AggregateRound(round, evaluations, len(questions))
	log.WithFields(logrus.Fields{
		"evaluated":     len(evaluations),
		"average_score": roundEval.AverageScore,
		"level":         roundEval.PerformanceLevel,
	}).Info("Round evaluated")
	return roundEval, nil
}

package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/config"
	"alfredoptarigan/interview-practice/internal/models"
)

type QuestionGeneratorService interface {
	GenerateQuestions(ctx context.Context, profile *models.CandidateProfile, round models.RoundType, count int) ([]models.Question, error)
}

type questionGeneratorService struct {
	client  GenerationClient
	prompts *PromptBuilder
	bank    QuestionBank
	cfg     config.InterviewConfig
	logger  *logrus.Entry
}

// NewQuestionGeneratorService builds the question generator. bank may be nil.
func NewQuestionGeneratorService(
	client GenerationClient,
	prompts *PromptBuilder,
	bank QuestionBank,
	cfg config.InterviewConfig,
	logger *logrus.Logger,
) QuestionGeneratorService {
	return &questionGeneratorService{
		client:  client,
		prompts: prompts,
		bank:    bank,
		cfg:     cfg,
		logger:  logger.WithField("component", "question_generator"),
	}
}

// GenerateQuestions implements QuestionGeneratorService. A non-positive count
// uses the configured default for the round.
func (s *questionGeneratorService) GenerateQuestions(ctx context.Context, profile *models.CandidateProfile, round models.RoundType, count int) ([]models.Question, error) {
	if count <= 0 {
		count = s.defaultCount(round)
	}
	log := s.logger.WithFields(logrus.Fields{"round": round, "count": count})
	log.Info("Generating questions")

	prompt := s.prompts.BuildQuestionPrompt(profile, round, count, s.referenceQuestions(ctx, profile, round))
	raw, err := generatePrompt(ctx, s.client, prompt)
	if err != nil {
		log.WithError(err).Error("Question generation failed")
		return nil, &GenerationError{Round: round, Err: err}
	}

	reply := parseQuestionReply(raw)
	if !reply.WellFormed {
		log.Warn("Question reply is not valid JSON, using line fallback")
	}

	questions := decodeQuestions(reply, round)
	if len(questions) > count {
		questions = questions[:count]
	}

	log.WithField("generated", len(questions)).Info("Questions generated")
	return questions, nil
}

func (s *questionGeneratorService) defaultCount(round models.RoundType) int {
	if round == models.RoundHR {
		return s.cfg.HRQuestionsCount
	}
	return s.cfg.TechnicalQuestionsCount
}

// referenceQuestions is best effort: bank failures only cost prompt context.
func (s *questionGeneratorService) referenceQuestions(ctx context.Context, profile *models.CandidateProfile, round models.RoundType) []string {
	if s.bank == nil || s.cfg.ReferenceQuestions <= 0 {
		return nil
	}
	refs, err := s.bank.ReferenceQuestions(ctx, s.prompts.BuildRetrievalQuery(profile, round), round, s.cfg.ReferenceQuestions)
	if err != nil {
		s.logger.WithError(err).WithField("round", round).Warn("Question bank lookup failed")
		return nil
	}
	return refs
}

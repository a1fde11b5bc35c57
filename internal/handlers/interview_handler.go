package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/models"
	"alfredoptarigan/interview-practice/internal/services"
)

// InterviewHandler exposes the stateless pipeline operations.
type InterviewHandler struct {
	generator services.QuestionGeneratorService
	evaluator services.AnswerEvaluatorService
	composer  services.ReportComposerService
	logger    *logrus.Entry
}

func NewInterviewHandler(
	generator services.QuestionGeneratorService,
	evaluator services.AnswerEvaluatorService,
	composer services.ReportComposerService,
	logger *logrus.Logger,
) *InterviewHandler {
	return &InterviewHandler{
		generator: generator,
		evaluator: evaluator,
		composer:  composer,
		logger:    logger.WithField("handler", "interview"),
	}
}

// HandleGenerateQuestions handles POST /questions
func (h *InterviewHandler) HandleGenerateQuestions(c *fiber.Ctx) error {
	var req models.GenerateQuestionsRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	round, err := roundFromRequest(req.RoundType)
	if err != nil {
		return badRequest(c, err.Error())
	}

	questions, err := h.generator.GenerateQuestions(c.UserContext(), req.Profile, round, req.Count)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, questions)
}

// HandleEvaluateRound handles POST /evaluations
func (h *InterviewHandler) HandleEvaluateRound(c *fiber.Ctx) error {
	var req models.EvaluateRoundRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	round, err := roundFromRequest(req.RoundType)
	if err != nil {
		return badRequest(c, err.Error())
	}

	roundEval, err := h.evaluator.EvaluateRound(c.UserContext(), req.Questions, req.Answers, round)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, roundEval)
}

// HandleComposeReport handles POST /reports
func (h *InterviewHandler) HandleComposeReport(c *fiber.Ctx) error {
	var req models.ComposeReportRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	report := h.composer.ComposeReport(c.UserContext(), req.Profile, req.HRRound, req.TechnicalRound)
	return respond(c, fiber.StatusOK, report)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/models"
	"alfredoptarigan/interview-practice/internal/services"
)

type SessionHandler struct {
	interview   services.InterviewService
	maxFileSize int64
	logger      *logrus.Entry
}

func NewSessionHandler(interview services.InterviewService, maxFileSize int64, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		interview:   interview,
		maxFileSize: maxFileSize,
		logger:      logger.WithField("handler", "session"),
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	file, data, err := readUpload(c, "resume", h.maxFileSize)
	if err != nil {
		return badRequest(c, err.Error())
	}

	format, err := uploadFormat(file)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	session, err := h.interview.CreateSession(c.UserContext(), file.Filename, data, format)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusCreated, session)
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session ID format")
	}

	session, err := h.interview.GetSession(id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, session)
}

// HandleQuestions handles POST /sessions/:id/questions
func (h *SessionHandler) HandleQuestions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session ID format")
	}

	var req models.SessionQuestionsRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	round, err := roundFromRequest(req.RoundType)
	if err != nil {
		return badRequest(c, err.Error())
	}

	questions, err := h.interview.GenerateQuestions(c.UserContext(), id, round, req.Count)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, questions)
}

// HandleAnswers handles POST /sessions/:id/answers
func (h *SessionHandler) HandleAnswers(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session ID format")
	}

	var req models.SessionAnswersRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	round, err := roundFromRequest(req.RoundType)
	if err != nil {
		return badRequest(c, err.Error())
	}

	roundEval, err := h.interview.SubmitAnswers(c.UserContext(), id, round, req.Answers)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, roundEval)
}

// HandleReport handles POST /sessions/:id/report
func (h *SessionHandler) HandleReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session ID format")
	}

	report, err := h.interview.GenerateReport(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, report)
}

// HandleReportPDF handles GET /sessions/:id/report.pdf
func (h *SessionHandler) HandleReportPDF(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session ID format")
	}

	path, err := h.interview.ReportFile(id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Download(path, "interview_report_"+id.String()+".pdf")
}

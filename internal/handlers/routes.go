package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-practice/internal/models"
)

type Handlers struct {
	Provider   string
	Document   *DocumentHandler
	Interview  *InterviewHandler
	Session    *SessionHandler
	Transcribe *TranscribeHandler
}

// RegisterRoutes mounts the API under router. A nil handler leaves its routes out.
func RegisterRoutes(router fiber.Router, h Handlers) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return respond(c, fiber.StatusOK, models.HealthResponse{Status: "healthy", Provider: h.Provider})
	})

	if h.Document != nil {
		router.Post("/documents/parse", h.Document.HandleParse)
	}

	if h.Interview != nil {
		router.Post("/questions", h.Interview.HandleGenerateQuestions)
		router.Post("/evaluations", h.Interview.HandleEvaluateRound)
		router.Post("/reports", h.Interview.HandleComposeReport)
	}

	if h.Session != nil {
		sessions := router.Group("/sessions")
		sessions.Post("/", h.Session.HandleCreate)
		sessions.Get("/:id", h.Session.HandleGet)
		sessions.Post("/:id/questions", h.Session.HandleQuestions)
		sessions.Post("/:id/answers", h.Session.HandleAnswers)
		sessions.Post("/:id/report", h.Session.HandleReport)
		sessions.Get("/:id/report.pdf", h.Session.HandleReportPDF)
	}

	if h.Transcribe != nil {
		router.Post("/transcribe", h.Transcribe.HandleTranscribe)
	}
}

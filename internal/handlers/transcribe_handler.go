package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/models"
	"alfredoptarigan/interview-practice/internal/services"
)

type TranscribeHandler struct {
	transcriber services.Transcriber
	maxFileSize int64
	logger      *logrus.Entry
}

func NewTranscribeHandler(transcriber services.Transcriber, maxFileSize int64, logger *logrus.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		transcriber: transcriber,
		maxFileSize: maxFileSize,
		logger:      logger.WithField("handler", "transcribe"),
	}
}

// HandleTranscribe handles POST /transcribe
func (h *TranscribeHandler) HandleTranscribe(c *fiber.Ctx) error {
	if h.transcriber == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.NewError("transcription requires GEMINI_API_KEY"))
	}

	file, data, err := readUpload(c, "audio", h.maxFileSize)
	if err != nil {
		return badRequest(c, err.Error())
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = "audio/wav"
	}

	text, err := h.transcriber.Transcribe(c.UserContext(), data, mimeType)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return respond(c, fiber.StatusOK, models.TranscriptionResponse{Text: text})
}

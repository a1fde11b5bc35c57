package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/services"
)

type DocumentHandler struct {
	parser      services.DocumentParserService
	maxFileSize int64
	logger      *logrus.Entry
}

func NewDocumentHandler(parser services.DocumentParserService, maxFileSize int64, logger *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{
		parser:      parser,
		maxFileSize: maxFileSize,
		logger:      logger.WithField("handler", "document"),
	}
}

// HandleParse handles POST /documents/parse
func (h *DocumentHandler) HandleParse(c *fiber.Ctx) error {
	file, data, err := readUpload(c, "resume", h.maxFileSize)
	if err != nil {
		return badRequest(c, err.Error())
	}

	format, err := uploadFormat(file)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	profile, err := h.parser.ParseDocument(data, format)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return respond(c, fiber.StatusOK, profile)
}

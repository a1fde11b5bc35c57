package handlers

import (
	"io"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/models"
	"alfredoptarigan/interview-practice/internal/repositories"
	"alfredoptarigan/interview-practice/internal/services"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("round_type", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseRoundType(fl.Field().String())
		return ok
	})
	return v
}

func respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(models.NewResponse(data))
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.NewError(message))
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errors.New("invalid request payload")
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	return nil
}

// respondError maps service error kinds onto HTTP statuses.
func respondError(c *fiber.Ctx, logger *logrus.Entry, err error) error {
	status := fiber.StatusInternalServerError

	var (
		unsupported *services.UnsupportedFormatError
		extraction  *services.ExtractionError
		generation  *services.GenerationError
		evaluation  *services.EvaluationError
		service     *services.ServiceError
	)
	switch {
	case errors.As(err, &unsupported):
		status = fiber.StatusUnsupportedMediaType
	case errors.As(err, &extraction):
		status = fiber.StatusUnprocessableEntity
	case errors.As(err, &generation), errors.As(err, &evaluation), errors.As(err, &service):
		status = fiber.StatusBadGateway
	case errors.Is(err, repositories.ErrSessionNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrQuestionsNotGenerated), errors.Is(err, services.ErrReportNotGenerated):
		status = fiber.StatusConflict
	}

	entry := logger.WithError(err).WithField("status", status)
	if status >= fiber.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}

	return c.Status(status).JSON(models.NewError(err.Error()))
}

// readUpload returns the bytes of the named multipart file.
func readUpload(c *fiber.Ctx, field string, maxFileSize int64) (*multipart.FileHeader, []byte, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, nil, errors.Errorf("'%s' file is required", field)
	}
	if maxFileSize > 0 && file.Size > maxFileSize {
		return nil, nil, errors.Errorf("%s file too large. Max size: %d bytes", field, maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read uploaded file")
	}
	return file, data, nil
}

// uploadFormat prefers the file extension and falls back to the part's content type.
func uploadFormat(file *multipart.FileHeader) (services.DocumentFormat, error) {
	format, err := services.FormatFromFilename(file.Filename)
	if err == nil {
		return format, nil
	}
	if byMIME, mimeErr := services.FormatFromMIME(file.Header.Get("Content-Type")); mimeErr == nil {
		return byMIME, nil
	}
	return "", err
}

func roundFromRequest(value string) (models.RoundType, error) {
	round, ok := models.ParseRoundType(value)
	if !ok {
		return "", errors.Errorf("unknown round type %q", value)
	}
	return round, nil
}

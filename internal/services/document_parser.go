package services

import (
	"bytes"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/models"
)

type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// FormatFromFilename maps an upload's extension to a document format.
func FormatFromFilename(filename string) (DocumentFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch DocumentFormat(ext) {
	case FormatPDF, FormatDOCX:
		return DocumentFormat(ext), nil
	}
	return "", &UnsupportedFormatError{Format: ext}
}

// FormatFromMIME maps a content type to a document format.
func FormatFromMIME(contentType string) (DocumentFormat, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	switch mediaType {
	case "application/pdf":
		return FormatPDF, nil
	case docxMIME:
		return FormatDOCX, nil
	}
	return "", &UnsupportedFormatError{Format: mediaType}
}

type DocumentParserService interface {
	ExtractText(data []byte, format DocumentFormat) (string, error)
	ParseDocument(data []byte, format DocumentFormat) (*models.CandidateProfile, error)
}

type documentParserService struct {
	extractor ResumeExtractor
	logger    *logrus.Entry
}

func NewDocumentParserService(extractor ResumeExtractor, logger *logrus.Logger) DocumentParserService {
	return &documentParserService{
		extractor: extractor,
		logger:    logger.WithField("component", "document_parser"),
	}
}

// ExtractText implements DocumentParserService.
func (p *documentParserService) ExtractText(data []byte, format DocumentFormat) (text string, err error) {
	switch format {
	case FormatPDF:
		text, err = extractPDFText(data)
	case FormatDOCX:
		text, err = extractDocxText(data)
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
	if err != nil {
		return "", &ExtractionError{Format: format, Err: err}
	}

	text = cleanText(text)
	if text == "" {
		return "", &ExtractionError{Format: format, Err: errors.New("no text content found in document")}
	}
	return text, nil
}

// ParseDocument implements DocumentParserService.
func (p *documentParserService) ParseDocument(data []byte, format DocumentFormat) (*models.CandidateProfile, error) {
	text, err := p.ExtractText(data, format)
	if err != nil {
		p.logger.WithError(err).WithField("format", format).Warn("Document extraction failed")
		return nil, err
	}

	profile := p.extractor.ExtractInformation(text)
	p.logger.WithFields(logrus.Fields{
		"format":   format,
		"chars":    len(text),
		"skills":   len(profile.Skills),
		"sections": len(profile.Sections),
	}).Info("Parsed résumé")
	return profile, nil
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed font tables
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "failed to open PDF")
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

var (
	xmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	horizontalSpaces = regexp.MustCompile(`[ \t\r\f\v]+`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse docx")
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = strings.ReplaceAll(content, "<w:tab/>", "\t")
	content = strings.ReplaceAll(content, "<w:br/>", "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}

// cleanText trims every line, collapses runs of horizontal whitespace and
// drops blank lines.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(horizontalSpaces.ReplaceAllString(line, " "))
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocumentFormat(t *testing.T) {
	t.Run(`by filename`, func(t *testing.T) {
		format, err := FormatFromFilename("Jane_CV.PDF")
		require.NoError(t, err)
		require.Equal(t, FormatPDF, format)

		format, err = FormatFromFilename("resume.docx")
		require.NoError(t, err)
		require.Equal(t, FormatDOCX, format)

		_, err = FormatFromFilename("resume.txt")
		var unsupported *UnsupportedFormatError
		require.ErrorAs(t, err, &unsupported)
		require.Equal(t, "txt", unsupported.Format)
	})

	t.Run(`by content type`, func(t *testing.T) {
		format, err := FormatFromMIME("application/pdf; charset=binary")
		require.NoError(t, err)
		require.Equal(t, FormatPDF, format)

		format, err = FormatFromMIME(docxMIME)
		require.NoError(t, err)
		require.Equal(t, FormatDOCX, format)

		_, err = FormatFromMIME("text/plain")
		require.Error(t, err)
	})
}

func TestDocumentParser(t *testing.T) {
	parser := NewDocumentParserService(NewResumeExtractor(), quietLogger())

	t.Run(`unsupported format`, func(t *testing.T) {
		_, err := parser.ExtractText([]byte("hello"), DocumentFormat("rtf"))
		var unsupported *UnsupportedFormatError
		require.ErrorAs(t, err, &unsupported)
	})

	t.Run(`corrupt pdf`, func(t *testing.T) {
		_, err := parser.ParseDocument([]byte("definitely not a pdf"), FormatPDF)
		var extraction *ExtractionError
		require.ErrorAs(t, err, &extraction)
		require.Equal(t, FormatPDF, extraction.Format)
	})

	t.Run(`corrupt docx`, func(t *testing.T) {
		_, err := parser.ParseDocument([]byte("PK not really a zip"), FormatDOCX)
		var extraction *ExtractionError
		require.ErrorAs(t, err, &extraction)
		require.Equal(t, FormatDOCX, extraction.Format)
	})
}

func TestCleanText(t *testing.T) {
	raw := "  Jane  Doe  \r\n\n\tSenior   Engineer\t\n   \n"
	require.Equal(t, "Jane Doe\nSenior Engineer", cleanText(raw))
	require.Empty(t, cleanText(" \n\t\n"))
}

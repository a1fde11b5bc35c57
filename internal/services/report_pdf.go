package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"alfredoptarigan/interview-practice/internal/models"
)

// RenderReportPDF lays out an interview report as an A4 document.
func RenderReportPDF(report *models.InterviewReport) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("RenderReportPDF panic recover: %v", r)
		}
	}()
	if report == nil {
		return nil, errors.New("report is nil")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Interview Performance Report", true)
	pdf.AddPage()
	// core fonts are cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, tr(text), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	line := func(text string) {
		pdf.MultiCell(0, 6, tr(text), "", "L", false)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Interview Performance Report"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, tr("Generated "+report.GeneratedAt.Format("2006-01-02 15:04 MST")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	info := report.CandidateInfo
	heading("Candidate Information")
	line("Name: " + info.Name)
	line("Email: " + info.Email)
	line("Phone: " + info.Phone)
	if len(info.Skills) > 0 {
		line("Skills: " + strings.Join(info.Skills, ", "))
	}
	pdf.Ln(4)

	summary := report.InterviewSummary
	heading("Interview Summary")
	line(fmt.Sprintf("Total Questions: %d", summary.TotalQuestions))
	line(fmt.Sprintf("Overall Average Score: %.1f", summary.OverallAverage))
	for _, round := range []models.RoundType{models.RoundHR, models.RoundTechnical} {
		if avg, ok := summary.AverageScores[round.Key()]; ok {
			line(fmt.Sprintf("%s: %.1f/10 (%s)", round.Label(), avg, summary.PerformanceLevels[round.Key()]))
		}
	}
	pdf.Ln(4)

	assessment := report.OverallAssessment
	heading("Overall Assessment")
	line(fmt.Sprintf("Overall Score: %.1f/10", assessment.OverallScore))
	line("Recommendation: " + assessment.Recommendation)
	if len(assessment.Strengths) > 0 {
		line("Strengths: " + strings.Join(assessment.Strengths, "; "))
	}
	if len(assessment.AreasForImprovement) > 0 {
		line("Areas for Improvement: " + strings.Join(assessment.AreasForImprovement, "; "))
	}
	pdf.Ln(4)

	heading("Recommendations")
	for i, rec := range report.Recommendations {
		line(fmt.Sprintf("%d. %s", i+1, rec))
	}

	for _, round := range []*models.RoundEvaluation{report.DetailedEvaluations.HRRound, report.DetailedEvaluations.TechnicalRound} {
		if round == nil || len(round.Evaluations) == 0 {
			continue
		}
		pdf.Ln(4)
		heading(fmt.Sprintf("%s Details", round.RoundType.Label()))
		line(round.OverallFeedback)
		for _, eval := range round.Evaluations {
			line(fmt.Sprintf("%s: %.1f/10 - %s", eval.QuestionID, eval.Score, eval.Feedback))
		}
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, errors.Wrap(err, "failed to write PDF")
	}
	return buf.Bytes(), nil
}

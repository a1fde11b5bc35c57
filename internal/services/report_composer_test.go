package services

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-practice/internal/models"
)

func newTestComposer(client GenerationClient) *reportComposerService {
	composer := NewReportComposerService(client, NewPromptBuilder(), quietLogger()).(*reportComposerService)
	composer.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return composer
}

// byTemperature answers the assessment prompt (0.4) and the recommendations
// prompt (0.5) with separate replies.
func byTemperature(assessment, recommendations string) *fakeClient {
	return newFakeClient(func(_ context.Context, _, _ string, temperature float32) (string, error) {
		if temperature < 0.45 {
			return assessment, nil
		}
		return recommendations, nil
	})
}

func TestReportComposer(t *testing.T) {
	ctx := context.Background()
	unavailable := failWith(&ServiceError{Provider: "gemini", Err: errors.New("unavailable")})

	hr := &models.RoundEvaluation{RoundType: models.RoundHR, AverageScore: 7.2, TotalQuestions: 5, PerformanceLevel: "Good"}
	tech := &models.RoundEvaluation{RoundType: models.RoundTechnical, AverageScore: 5.8, TotalQuestions: 7, PerformanceLevel: "Average"}

	t.Run(`empty interview`, func(t *testing.T) {
		report := newTestComposer(unavailable).ComposeReport(ctx, nil, nil, nil)

		require.Equal(t, "Unknown", report.CandidateInfo.Name)
		require.Equal(t, "Not provided", report.CandidateInfo.Email)
		require.Equal(t, 0, report.InterviewSummary.TotalQuestions)
		require.Equal(t, 0.0, report.InterviewSummary.OverallAverage)
		require.Empty(t, report.InterviewSummary.RoundsCompleted)
		require.Equal(t, 0.0, report.OverallAssessment.OverallScore)
		require.Equal(t, "Needs improvement - Not recommended at this time", report.OverallAssessment.Recommendation)
		require.Equal(t, genericRecommendations, report.Recommendations)
		require.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), report.GeneratedAt)
	})

	t.Run(`deterministic fallback from round averages`, func(t *testing.T) {
		profile := &models.CandidateProfile{
			Skills:      []string{"Go"},
			ContactInfo: models.ContactInfo{Name: "Jane Doe", Email: "jane@example.com"},
		}
		profile.Sections.Set("work experience", "Acme 2019-2024")
		profile.Sections.Set("education", "B.Sc.")

		report := newTestComposer(unavailable).ComposeReport(ctx, profile, hr, tech)

		require.Equal(t, "Jane Doe", report.CandidateInfo.Name)
		require.Equal(t, "Not provided", report.CandidateInfo.Phone)
		require.Equal(t, "Acme 2019-2024", report.CandidateInfo.ExperienceSection)
		require.Equal(t, "B.Sc.", report.CandidateInfo.EducationSection)

		summary := report.InterviewSummary
		require.Equal(t, 12, summary.TotalQuestions)
		require.Equal(t, 6.5, summary.OverallAverage)
		require.Equal(t, map[string]float64{"hr_round": 7.2, "technical_round": 5.8}, summary.AverageScores)
		require.Equal(t, map[string]string{"hr_round": "Good", "technical_round": "Average"}, summary.PerformanceLevels)
		require.Equal(t, []string{"HR Round", "Technical Round"}, summary.RoundsCompleted)

		require.Equal(t, 6.5, report.OverallAssessment.OverallScore)
		require.Equal(t, "Good candidate - Recommended", report.OverallAssessment.Recommendation)
		require.Equal(t, fallbackStrengths, report.OverallAssessment.Strengths)
		require.Equal(t, technicalRecommendations, report.Recommendations)

		require.Same(t, hr, report.DetailedEvaluations.HRRound)
		require.Same(t, tech, report.DetailedEvaluations.TechnicalRound)
	})

	t.Run(`uses the model assessment`, func(t *testing.T) {
		client := byTemperature(
			`{"overallScore": 12, "strengths": ["Communication"], "areasForImprovement": "testing, design", "recommendation": ""}`,
			"```json\n[\"Practice system design\", \" \", \"Write more tests\"]\n```",
		)
		report := newTestComposer(client).ComposeReport(ctx, nil, hr, tech)

		require.Equal(t, 2, client.callCount())
		require.Equal(t, models.OverallAssessment{
			OverallScore:        10,
			Strengths:           []string{"Communication"},
			AreasForImprovement: []string{"testing", "design"},
			Recommendation:      "Strong candidate - Highly recommended",
		}, report.OverallAssessment)
		require.Equal(t, []string{"Practice system design", "Write more tests"}, report.Recommendations)
	})

	t.Run(`assessment without a score keeps the average`, func(t *testing.T) {
		client := byTemperature(`{"strengths": [], "recommendation": "Hire"}`, `[]`)
		report := newTestComposer(client).ComposeReport(ctx, nil, hr, tech)

		require.Equal(t, 6.5, report.OverallAssessment.OverallScore)
		require.Equal(t, "Hire", report.OverallAssessment.Recommendation)
		require.Equal(t, technicalRecommendations, report.Recommendations)
	})

	t.Run(`malformed assessment is replaced`, func(t *testing.T) {
		client := byTemperature("The candidate did well overall.", "- Rehearse STAR answers\n2. Review SQL joins\nGood luck!")
		report := newTestComposer(client).ComposeReport(ctx, nil, hr, nil)

		require.Equal(t, 7.2, report.OverallAssessment.OverallScore)
		require.Equal(t, fallbackImprovements, report.OverallAssessment.AreasForImprovement)
		require.Equal(t, []string{"Rehearse STAR answers", "Review SQL joins"}, report.Recommendations)
	})
}

func TestDeterministicRecommendations(t *testing.T) {
	weak := &models.RoundEvaluation{AverageScore: 5.9}
	strong := &models.RoundEvaluation{AverageScore: 6.0}

	require.Equal(t, append(append([]string{}, hrRecommendations...), technicalRecommendations...), deterministicRecommendations(weak, weak))
	require.Equal(t, hrRecommendations, deterministicRecommendations(weak, strong))
	require.Equal(t, genericRecommendations, deterministicRecommendations(strong, nil))
}

func TestRenderReportPDF(t *testing.T) {
	report := newTestComposer(failWith(errors.New("offline"))).ComposeReport(context.Background(),
		&models.CandidateProfile{ContactInfo: models.ContactInfo{Name: "Zoë Müller"}, Skills: []string{"Go"}},
		AggregateRound(models.RoundHR, []models.Evaluation{{QuestionID: "q_hr_1", Score: 8, Feedback: "Clear"}}, 1),
		nil,
	)

	pdf, err := RenderReportPDF(report)
	require.NoError(t, err)
	require.True(t, len(pdf) > 4)
	require.Equal(t, "%PDF", string(pdf[:4]))

	_, err = RenderReportPDF(nil)
	require.Error(t, err)
}

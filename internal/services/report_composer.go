package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/models"
)

var (
	fallbackStrengths    = []string{"Completed the practice interview"}
	fallbackImprovements = []string{"Review the per-question feedback to target weak areas"}

	hrRecommendations = []string{
		"Focus on improving communication and interpersonal skills",
		"Practice behavioral interview questions",
	}
	technicalRecommendations = []string{
		"Strengthen technical knowledge in core areas",
		"Practice coding problems and system design questions",
	}
	genericRecommendations = []string{
		"Continue building on current strengths",
		"Consider advanced training in specialized areas",
	}

	recommendationPrefix = regexp.MustCompile(`^(?:-|\d+\.)\s*`)
)

const recommendationThreshold = 6.0

type ReportComposerService interface {
	ComposeReport(ctx context.Context, profile *models.CandidateProfile, hr, tech *models.RoundEvaluation) *models.InterviewReport
}

type reportComposerService struct {
	client  GenerationClient
	prompts *PromptBuilder
	now     func() time.Time
	logger  *logrus.Entry
}

func NewReportComposerService(client GenerationClient, prompts *PromptBuilder, logger *logrus.Logger) ReportComposerService {
	return &reportComposerService{
		client:  client,
		prompts: prompts,
		now:     time.Now,
		logger:  logger.WithField("component", "report_composer"),
	}
}

// ComposeReport implements ReportComposerService. Generation failures fall back
// to deterministic content, so a report is always produced.
func (s *reportComposerService) ComposeReport(ctx context.Context, profile *models.CandidateProfile, hr, tech *models.RoundEvaluation) *models.InterviewReport {
	info := candidateInfo(profile)
	summary := interviewSummary(hr, tech)
	assessment := s.overallAssessment(ctx, info, summary, hr, tech)
	recommendations := s.recommendations(ctx, assessment, hr, tech)

	s.logger.WithFields(logrus.Fields{
		"rounds":          len(summary.RoundsCompleted),
		"overall_average": summary.OverallAverage,
		"overall_score":   assessment.OverallScore,
	}).Info("Report composed")

	return &models.InterviewReport{
		CandidateInfo:    info,
		InterviewSummary: summary,
		DetailedEvaluations: models.DetailedEvaluations{
			HRRound:        hr,
			TechnicalRound: tech,
		},
		OverallAssessment: assessment,
		Recommendations:   recommendations,
		GeneratedAt:       s.now().UTC(),
	}
}

func candidateInfo(profile *models.CandidateProfile) models.CandidateInfo {
	info := models.CandidateInfo{
		Name:   "Unknown",
		Email:  "Not provided",
		Phone:  "Not provided",
		Skills: []string{},
	}
	if profile == nil {
		return info
	}

	if profile.ContactInfo.Name != "" {
		info.Name = profile.ContactInfo.Name
	}
	if profile.ContactInfo.Email != "" {
		info.Email = profile.ContactInfo.Email
	}
	if profile.ContactInfo.Phone != "" {
		info.Phone = profile.ContactInfo.Phone
	}
	if profile.Skills != nil {
		info.Skills = profile.Skills
	}
	info.ExperienceSection = findSection(profile.Sections, "experience")
	info.EducationSection = findSection(profile.Sections, "education")
	return info
}

// findSection returns the first section whose key mentions word.
func findSection(sections models.Sections, word string) string {
	for _, section := range sections {
		if strings.Contains(section.Name, word) {
			return section.Content
		}
	}
	return ""
}

func interviewSummary(hr, tech *models.RoundEvaluation) models.InterviewSummary {
	summary := models.InterviewSummary{
		AverageScores:     map[string]float64{},
		PerformanceLevels: map[string]string{},
		RoundsCompleted:   []string{},
	}

	var averages []float64
	add := func(round models.RoundType, eval *models.RoundEvaluation) {
		if eval == nil {
			return
		}
		level := eval.PerformanceLevel
		if level == "" {
			level = PerformanceLevel(eval.AverageScore)
		}
		summary.TotalQuestions += eval.TotalQuestions
		summary.AverageScores[round.Key()] = eval.AverageScore
		summary.PerformanceLevels[round.Key()] = level
		summary.RoundsCompleted = append(summary.RoundsCompleted, round.Label())
		averages = append(averages, eval.AverageScore)
	}
	add(models.RoundHR, hr)
	add(models.RoundTechnical, tech)

	summary.OverallAverage = roundTo1(mean(averages))
	return summary
}

type assessmentReply struct {
	OverallScore        json.RawMessage `json:"overallScore"`
	Strengths           stringList      `json:"strengths"`
	AreasForImprovement stringList      `json:"areasForImprovement"`
	Recommendation      string          `json:"recommendation"`
}

func (s *reportComposerService) overallAssessment(ctx context.Context, info models.CandidateInfo, summary models.InterviewSummary, hr, tech *models.RoundEvaluation) models.OverallAssessment {
	raw, err := generatePrompt(ctx, s.client, s.prompts.BuildAssessmentPrompt(info, hr, tech))
	if err != nil {
		s.logger.WithError(err).Warn("Assessment generation failed, using deterministic assessment")
		return deterministicAssessment(summary.OverallAverage)
	}

	reply := parseReply[assessmentReply](raw, '{', '}')
	if !reply.WellFormed {
		s.logger.Warn("Assessment reply is not valid JSON, using deterministic assessment")
		return deterministicAssessment(summary.OverallAverage)
	}
	return assessmentFromJSON(reply.Value, summary.OverallAverage)
}

func assessmentFromJSON(r assessmentReply, fallbackScore float64) models.OverallAssessment {
	score := fallbackScore
	if v, ok := numberFromJSON(r.OverallScore); ok {
		score = roundTo1(clampScore(v))
	}

	recommendation := strings.TrimSpace(r.Recommendation)
	if recommendation == "" {
		recommendation = Recommendation(score)
	}

	return models.OverallAssessment{
		OverallScore:        score,
		Strengths:           nonNil(r.Strengths),
		AreasForImprovement: nonNil(r.AreasForImprovement),
		Recommendation:      recommendation,
	}
}

func deterministicAssessment(overallAverage float64) models.OverallAssessment {
	return models.OverallAssessment{
		OverallScore:        overallAverage,
		Strengths:           append([]string(nil), fallbackStrengths...),
		AreasForImprovement: append([]string(nil), fallbackImprovements...),
		Recommendation:      Recommendation(overallAverage),
	}
}

func (s *reportComposerService) recommendations(ctx context.Context, assessment models.OverallAssessment, hr, tech *models.RoundEvaluation) []string {
	raw, err := generatePrompt(ctx, s.client, s.prompts.BuildRecommendationsPrompt(assessment, hr, tech))
	if err != nil {
		s.logger.WithError(err).Warn("Recommendation generation failed, using rule based recommendations")
		return deterministicRecommendations(hr, tech)
	}

	recs := decodeRecommendations(parseReply[[]string](raw, '[', ']'))
	if len(recs) == 0 {
		s.logger.Warn("Recommendation reply had no usable items, using rule based recommendations")
		return deterministicRecommendations(hr, tech)
	}
	return recs
}

func decodeRecommendations(reply ParsedReply[[]string]) []string {
	var recs []string
	if reply.WellFormed {
		for _, r := range reply.Value {
			if r = strings.TrimSpace(r); r != "" {
				recs = append(recs, r)
			}
		}
		return recs
	}

	for _, line := range strings.Split(reply.Raw, "\n") {
		line = strings.TrimSpace(line)
		if !recommendationPrefix.MatchString(line) {
			continue
		}
		if line = strings.TrimSpace(recommendationPrefix.ReplaceAllString(line, "")); line != "" {
			recs = append(recs, line)
		}
	}
	return recs
}

func deterministicRecommendations(hr, tech *models.RoundEvaluation) []string {
	var recs []string
	if hr != nil && hr.AverageScore < recommendationThreshold {
		recs = append(recs, hrRecommendations...)
	}
	if tech != nil && tech.AverageScore < recommendationThreshold {
		recs = append(recs, technicalRecommendations...)
	}
	if len(recs) == 0 {
		recs = append(recs, genericRecommendations...)
	}
	return recs
}

package models

import (
	"strings"
	"time"
)

type RoundType string

const (
	RoundHR        RoundType = "HR"
	RoundTechnical RoundType = "Technical"
)

// ParseRoundType accepts the round names used by clients ("hr", "technical", "tech").
func ParseRoundType(s string) (RoundType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hr":
		return RoundHR, true
	case "technical", "tech":
		return RoundTechnical, true
	default:
		return "", false
	}
}

// Label is the human readable round name used in reports.
func (r RoundType) Label() string {
	if r == RoundHR {
		return "HR Round"
	}
	return "Technical Round"
}

// Key is the map key used in interview summaries.
func (r RoundType) Key() string {
	if r == RoundHR {
		return "hr_round"
	}
	return "technical_round"
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ParseDifficulty normalizes a difficulty label case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	default:
		return "", false
	}
}

type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// CandidateProfile is the structured data derived from one résumé.
type CandidateProfile struct {
	RawText     string      `json:"rawText"`
	Skills      []string    `json:"skills"`
	ContactInfo ContactInfo `json:"contactInfo"`
	Sections    Sections    `json:"sections"`
}

type Question struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Type       RoundType  `json:"roundType"`
	Difficulty Difficulty `json:"difficulty"`
	Category   string     `json:"category"`
}

type Answer struct {
	QuestionID     string    `json:"questionId" validate:"required"`
	Text           string    `json:"text"`
	AudioReference string    `json:"audioReference,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

type Evaluation struct {
	QuestionID          string   `json:"questionId"`
	Score               float64  `json:"score"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Feedback            string   `json:"feedback"`
	OverallAssessment   string   `json:"overallAssessment"`
}

type RoundEvaluation struct {
	RoundType        RoundType    `json:"roundType,omitempty"`
	Evaluations      []Evaluation `json:"evaluations"`
	AverageScore     float64      `json:"averageScore"`
	TotalQuestions   int          `json:"totalQuestions"`
	OverallFeedback  string       `json:"overallFeedback"`
	PerformanceLevel string       `json:"performanceLevel"`
}

type CandidateInfo struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Skills            []string `json:"skills"`
	ExperienceSection string   `json:"experienceSection"`
	EducationSection  string   `json:"educationSection"`
}

type InterviewSummary struct {
	TotalQuestions    int                `json:"totalQuestions"`
	AverageScores     map[string]float64 `json:"averageScores"`
	PerformanceLevels map[string]string  `json:"performanceLevels"`
	RoundsCompleted   []string           `json:"roundsCompleted"`
	OverallAverage    float64            `json:"overallAverage"`
}

type OverallAssessment struct {
	OverallScore        float64  `json:"overallScore"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Recommendation      string   `json:"recommendation"`
}

type DetailedEvaluations struct {
	HRRound        *RoundEvaluation `json:"hrRound,omitempty"`
	TechnicalRound *RoundEvaluation `json:"technicalRound,omitempty"`
}

type InterviewReport struct {
	CandidateInfo       CandidateInfo       `json:"candidateInfo"`
	InterviewSummary    InterviewSummary    `json:"interviewSummary"`
	DetailedEvaluations DetailedEvaluations `json:"detailedEvaluations"`
	OverallAssessment   OverallAssessment   `json:"overallAssessment"`
	Recommendations     []string            `json:"recommendations"`
	GeneratedAt         time.Time           `json:"generatedAt"`
}

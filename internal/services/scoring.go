package services

import (
	"math"
	"sort"
	"strings"

	"alfredoptarigan/interview-practice/internal/models"
)

const (
	minScore     = 1.0
	maxScore     = 10.0
	defaultScore = 5.0
)

// PerformanceLevel maps a round's average score to its tier.
func PerformanceLevel(avg float64) string {
	switch {
	case avg >= 8.5:
		return "Excellent"
	case avg >= 7.0:
		return "Good"
	case avg >= 5.5:
		return "Average"
	case avg >= 4.0:
		return "Below Average"
	default:
		return "Needs Improvement"
	}
}

// Recommendation maps an overall score to a hiring recommendation. Its
// thresholds differ from PerformanceLevel on purpose.
func Recommendation(score float64) string {
	switch {
	case score >= 8.0:
		return "Strong candidate - Highly recommended"
	case score >= 6.5:
		return "Good candidate - Recommended"
	case score >= 5.0:
		return "Average candidate - Consider for specific roles"
	default:
		return "Needs improvement - Not recommended at this time"
	}
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) {
		return defaultScore
	}
	return math.Max(minScore, math.Min(maxScore, score))
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// AggregateRound builds the round statistics from evaluations already in
// question order. totalQuestions includes unanswered questions.
func AggregateRound(round models.RoundType, evaluations []models.Evaluation, totalQuestions int) *models.RoundEvaluation {
	scores := make([]float64, 0, len(evaluations))
	for _, e := range evaluations {
		scores = append(scores, e.Score)
	}
	avg := roundTo1(mean(scores))
	level := PerformanceLevel(avg)

	if evaluations == nil {
		evaluations = []models.Evaluation{}
	}

	return &models.RoundEvaluation{
		RoundType:        round,
		Evaluations:      evaluations,
		AverageScore:     avg,
		TotalQuestions:   totalQuestions,
		OverallFeedback:  overallFeedback(evaluations, level),
		PerformanceLevel: level,
	}
}

func overallFeedback(evaluations []models.Evaluation, level string) string {
	var strengths, improvements []string
	for _, e := range evaluations {
		strengths = append(strengths, e.Strengths...)
		improvements = append(improvements, e.AreasForImprovement...)
	}

	var parts []string
	if top := mostCommon(strengths, 3); len(top) > 0 {
		parts = append(parts, "Key strengths: "+strings.Join(top, ", "))
	}
	if top := mostCommon(improvements, 3); len(top) > 0 {
		parts = append(parts, "Areas to focus on: "+strings.Join(top, ", "))
	}
	parts = append(parts, "Overall performance: "+level)

	return strings.Join(parts, ". ") + "."
}

// mostCommon returns up to n distinct values by descending frequency, ties
// in first-seen order.
func mostCommon(values []string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

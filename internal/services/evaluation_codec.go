package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/interview-practice/internal/models"
)

const (
	noFeedback   = "No feedback provided."
	noAssessment = "No overall assessment provided."
)

// Text replies get a placeholder list instead of an empty one.
var (
	defaultTextStrengths    = []string{"Answer provided"}
	defaultTextImprovements = []string{"Could be more detailed"}
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// stringList accepts either a JSON array of strings or a single string.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = splitList(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

type evaluationReply struct {
	Score                  json.RawMessage `json:"score"`
	Strengths              stringList      `json:"strengths"`
	AreasForImprovement    stringList      `json:"areasForImprovement"`
	AreasForImprovementAlt stringList      `json:"areas_for_improvement"`
	Feedback               *string         `json:"feedback"`
	OverallAssessment      *string         `json:"overallAssessment"`
	OverallAssessmentAlt   *string         `json:"overall_assessment"`
}

func parseEvaluationReply(raw string) ParsedReply[evaluationReply] {
	return parseReply[evaluationReply](raw, '{', '}')
}

// decodeEvaluation maps either variant of a reply to the evaluation of questionID.
func decodeEvaluation(reply ParsedReply[evaluationReply], questionID string) models.Evaluation {
	if reply.WellFormed {
		return evaluationFromJSON(reply.Value, questionID)
	}
	return evaluationFromText(reply.Raw, questionID)
}

func evaluationFromJSON(r evaluationReply, questionID string) models.Evaluation {
	improvements := r.AreasForImprovement
	if improvements == nil {
		improvements = r.AreasForImprovementAlt
	}
	assessment := r.OverallAssessment
	if assessment == nil {
		assessment = r.OverallAssessmentAlt
	}

	return models.Evaluation{
		QuestionID:          questionID,
		Score:               clampScore(scoreFromJSON(r.Score)),
		Strengths:           nonNil(r.Strengths),
		AreasForImprovement: nonNil(improvements),
		Feedback:            stringOr(r.Feedback, noFeedback),
		OverallAssessment:   stringOr(assessment, noAssessment),
	}
}

func scoreFromJSON(raw json.RawMessage) float64 {
	if v, ok := numberFromJSON(raw); ok {
		return v
	}
	return defaultScore
}

// numberFromJSON reads a JSON number or numeric string.
func numberFromJSON(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number, true
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if number, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return number, true
		}
	}
	return 0, false
}

type evaluationLabel int

const (
	labelScore evaluationLabel = iota
	labelStrengths
	labelImprovements
	labelFeedback
	labelAssessment
)

var evaluationLabels = []struct {
	pattern *regexp.Regexp
	label   evaluationLabel
}{
	{regexp.MustCompile(`(?i)score:`), labelScore},
	{regexp.MustCompile(`(?i)strengths:`), labelStrengths},
	{regexp.MustCompile(`(?i)areas for improvement:`), labelImprovements},
	{regexp.MustCompile(`(?i)improvements:`), labelImprovements},
	{regexp.MustCompile(`(?i)feedback:`), labelFeedback},
	{regexp.MustCompile(`(?i)overall assessment:`), labelAssessment},
}

// findLabel returns the label that starts earliest in line and the text after it.
func findLabel(line string) (evaluationLabel, string, bool) {
	var (
		best  evaluationLabel
		match []int
	)
	for _, l := range evaluationLabels {
		loc := l.pattern.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if match == nil || loc[0] < match[0] {
			best, match = l.label, loc
		}
	}
	if match == nil {
		return 0, "", false
	}
	return best, strings.TrimSpace(line[match[1]:]), true
}

func evaluationFromText(raw, questionID string) models.Evaluation {
	eval := models.Evaluation{
		QuestionID:        questionID,
		Score:             defaultScore,
		Feedback:          noFeedback,
		OverallAssessment: noAssessment,
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, rest, ok := findLabel(line)
		if !ok {
			continue
		}

		switch label {
		case labelScore:
			if match := numberPattern.FindString(rest); match != "" {
				if score, err := strconv.ParseFloat(match, 64); err == nil {
					eval.Score = clampScore(score)
				}
			}
		case labelStrengths:
			eval.Strengths = splitList(rest)
		case labelImprovements:
			eval.AreasForImprovement = splitList(rest)
		case labelFeedback:
			if rest != "" {
				eval.Feedback = rest
			}
		case labelAssessment:
			if rest != "" {
				eval.OverallAssessment = rest
			}
		}
	}

	if len(eval.Strengths) == 0 {
		eval.Strengths = append([]string(nil), defaultTextStrengths...)
	}
	if len(eval.AreasForImprovement) == 0 {
		eval.AreasForImprovement = append([]string(nil), defaultTextImprovements...)
	}
	return eval
}

// splitList splits a comma separated value, dropping brackets and empty items.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

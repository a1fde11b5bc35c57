package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"alfredoptarigan/interview-practice/internal/models"
)

var (
	hardWords   = []string{"explain", "describe", "analyze", "compare", "evaluate"}
	mediumWords = []string{"what", "how", "why", "when", "where"}

	numberingPrefix = regexp.MustCompile(`^\d+\.\s*`)
)

type categoryRule struct {
	category string
	keywords []string
}

var hrCategories = []categoryRule{
	{"Teamwork", []string{"team", "teamwork", "collaboration"}},
	{"Leadership", []string{"lead", "leadership", "manage"}},
	{"Problem Solving", []string{"problem", "challenge", "difficult"}},
	{"Career Goals", []string{"goal", "career", "future"}},
}

var technicalCategories = []categoryRule{
	{"Programming", []string{"code", "programming", "algorithm"}},
	{"Database", []string{"database", "sql", "data"}},
	{"System Design", []string{"system", "architecture", "design"}},
	{"Frameworks & Tools", []string{"framework", "library", "tool"}},
}

// AssessDifficulty guesses a question's difficulty from its wording.
func AssessDifficulty(question string) models.Difficulty {
	lower := strings.ToLower(question)
	switch {
	case containsAny(lower, hardWords):
		return models.DifficultyHard
	case containsAny(lower, mediumWords):
		return models.DifficultyMedium
	default:
		return models.DifficultyEasy
	}
}

// CategorizeQuestion picks the first keyword group the question mentions.
func CategorizeQuestion(question string, round models.RoundType) string {
	lower := strings.ToLower(question)
	rules, fallback := technicalCategories, "General Technical"
	if round == models.RoundHR {
		rules, fallback = hrCategories, "General HR"
	}
	for _, rule := range rules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return fallback
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func synthesizeQuestionID(round models.RoundType, index int) string {
	return fmt.Sprintf("q_%s_%d", strings.ToLower(string(round)), index+1)
}

// questionReply is one element of the generated question array. Elements may
// also be bare strings.
type questionReply struct {
	ID         json.RawMessage `json:"id"`
	Question   string          `json:"question"`
	Text       string          `json:"text"`
	Difficulty string          `json:"difficulty"`
	Category   string          `json:"category"`
}

func (r *questionReply) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*r = questionReply{Question: text}
		return nil
	}
	type plain questionReply
	return json.Unmarshal(data, (*plain)(r))
}

func (r questionReply) text() string {
	if t := strings.TrimSpace(r.Question); t != "" {
		return t
	}
	return strings.TrimSpace(r.Text)
}

func (r questionReply) id() string {
	if len(r.ID) == 0 || string(r.ID) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.ID, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(r.ID))
}

func parseQuestionReply(raw string) ParsedReply[[]questionReply] {
	return parseReply[[]questionReply](raw, '[', ']')
}

// decodeQuestions maps either variant of a reply to questions for round.
func decodeQuestions(reply ParsedReply[[]questionReply], round models.RoundType) []models.Question {
	if reply.WellFormed {
		return questionsFromJSON(reply.Value, round)
	}
	return questionsFromText(reply.Raw, round)
}

func questionsFromJSON(items []questionReply, round models.RoundType) []models.Question {
	questions := make([]models.Question, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		text := item.text()
		if text == "" {
			continue
		}

		id := item.id()
		if _, dup := seen[id]; id == "" || dup {
			id = synthesizeQuestionID(round, i)
			for n := 2; ; n++ {
				if _, dup := seen[id]; !dup {
					break
				}
				id = fmt.Sprintf("%s_%d", synthesizeQuestionID(round, i), n)
			}
		}
		seen[id] = struct{}{}

		difficulty, ok := models.ParseDifficulty(item.Difficulty)
		if !ok {
			difficulty = AssessDifficulty(text)
		}

		category := strings.TrimSpace(item.Category)
		if category == "" {
			category = CategorizeQuestion(text, round)
		}

		questions = append(questions, models.Question{
			ID:         id,
			Text:       text,
			Type:       round,
			Difficulty: difficulty,
			Category:   category,
		})
	}
	return questions
}

func questionsFromText(raw string, round models.RoundType) []models.Question {
	var questions []models.Question
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(numberingPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if len(line) <= 10 || !strings.Contains(line, "?") {
			continue
		}
		questions = append(questions, models.Question{
			ID:         synthesizeQuestionID(round, len(questions)),
			Text:       line,
			Type:       round,
			Difficulty: AssessDifficulty(line),
			Category:   CategorizeQuestion(line, round),
		})
	}
	return questions
}

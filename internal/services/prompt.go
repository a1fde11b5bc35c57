package services

import (
	"fmt"
	"strings"
	"unicode"

	"alfredoptarigan/interview-practice/internal/models"
)

const (
	interviewerSystemPrompt = "You are an experienced interviewer preparing a practice interview. Reply with valid JSON only, without markdown."
	evaluatorSystemPrompt   = "You are an expert interview coach grading a candidate's answer. Be fair, specific and constructive. Reply with valid JSON only, without markdown."
	hiringSystemPrompt      = "You are a hiring manager summarizing a candidate's practice interview. Reply with valid JSON only, without markdown."
)

// Prompt is one system instruction plus user prompt pair with its sampling settings.
type Prompt struct {
	System          string
	User            string
	Temperature     float32
	MaxOutputTokens int32
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildProfileSummary flattens a profile into the text embedded in generation prompts.
func (pb *PromptBuilder) BuildProfileSummary(profile *models.CandidateProfile) string {
	if profile == nil {
		return ""
	}

	var parts []string
	contact := profile.ContactInfo
	if contact.Name != "" {
		parts = append(parts, "Name: "+contact.Name)
	}
	if contact.Email != "" {
		parts = append(parts, "Email: "+contact.Email)
	}
	if contact.Phone != "" {
		parts = append(parts, "Phone: "+contact.Phone)
	}
	if contact.LinkedIn != "" {
		parts = append(parts, "LinkedIn: "+contact.LinkedIn)
	}
	if contact.GitHub != "" {
		parts = append(parts, "GitHub: "+contact.GitHub)
	}

	for _, section := range profile.Sections {
		parts = append(parts, fmt.Sprintf("%s: %s", titleCase(section.Name), section.Content))
	}

	if len(profile.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(profile.Skills, ", "))
	}

	if len(parts) == 0 && profile.RawText != "" {
		parts = append(parts, profile.RawText)
	}

	return strings.Join(parts, "\n\n")
}

// BuildQuestionPrompt creates the prompt for one round of question generation.
func (pb *PromptBuilder) BuildQuestionPrompt(profile *models.CandidateProfile, round models.RoundType, count int, references []string) Prompt {
	var guidance string
	if round == models.RoundHR {
		guidance = `1. Behavioral questions about past experiences
2. Motivation and career goals
3. Teamwork and leadership
4. Problem-solving abilities
5. Cultural fit and values`
	} else {
		guidance = `1. Technical skills mentioned in the resume
2. Programming languages and frameworks
3. Problem-solving and coding challenges
4. System design concepts (if applicable)
5. Industry-specific knowledge`
	}

	var reference string
	if len(references) > 0 {
		reference = fmt.Sprintf(`
REFERENCE QUESTIONS (for style and coverage only, do not copy verbatim):
%s
`, strings.Join(references, "\n"))
	}

	user := fmt.Sprintf(`Based on the following resume information, generate %d %s interview questions that would be appropriate for this candidate.

RESUME INFORMATION:
%s

The questions should cover:
%s
%s
Generate questions that are:
- Relevant to the candidate's background
- Open-ended to encourage detailed responses
- Professional and appropriate
- Varied in difficulty and topic

Return your response as a JSON array in the following format:
[
  {
    "id": "q_%s_1",
    "question": "<the question text>",
    "difficulty": "<Easy|Medium|Hard>",
    "category": "<short category name>"
  }
]`,
		count, round, pb.BuildProfileSummary(profile), guidance, reference, strings.ToLower(string(round)))

	return Prompt{
		System:          interviewerSystemPrompt,
		User:            user,
		Temperature:     0.7,
		MaxOutputTokens: 2048,
	}
}

// BuildEvaluationPrompt creates the prompt for grading one answer.
func (pb *PromptBuilder) BuildEvaluationPrompt(question models.Question, answer models.Answer) Prompt {
	user := fmt.Sprintf(`Evaluate the following interview answer and provide a detailed assessment.

QUESTION: %s
ANSWER: %s
QUESTION TYPE: %s
CATEGORY: %s
DIFFICULTY: %s

SCORING RUBRIC:
- 1-2: Poor. Off-topic, incorrect or no real answer
- 3-4: Weak. Partially relevant, missing key points
- 5-6: Adequate. Relevant but generic or shallow
- 7-8: Good. Clear, relevant, supported by examples
- 9-10: Excellent. Thorough, insightful, well structured with concrete evidence

Return your response in the following JSON format:
{
  "score": <1-10>,
  "strengths": ["<strength>", "..."],
  "areasForImprovement": ["<area>", "..."],
  "feedback": "<specific feedback 2-4 sentences>",
  "overallAssessment": "<one sentence summary>"
}`,
		question.Text, answer.Text, question.Type, question.Category, question.Difficulty)

	return Prompt{
		System:          evaluatorSystemPrompt,
		User:            user,
		Temperature:     0.3,
		MaxOutputTokens: 1024,
	}
}

// BuildAssessmentPrompt creates the prompt for the report's overall assessment.
func (pb *PromptBuilder) BuildAssessmentPrompt(info models.CandidateInfo, hr, tech *models.RoundEvaluation) Prompt {
	user := fmt.Sprintf(`Provide an overall assessment of a candidate based on their practice interview.

HR ROUND:
%s

TECHNICAL ROUND:
%s

CANDIDATE SKILLS: %s

EXPERIENCE:
%s

EDUCATION:
%s

Return your response in the following JSON format:
{
  "overallScore": <1-10>,
  "strengths": ["<strength>", "..."],
  "areasForImprovement": ["<area>", "..."],
  "recommendation": "<one line hiring recommendation>"
}`,
		roundSummary(hr), roundSummary(tech), orNone(strings.Join(info.Skills, ", ")),
		orNone(info.ExperienceSection), orNone(info.EducationSection))

	return Prompt{
		System:          hiringSystemPrompt,
		User:            user,
		Temperature:     0.4,
		MaxOutputTokens: 1024,
	}
}

// BuildRecommendationsPrompt creates the prompt for the report's action items.
func (pb *PromptBuilder) BuildRecommendationsPrompt(assessment models.OverallAssessment, hr, tech *models.RoundEvaluation) Prompt {
	user := fmt.Sprintf(`Based on the interview results below, give the candidate 5-7 specific, actionable recommendations to improve.

OVERALL SCORE: %.1f/10
RECOMMENDATION: %s
STRENGTHS: %s
AREAS FOR IMPROVEMENT: %s

HR ROUND FEEDBACK: %s
TECHNICAL ROUND FEEDBACK: %s

Return ONLY a JSON array of strings, for example:
["<recommendation 1>", "<recommendation 2>"]`,
		assessment.OverallScore, assessment.Recommendation,
		orNone(strings.Join(assessment.Strengths, ", ")),
		orNone(strings.Join(assessment.AreasForImprovement, ", ")),
		roundFeedback(hr), roundFeedback(tech))

	return Prompt{
		System:          hiringSystemPrompt,
		User:            user,
		Temperature:     0.5,
		MaxOutputTokens: 1024,
	}
}

// BuildRetrievalQuery creates the query embedded for question bank lookup.
func (pb *PromptBuilder) BuildRetrievalQuery(profile *models.CandidateProfile, round models.RoundType) string {
	if round == models.RoundHR {
		return "Behavioral interview questions about teamwork, leadership, motivation and career goals"
	}
	if profile == nil || len(profile.Skills) == 0 {
		return "Technical interview questions about programming, databases and system design"
	}
	return "Technical interview questions about " + strings.Join(profile.Skills, ", ")
}

// FormatReferenceQuestions turns question bank hits into prompt lines.
func FormatReferenceQuestions(results []SearchResult) []string {
	var lines []string
	for _, result := range results {
		text := strings.TrimSpace(result.Text)
		if text == "" {
			continue
		}
		lines = append(lines, "- "+text)
	}
	return lines
}

func roundSummary(eval *models.RoundEvaluation) string {
	if eval == nil {
		return "Not completed"
	}
	return fmt.Sprintf("- Average Score: %.1f/10\n- Performance Level: %s\n- Questions: %d\n- Feedback: %s",
		eval.AverageScore, eval.PerformanceLevel, eval.TotalQuestions, eval.OverallFeedback)
}

func roundFeedback(eval *models.RoundEvaluation) string {
	if eval == nil {
		return "Not completed"
	}
	return fmt.Sprintf("%s (average %.1f)", eval.OverallFeedback, eval.AverageScore)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

// titleCase upper-cases the first letter of every word.
func titleCase(s string) string {
	runes := []rune(s)
	start := true
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if start {
				runes[i] = unicode.ToUpper(r)
			}
			start = false
			continue
		}
		start = true
	}
	return string(runes)
}

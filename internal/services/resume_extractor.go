package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"alfredoptarigan/interview-practice/internal/models"
)

const (
	defaultSectionKey = "other"
	maxHeaderLength   = 50
	maxNameLength     = 50
)

// skillPatterns are matched in order; the first spelling seen for a skill wins.
var skillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:Python|Java|JavaScript|C\+\+|C#|PHP|Ruby|Go|Rust|Swift|Kotlin)\b`),
	regexp.MustCompile(`(?i)\b(?:React|Angular|Vue|Node\.js|Express|Django|Flask|Spring|Laravel)\b`),
	regexp.MustCompile(`(?i)\b(?:HTML|CSS|Bootstrap|jQuery|SASS|LESS)\b`),
	regexp.MustCompile(`(?i)\b(?:SQL|MySQL|PostgreSQL|MongoDB|Redis|Elasticsearch)\b`),
	regexp.MustCompile(`(?i)\b(?:AWS|Azure|GCP|Docker|Kubernetes|Jenkins|Git|GitHub|GitLab)\b`),
	regexp.MustCompile(`(?i)\b(?:Machine Learning|AI|Data Science|Analytics|Statistics)\b`),
	regexp.MustCompile(`(?i)\b(?:Project Management|Leadership|Communication|Teamwork)\b`),
	regexp.MustCompile(`(?i)\b(?:Agile|Scrum|DevOps|CI/CD|Microservices)\b`),
}

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	linkedInPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[A-Za-z0-9_-]+/?`)
	gitHubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_-]+/?`)
)

var sectionHeaders = []string{
	"experience", "work experience", "employment", "professional experience",
	"education", "academic background", "educational background",
	"skills", "technical skills", "core competencies", "key skills",
	"projects", "personal projects", "portfolio",
	"certifications", "certificates", "licenses",
	"summary", "objective", "profile", "about",
	"achievements", "accomplishments", "awards",
	"languages", "interests", "hobbies",
}

// ResumeExtractor turns plain résumé text into a CandidateProfile. It never fails.
type ResumeExtractor interface {
	ExtractInformation(text string) *models.CandidateProfile
}

type resumeExtractor struct{}

func NewResumeExtractor() ResumeExtractor {
	return &resumeExtractor{}
}

// ExtractInformation implements ResumeExtractor.
func (e *resumeExtractor) ExtractInformation(text string) *models.CandidateProfile {
	return &models.CandidateProfile{
		RawText:     text,
		Skills:      extractSkills(text),
		ContactInfo: extractContactInfo(text),
		Sections:    extractSections(text),
	}
}

func extractSkills(text string) []string {
	skills := []string{}
	seen := make(map[string]struct{})
	for _, pattern := range skillPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			match = strings.TrimSpace(match)
			if match == "" {
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			skills = append(skills, match)
		}
	}
	return skills
}

func extractContactInfo(text string) models.ContactInfo {
	info := models.ContactInfo{
		Email:    emailPattern.FindString(text),
		Phone:    phonePattern.FindString(text),
		LinkedIn: linkedInPattern.FindString(text),
		GitHub:   gitHubPattern.FindString(text),
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if looksLikeName(line) {
			info.Name = line
		}
		break
	}
	return info
}

func looksLikeName(line string) bool {
	if strings.Contains(line, "@") || phonePattern.MatchString(line) {
		return false
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "resume") || strings.Contains(lower, "curriculum") {
		return false
	}
	return utf8.RuneCountInString(line) < maxNameLength
}

func extractSections(text string) models.Sections {
	sections := models.Sections{}
	current := defaultSectionKey
	var body []string

	flush := func() {
		if len(body) > 0 {
			sections.Set(current, strings.Join(body, "\n"))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isSectionHeader(line) {
			flush()
			current = sectionKey(line)
			body = nil
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}

// isSectionHeader requires the line to be strictly longer than the phrase it
// contains, so a bare "Skills" line is body text.
func isSectionHeader(line string) bool {
	length := utf8.RuneCountInString(line)
	if length > maxHeaderLength {
		return false
	}
	lower := strings.ToLower(line)
	for _, header := range sectionHeaders {
		if strings.Contains(lower, header) && length > len(header) {
			return true
		}
	}
	return false
}

func sectionKey(line string) string {
	key := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, strings.ToLower(line))
	return strings.TrimSpace(key)
}

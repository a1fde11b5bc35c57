package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionCreated        SessionStatus = "created"
	SessionQuestionsReady SessionStatus = "questions_ready"
	SessionEvaluated      SessionStatus = "evaluated"
	SessionReported       SessionStatus = "reported"
)

// InterviewSession persists one candidate's pass through the pipeline.
type InterviewSession struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OriginalFileName   string            `gorm:"type:text" json:"originalFileName"`
	CandidateName      string            `gorm:"type:text" json:"candidateName"`
	Status             SessionStatus     `gorm:"not null;default:'created'" json:"status"`
	Profile            *CandidateProfile `gorm:"type:jsonb;serializer:json" json:"profile,omitempty"`
	HRQuestions        []Question        `gorm:"type:jsonb;serializer:json" json:"hrQuestions,omitempty"`
	TechnicalQuestions []Question        `gorm:"type:jsonb;serializer:json" json:"technicalQuestions,omitempty"`
	HRRound            *RoundEvaluation  `gorm:"type:jsonb;serializer:json" json:"hrRound,omitempty"`
	TechnicalRound     *RoundEvaluation  `gorm:"type:jsonb;serializer:json" json:"technicalRound,omitempty"`
	Report             *InterviewReport  `gorm:"type:jsonb;serializer:json" json:"report,omitempty"`
	ReportPath         string            `gorm:"type:text" json:"-"`
	CreatedAt          time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt          time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

// Questions returns the generated questions for a round.
func (s *InterviewSession) Questions(round RoundType) []Question {
	if round == RoundHR {
		return s.HRQuestions
	}
	return s.TechnicalQuestions
}

func (s *InterviewSession) SetQuestions(round RoundType, questions []Question) {
	if round == RoundHR {
		s.HRQuestions = questions
		return
	}
	s.TechnicalQuestions = questions
}

func (s *InterviewSession) SetRound(round RoundType, eval *RoundEvaluation) {
	if round == RoundHR {
		s.HRRound = eval
		return
	}
	s.TechnicalRound = eval
}

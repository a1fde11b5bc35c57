package services

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-practice/internal/models"
	"alfredoptarigan/interview-practice/internal/repositories"
)

var (
	ErrQuestionsNotGenerated = errors.New("questions have not been generated for this round")
	ErrReportNotGenerated    = errors.New("report has not been generated for this session")
)

// InterviewService runs the pipeline for a persisted interview session.
type InterviewService interface {
	CreateSession(ctx context.Context, fileName string, data []byte, format DocumentFormat) (*models.InterviewSession, error)
	GetSession(id uuid.UUID) (*models.InterviewSession, error)
	GenerateQuestions(ctx context.Context, id uuid.UUID, round models.RoundType, count int) ([]models.Question, error)
	SubmitAnswers(ctx context.Context, id uuid.UUID, round models.RoundType, answers []models.Answer) (*models.RoundEvaluation, error)
	GenerateReport(ctx context.Context, id uuid.UUID) (*models.InterviewReport, error)
	ReportFile(id uuid.UUID) (string, error)
}

type interviewService struct {
	sessions  repositories.SessionRepository
	parser    DocumentParserService
	generator QuestionGeneratorService
	evaluator AnswerEvaluatorService
	composer  ReportComposerService
	storage   ReportStorage
	logger    *logrus.Entry
}

func NewInterviewService(
	sessions repositories.SessionRepository,
	parser DocumentParserService,
	generator QuestionGeneratorService,
	evaluator AnswerEvaluatorService,
	composer ReportComposerService,
	storage ReportStorage,
	logger *logrus.Logger,
) InterviewService {
	return &interviewService{
		sessions:  sessions,
		parser:    parser,
		generator: generator,
		evaluator: evaluator,
		composer:  composer,
		storage:   storage,
		logger:    logger.WithField("component", "interview"),
	}
}

// CreateSession implements InterviewService.
func (s *interviewService) CreateSession(ctx context.Context, fileName string, data []byte, format DocumentFormat) (*models.InterviewSession, error) {
	profile, err := s.parser.ParseDocument(data, format)
	if err != nil {
		return nil, err
	}

	session := &models.InterviewSession{
		ID:               uuid.New(),
		OriginalFileName: fileName,
		CandidateName:    profile.ContactInfo.Name,
		Status:           models.SessionCreated,
		Profile:          profile,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"file":       fileName,
	}).Info("📄 Interview session created")
	return session, nil
}

// GetSession implements InterviewService.
func (s *interviewService) GetSession(id uuid.UUID) (*models.InterviewSession, error) {
	return s.sessions.FindByID(id)
}

// GenerateQuestions implements InterviewService. Regenerating a round discards
// its earlier evaluation.
func (s *interviewService) GenerateQuestions(ctx context.Context, id uuid.UUID, round models.RoundType, count int) ([]models.Question, error) {
	session, err := s.sessions.FindByID(id)
	if err != nil {
		return nil, err
	}

	questions, err := s.generator.GenerateQuestions(ctx, session.Profile, round, count)
	if err != nil {
		return nil, err
	}

	session.SetQuestions(round, questions)
	session.SetRound(round, nil)
	session.Status = models.SessionQuestionsReady
	if err := s.sessions.Update(session); err != nil {
		return nil, err
	}
	return questions, nil
}

// SubmitAnswers implements InterviewService.
func (s *interviewService) SubmitAnswers(ctx context.Context, id uuid.UUID, round models.RoundType, answers []models.Answer) (*models.RoundEvaluation, error) {
	session, err := s.sessions.FindByID(id)
	if err != nil {
		return nil, err
	}

	questions := session.Questions(round)
	if len(questions) == 0 {
		return nil, ErrQuestionsNotGenerated
	}

	roundEval, err := s.evaluator.EvaluateRound(ctx, questions, answers, round)
	if err != nil {
		return nil, err
	}

	session.SetRound(round, roundEval)
	session.Status = models.SessionEvaluated
	if err := s.sessions.Update(session); err != nil {
		return nil, err
	}
	return roundEval, nil
}

// GenerateReport implements InterviewService. The PDF copy is best effort.
func (s *interviewService) GenerateReport(ctx context.Context, id uuid.UUID) (*models.InterviewReport, error) {
	session, err := s.sessions.FindByID(id)
	if err != nil {
		return nil, err
	}

	report := s.composer.ComposeReport(ctx, session.Profile, session.HRRound, session.TechnicalRound)
	session.Report = report
	session.Status = models.SessionReported

	if path, err := s.savePDF(session.ID, report); err != nil {
		s.logger.WithError(err).WithField("session_id", session.ID).Warn("❌ Failed to save PDF report")
	} else {
		session.ReportPath = path
	}

	if err := s.sessions.Update(session); err != nil {
		return nil, err
	}
	return report, nil
}

// ReportFile implements InterviewService. A missing PDF is re-rendered from
// the stored report.
func (s *interviewService) ReportFile(id uuid.UUID) (string, error) {
	session, err := s.sessions.FindByID(id)
	if err != nil {
		return "", err
	}
	if session.Report == nil {
		return "", ErrReportNotGenerated
	}

	if session.ReportPath != "" {
		if _, err := os.Stat(session.ReportPath); err == nil {
			return session.ReportPath, nil
		}
	}

	path, err := s.savePDF(session.ID, session.Report)
	if err != nil {
		return "", err
	}
	session.ReportPath = path
	if err := s.sessions.Update(session); err != nil {
		return "", err
	}
	return path, nil
}

func (s *interviewService) savePDF(id uuid.UUID, report *models.InterviewReport) (string, error) {
	pdf, err := RenderReportPDF(report)
	if err != nil {
		return "", err
	}
	return s.storage.SaveReport(id, pdf)
}

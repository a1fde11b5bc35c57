package repositories

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"alfredoptarigan/interview-practice/internal/models"
)

var ErrSessionNotFound = errors.New("interview session not found")

type SessionRepository interface {
	Create(session *models.InterviewSession) error
	FindByID(id uuid.UUID) (*models.InterviewSession, error)
	Update(session *models.InterviewSession) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.InterviewSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if err := r.db.Create(session).Error; err != nil {
		return errors.Wrap(err, "failed to create interview session")
	}
	return nil
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*models.InterviewSession, error) {
	var session models.InterviewSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "failed to find interview session")
	}
	return &session, nil
}

// Update saves every column of session.
func (r *sessionRepository) Update(session *models.InterviewSession) error {
	if err := r.db.Save(session).Error; err != nil {
		return errors.Wrap(err, "failed to update interview session")
	}
	return nil
}

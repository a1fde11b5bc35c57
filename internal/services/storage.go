package services

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ReportStorage keeps rendered PDF reports on local disk, one file per session.
type ReportStorage interface {
	EnsureReportDir() error
	SaveReport(sessionID uuid.UUID, pdf []byte) (string, error)
	GetReportPath(sessionID uuid.UUID) string
	DeleteReport(sessionID uuid.UUID) error
}

type reportStorage struct {
	reportsPath string
}

func NewReportStorage(reportsPath string) ReportStorage {
	return &reportStorage{
		reportsPath: reportsPath,
	}
}

func (s *reportStorage) EnsureReportDir() error {
	if err := os.MkdirAll(s.reportsPath, 0755); err != nil {
		return errors.Wrap(err, "failed to create reports directory")
	}
	return nil
}

func (s *reportStorage) SaveReport(sessionID uuid.UUID, pdf []byte) (string, error) {
	if err := s.EnsureReportDir(); err != nil {
		return "", err
	}

	path := s.GetReportPath(sessionID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, pdf, 0644); err != nil {
		return "", errors.Wrap(err, "failed to write report")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", errors.Wrap(err, "failed to save report")
	}
	return path, nil
}

func (s *reportStorage) GetReportPath(sessionID uuid.UUID) string {
	return filepath.Join(s.reportsPath, "interview_report_"+sessionID.String()+".pdf")
}

func (s *reportStorage) DeleteReport(sessionID uuid.UUID) error {
	if err := os.Remove(s.GetReportPath(sessionID)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to delete report")
	}
	return nil
}

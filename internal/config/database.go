package config

import (
	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/interview-practice/internal/models"
)

func InitDatabase(cfg *Config, log *logrus.Logger) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if cfg.Server.Env == "development" {
		db.Logger = logger.Default.LogMode(logger.Info)
	}

	log.Info("✅ Database connected successfully")

	if err := db.AutoMigrate(&models.InterviewSession{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	log.Info("✅ Database migration completed")

	return db, nil
}

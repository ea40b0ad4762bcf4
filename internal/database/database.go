package database

import (
	"fmt"

	"github.com/musa-q/MyArabicLearner/internal/config"
	"github.com/musa-q/MyArabicLearner/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.VocabCategory{},
		&models.VocabWord{},
		&models.Verb{},
		&models.VerbConjugation{},
		&models.VocabQuiz{},
		&models.VocabQuizQuestion{},
		&models.VerbConjugationQuiz{},
		&models.VerbConjugationQuizQuestion{},
		&models.Feedback{},
	)
}

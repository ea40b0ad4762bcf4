package services

import (
	"testing"
	"time"

	"github.com/musa-q/MyArabicLearner/internal/config"
	"github.com/musa-q/MyArabicLearner/internal/database"
	"github.com/musa-q/MyArabicLearner/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// The pool must stay on one connection or each one gets its own
	// in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		Auth: config.Auth{
			LoginTokenTTL:           15 * time.Minute,
			AccessTokenTTL:          30 * time.Minute,
			RefreshTokenTTL:         720 * time.Hour,
			MaxDevicesPerUser:       2,
			MaxDeviceSessionsPerDay: 20,
			MaxIPRequestsPerHour:    120,
		},
		Quiz: config.Quiz{DefaultQuestionCount: 10},
	}
}

// captureMailer records outgoing login tokens instead of sending email.
type captureMailer struct {
	tokens map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{tokens: make(map[string]string)}
}

func (m *captureMailer) SendLoginToken(email, token string) error {
	m.tokens[email] = token
	return nil
}

func createUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := models.User{Username: username, Email: email, Role: models.RoleBasic}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func createCategory(t *testing.T, db *gorm.DB, name string, words [][2]string) *models.VocabCategory {
	t.Helper()
	category := models.VocabCategory{CategoryName: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category %s: %v", name, err)
	}
	for _, pair := range words {
		word := models.VocabWord{CategoryID: category.ID, English: pair[0], Arabic: pair[1]}
		if err := db.Create(&word).Error; err != nil {
			t.Fatalf("failed to create word %s: %v", pair[0], err)
		}
	}
	return &category
}

func createVerb(t *testing.T, db *gorm.DB, english, arabic string, conjugations [][3]string) *models.Verb {
	t.Helper()
	verb := models.Verb{EnglishVerb: english, ArabicVerb: arabic}
	if err := db.Create(&verb).Error; err != nil {
		t.Fatalf("failed to create verb %s: %v", english, err)
	}
	for _, c := range conjugations {
		record := models.VerbConjugation{VerbID: verb.ID, Tense: c[0], Pronoun: c[1], Conjugation: c[2]}
		if err := db.Create(&record).Error; err != nil {
			t.Fatalf("failed to create conjugation: %v", err)
		}
	}
	return &verb
}

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/musa-q/MyArabicLearner/internal/models"

	"gorm.io/gorm"
)

func TestDeleteUserRemovesEverythingItOwns(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	quizzes := NewQuizService(db, testConfig())
	feedback := NewFeedbackService(db)

	user := createUser(t, db, "sara", "sara@example.com")
	survivor := createUser(t, db, "omar", "omar@example.com")
	category := createCategory(t, db, "animals", [][2]string{{"lion", "أسد"}})
	createVerb(t, db, "to write", "كتب", [][3]string{{"past", "أنا", "كتبت"}})

	if err := db.Create(&models.Session{
		UserID:           user.ID,
		DeviceIdentifier: "laptop",
		LastUsed:         time.Now(),
	}).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := feedback.Submit(user.ID, 5, "great"); err != nil {
		t.Fatalf("failed to create feedback: %v", err)
	}
	if _, _, err := quizzes.CreateVocabQuiz(user.ID, category.ID, "", 1); err != nil {
		t.Fatalf("failed to create vocab quiz: %v", err)
	}
	if _, _, err := quizzes.CreateVerbConjugationQuiz(user.ID, 1); err != nil {
		t.Fatalf("failed to create verb quiz: %v", err)
	}
	if _, _, err := quizzes.CreateVocabQuiz(survivor.ID, category.ID, "", 1); err != nil {
		t.Fatalf("failed to create survivor quiz: %v", err)
	}

	if err := svc.DeleteUser("sara", ""); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if err := db.Where("email = ?", "sara@example.com").First(&models.User{}).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected user row to be gone, got %v", err)
	}

	owned := map[string]interface{}{
		"sessions":      &models.Session{},
		"feedback":      &models.Feedback{},
		"vocab quizzes": &models.VocabQuiz{},
		"verb quizzes":  &models.VerbConjugationQuiz{},
	}
	for name, model := range owned {
		if count := countRows(t, db, model, user.ID); count != 0 {
			t.Errorf("Expected no %s left for deleted user, got %d", name, count)
		}
	}

	var questionCount int64
	if err := db.Model(&models.VocabQuizQuestion{}).Count(&questionCount).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if questionCount != 1 {
		t.Errorf("Expected only the survivor's question to remain, got %d", questionCount)
	}

	if err := db.First(&models.User{}, survivor.ID).Error; err != nil {
		t.Errorf("Expected other users to survive, got %v", err)
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, userID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestDeleteUserValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	if err := svc.DeleteUser("", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation without a selector, got %v", err)
	}
	if err := svc.DeleteUser("", "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestListUsersOrderedByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	createUser(t, db, "sara", "sara@example.com")
	createUser(t, db, "omar", "omar@example.com")

	users, err := svc.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 || users[0].Username != "sara" {
		t.Errorf("Unexpected listing: %+v", users)
	}
}

package services

import (
	"errors"

	"github.com/musa-q/MyArabicLearner/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("id ASC").Find(&users).Error
	return users, err
}

// DeleteUser removes a user and everything it owns in one transaction:
// sessions, both quiz variants with their questions, and feedback.
func (s *UserService) DeleteUser(username, email string) error {
	query := s.db
	switch {
	case username != "":
		query = query.Where("username = ?", username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		return ErrValidation
	}

	var user models.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)",
			tx.Model(&models.VocabQuiz{}).Select("id").Where("user_id = ?", user.ID),
		).Delete(&models.VocabQuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.VocabQuiz{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id IN (?)",
			tx.Model(&models.VerbConjugationQuiz{}).Select("id").Where("user_id = ?", user.ID),
		).Delete(&models.VerbConjugationQuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.VerbConjugationQuiz{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

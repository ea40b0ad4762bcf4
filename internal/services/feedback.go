package services

import (
	"time"

	"github.com/musa-q/MyArabicLearner/internal/models"

	"gorm.io/gorm"
)

type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

func (s *FeedbackService) Submit(userID uint, rating int, message string) error {
	feedback := models.Feedback{
		UserID:    userID,
		Rating:    rating,
		Message:   message,
		Timestamp: time.Now(),
	}
	return s.db.Create(&feedback).Error
}

func (s *FeedbackService) List() ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := s.db.Order("timestamp DESC").Find(&feedback).Error
	return feedback, err
}

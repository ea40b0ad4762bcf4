package services

import (
	"errors"
	"time"

	"github.com/musa-q/MyArabicLearner/internal/models"

	"gorm.io/gorm"
)

// vocabBackend binds the quiz engine to the vocabulary tables.
type vocabBackend struct{}

func (vocabBackend) createQuiz(tx *gorm.DB, userID, categoryID uint, count int) (*quizHeader, error) {
	var words []models.VocabWord
	err := tx.Where("category_id = ?", categoryID).
		Order("RANDOM()").
		Limit(count).
		Find(&words).Error
	if err != nil {
		return nil, err
	}
	if len(words) < count {
		count = len(words)
	}

	quiz := models.VocabQuiz{
		UserID:         userID,
		CategoryID:     categoryID,
		TotalQuestions: count,
		DateTaken:      time.Now(),
	}
	if err := tx.Create(&quiz).Error; err != nil {
		return nil, err
	}

	if len(words) > 0 {
		questions := make([]models.VocabQuizQuestion, 0, len(words))
		for _, word := range words {
			questions = append(questions, models.VocabQuizQuestion{QuizID: quiz.ID, WordID: word.ID})
		}
		if err := tx.Create(&questions).Error; err != nil {
			return nil, err
		}
	}

	return vocabHeader(&quiz), nil
}

func (vocabBackend) currentQuiz(db *gorm.DB, userID uint) (*quizHeader, error) {
	var quiz models.VocabQuiz
	err := db.Where("user_id = ?", userID).Order("date_taken DESC").First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vocabHeader(&quiz), nil
}

func (vocabBackend) quizByID(db *gorm.DB, quizID, userID uint) (*quizHeader, error) {
	var quiz models.VocabQuiz
	err := db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return vocabHeader(&quiz), nil
}

func (vocabBackend) listQuizzes(db *gorm.DB, userID uint) ([]quizHeader, error) {
	var quizzes []models.VocabQuiz
	err := db.Where("user_id = ?", userID).Order("date_taken DESC").Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	headers := make([]quizHeader, 0, len(quizzes))
	for i := range quizzes {
		headers = append(headers, *vocabHeader(&quizzes[i]))
	}
	return headers, nil
}

func (vocabBackend) nextQuestion(db *gorm.DB, quizID uint) (*NextQuestion, string, error) {
	var question models.VocabQuizQuestion
	err := db.Where("quiz_id = ? AND is_answered = ?", quizID, false).
		Order("id ASC").
		Preload("Word").
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &NextQuestion{
		QuestionID: question.ID,
		QuizID:     question.QuizID,
		English:    question.Word.English,
		WordID:     question.WordID,
	}, question.Word.Arabic, nil
}

func (vocabBackend) question(db *gorm.DB, questionID uint) (*questionRecord, error) {
	var question models.VocabQuizQuestion
	err := db.Preload("Word").First(&question, questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var quiz models.VocabQuiz
	if err := db.First(&quiz, question.QuizID).Error; err != nil {
		return nil, err
	}
	return &questionRecord{
		ID:            question.ID,
		QuizID:        question.QuizID,
		QuizUserID:    quiz.UserID,
		IsAnswered:    question.IsAnswered,
		CorrectAnswer: question.Word.Arabic,
	}, nil
}

func (vocabBackend) markAnswered(tx *gorm.DB, questionID uint, userAnswer string, correct bool) error {
	return tx.Model(&models.VocabQuizQuestion{}).Where("id = ?", questionID).
		Updates(map[string]interface{}{
			"is_answered": true,
			"is_correct":  correct,
			"user_answer": userAnswer,
		}).Error
}

func (vocabBackend) incrementScore(tx *gorm.DB, quizID uint) error {
	return tx.Model(&models.VocabQuiz{}).Where("id = ?", quizID).
		Update("score", gorm.Expr("score + 1")).Error
}

func (vocabBackend) answeredCount(db *gorm.DB, quizID uint) (int64, error) {
	var count int64
	err := db.Model(&models.VocabQuizQuestion{}).
		Where("quiz_id = ? AND is_answered = ?", quizID, true).
		Count(&count).Error
	return count, err
}

func (vocabBackend) unansweredCount(db *gorm.DB, quizID uint) (int64, error) {
	var count int64
	err := db.Model(&models.VocabQuizQuestion{}).
		Where("quiz_id = ? AND is_answered = ?", quizID, false).
		Count(&count).Error
	return count, err
}

func (vocabBackend) results(db *gorm.DB, quizID uint) ([]QuestionResult, error) {
	var questions []models.VocabQuizQuestion
	err := db.Where("quiz_id = ?", quizID).
		Order("id ASC").
		Preload("Word").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	results := make([]QuestionResult, 0, len(questions))
	for _, question := range questions {
		results = append(results, QuestionResult{
			QuestionID:    question.ID,
			Question:      question.Word.English,
			UserAnswer:    question.UserAnswer,
			CorrectAnswer: question.Word.Arabic,
			IsCorrect:     question.IsCorrect,
		})
	}
	return results, nil
}

func (vocabBackend) topicName(db *gorm.DB, quiz *quizHeader) string {
	var category models.VocabCategory
	if err := db.First(&category, quiz.CategoryID).Error; err != nil {
		return ""
	}
	return category.CategoryName
}

func vocabHeader(quiz *models.VocabQuiz) *quizHeader {
	return &quizHeader{
		ID:             quiz.ID,
		UserID:         quiz.UserID,
		CategoryID:     quiz.CategoryID,
		Score:          quiz.Score,
		TotalQuestions: quiz.TotalQuestions,
		DateTaken:      quiz.DateTaken,
	}
}

// verbBackend binds the quiz engine to the verb-conjugation tables. The pool
// is every conjugation; there is no topic.
type verbBackend struct{}

func (verbBackend) createQuiz(tx *gorm.DB, userID, _ uint, count int) (*quizHeader, error) {
	var conjugations []models.VerbConjugation
	err := tx.Order("RANDOM()").Limit(count).Find(&conjugations).Error
	if err != nil {
		return nil, err
	}
	if len(conjugations) < count {
		count = len(conjugations)
	}

	quiz := models.VerbConjugationQuiz{
		UserID:         userID,
		TotalQuestions: count,
		DateTaken:      time.Now(),
	}
	if err := tx.Create(&quiz).Error; err != nil {
		return nil, err
	}

	if len(conjugations) > 0 {
		questions := make([]models.VerbConjugationQuizQuestion, 0, len(conjugations))
		for _, conjugation := range conjugations {
			questions = append(questions, models.VerbConjugationQuizQuestion{
				QuizID:            quiz.ID,
				VerbConjugationID: conjugation.ID,
			})
		}
		if err := tx.Create(&questions).Error; err != nil {
			return nil, err
		}
	}

	return verbHeader(&quiz), nil
}

func (verbBackend) currentQuiz(db *gorm.DB, userID uint) (*quizHeader, error) {
	var quiz models.VerbConjugationQuiz
	err := db.Where("user_id = ?", userID).Order("date_taken DESC").First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return verbHeader(&quiz), nil
}

func (verbBackend) quizByID(db *gorm.DB, quizID, userID uint) (*quizHeader, error) {
	var quiz models.VerbConjugationQuiz
	err := db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return verbHeader(&quiz), nil
}

func (verbBackend) listQuizzes(db *gorm.DB, userID uint) ([]quizHeader, error) {
	var quizzes []models.VerbConjugationQuiz
	err := db.Where("user_id = ?", userID).Order("date_taken DESC").Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	headers := make([]quizHeader, 0, len(quizzes))
	for i := range quizzes {
		headers = append(headers, *verbHeader(&quizzes[i]))
	}
	return headers, nil
}

func (verbBackend) nextQuestion(db *gorm.DB, quizID uint) (*NextQuestion, string, error) {
	var question models.VerbConjugationQuizQuestion
	err := db.Where("quiz_id = ? AND is_answered = ?", quizID, false).
		Order("id ASC").
		Preload("VerbConjugation.Verb").
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &NextQuestion{
		QuestionID:        question.ID,
		QuizID:            question.QuizID,
		EnglishVerb:       question.VerbConjugation.Verb.EnglishVerb,
		ArabicVerb:        question.VerbConjugation.Verb.ArabicVerb,
		Tense:             question.VerbConjugation.Tense,
		Pronoun:           question.VerbConjugation.Pronoun,
		VerbConjugationID: question.VerbConjugationID,
	}, question.VerbConjugation.Conjugation, nil
}

func (verbBackend) question(db *gorm.DB, questionID uint) (*questionRecord, error) {
	var question models.VerbConjugationQuizQuestion
	err := db.Preload("VerbConjugation").First(&question, questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var quiz models.VerbConjugationQuiz
	if err := db.First(&quiz, question.QuizID).Error; err != nil {
		return nil, err
	}
	return &questionRecord{
		ID:            question.ID,
		QuizID:        question.QuizID,
		QuizUserID:    quiz.UserID,
		IsAnswered:    question.IsAnswered,
		CorrectAnswer: question.VerbConjugation.Conjugation,
	}, nil
}

func (verbBackend) markAnswered(tx *gorm.DB, questionID uint, userAnswer string, correct bool) error {
	return tx.Model(&models.VerbConjugationQuizQuestion{}).Where("id = ?", questionID).
		Updates(map[string]interface{}{
			"is_answered": true,
			"is_correct":  correct,
			"user_answer": userAnswer,
		}).Error
}

func (verbBackend) incrementScore(tx *gorm.DB, quizID uint) error {
	return tx.Model(&models.VerbConjugationQuiz{}).Where("id = ?", quizID).
		Update("score", gorm.Expr("score + 1")).Error
}

func (verbBackend) answeredCount(db *gorm.DB, quizID uint) (int64, error) {
	var count int64
	err := db.Model(&models.VerbConjugationQuizQuestion{}).
		Where("quiz_id = ? AND is_answered = ?", quizID, true).
		Count(&count).Error
	return count, err
}

func (verbBackend) unansweredCount(db *gorm.DB, quizID uint) (int64, error) {
	var count int64
	err := db.Model(&models.VerbConjugationQuizQuestion{}).
		Where("quiz_id = ? AND is_answered = ?", quizID, false).
		Count(&count).Error
	return count, err
}

func (verbBackend) results(db *gorm.DB, quizID uint) ([]QuestionResult, error) {
	var questions []models.VerbConjugationQuizQuestion
	err := db.Where("quiz_id = ?", quizID).
		Order("id ASC").
		Preload("VerbConjugation.Verb").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	results := make([]QuestionResult, 0, len(questions))
	for _, question := range questions {
		results = append(results, QuestionResult{
			QuestionID:    question.ID,
			EnglishVerb:   question.VerbConjugation.Verb.EnglishVerb,
			ArabicVerb:    question.VerbConjugation.Verb.ArabicVerb,
			Tense:         question.VerbConjugation.Tense,
			Pronoun:       question.VerbConjugation.Pronoun,
			UserAnswer:    question.UserAnswer,
			CorrectAnswer: question.VerbConjugation.Conjugation,
			IsCorrect:     question.IsCorrect,
		})
	}
	return results, nil
}

func (verbBackend) topicName(_ *gorm.DB, _ *quizHeader) string {
	return "Verb Conjugation"
}

func verbHeader(quiz *models.VerbConjugationQuiz) *quizHeader {
	return &quizHeader{
		ID:             quiz.ID,
		UserID:         quiz.UserID,
		Score:          quiz.Score,
		TotalQuestions: quiz.TotalQuestions,
		DateTaken:      quiz.DateTaken,
	}
}

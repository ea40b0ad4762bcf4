package models

import "time"

// Quizzes are disambiguated per user by creation instant, hence the composite
// unique index on (user_id, date_taken).

type VocabQuiz struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	UserID         uint                `gorm:"not null;uniqueIndex:idx_vocab_quiz_user_date" json:"user_id"`
	User           User                `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CategoryID     uint                `gorm:"not null;index" json:"category_id"`
	Category       VocabCategory       `gorm:"foreignKey:CategoryID" json:"-"`
	Score          int                 `gorm:"not null;default:0" json:"score"`
	TotalQuestions int                 `gorm:"not null" json:"total_questions"`
	DateTaken      time.Time           `gorm:"not null;uniqueIndex:idx_vocab_quiz_user_date" json:"date_taken"`
	Questions      []VocabQuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type VocabQuizQuestion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuizID     uint      `gorm:"not null;index" json:"quiz_id"`
	WordID     uint      `gorm:"not null" json:"word_id"`
	Word       VocabWord `gorm:"foreignKey:WordID" json:"-"`
	IsAnswered bool      `gorm:"not null;default:false" json:"is_answered"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"is_correct"`
	UserAnswer string    `gorm:"size:255" json:"user_answer,omitempty"`
}

type VerbConjugationQuiz struct {
	ID             uint                          `gorm:"primaryKey" json:"id"`
	UserID         uint                          `gorm:"not null;uniqueIndex:idx_verb_quiz_user_date" json:"user_id"`
	User           User                          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Score          int                           `gorm:"not null;default:0" json:"score"`
	TotalQuestions int                           `gorm:"not null" json:"total_questions"`
	DateTaken      time.Time                     `gorm:"not null;uniqueIndex:idx_verb_quiz_user_date" json:"date_taken"`
	Questions      []VerbConjugationQuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type VerbConjugationQuizQuestion struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	QuizID            uint            `gorm:"not null;index" json:"quiz_id"`
	VerbConjugationID uint            `gorm:"not null" json:"verb_conjugation_id"`
	VerbConjugation   VerbConjugation `gorm:"foreignKey:VerbConjugationID" json:"-"`
	IsAnswered        bool            `gorm:"not null;default:false" json:"is_answered"`
	IsCorrect         bool            `gorm:"not null;default:false" json:"is_correct"`
	UserAnswer        string          `gorm:"size:255" json:"user_answer,omitempty"`
}

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/musa-q/MyArabicLearner/internal/config"
	"github.com/musa-q/MyArabicLearner/internal/models"

	"gorm.io/gorm"
)

// QuizType tags the two quiz variants. The values double as the wire format
// clients send in quiz_type.
type QuizType string

const (
	QuizTypeVocab           QuizType = "VocabQuiz"
	QuizTypeVerbConjugation QuizType = "VerbConjugationQuiz"
)

// ParseQuizType maps the wire value onto a QuizType, defaulting to vocabulary
// when unset.
func ParseQuizType(s string) (QuizType, error) {
	switch QuizType(s) {
	case "":
		return QuizTypeVocab, nil
	case QuizTypeVocab, QuizTypeVerbConjugation:
		return QuizType(s), nil
	}
	return "", ErrValidation
}

const (
	quizLookupRetries = 3
	quizLookupBackoff = time.Second
)

var alefFolder = strings.NewReplacer("أ", "ا", "إ", "ا", "آ", "ا", "ٱ", "ا")

// NormalizeArabic folds the alef variants to the bare alef so spelling
// differences in hamza placement do not fail an answer.
func NormalizeArabic(text string) string {
	return alefFolder.Replace(text)
}

// NextQuestion is the prompt payload for the first unanswered question.
// Vocabulary and verb-conjugation quizzes fill different fields.
type NextQuestion struct {
	QuestionID uint `json:"question_id"`
	QuizID     uint `json:"quiz_id"`

	English string `json:"english,omitempty"`
	WordID  uint   `json:"word_id,omitempty"`

	EnglishVerb       string `json:"english_verb,omitempty"`
	ArabicVerb        string `json:"arabic_verb,omitempty"`
	Tense             string `json:"tense,omitempty"`
	Pronoun           string `json:"pronoun,omitempty"`
	VerbConjugationID uint   `json:"verb_conjugation_id,omitempty"`
}

// QuestionResult is one graded question in a results or details listing.
type QuestionResult struct {
	QuestionID    uint   `json:"question_id"`
	Question      string `json:"question,omitempty"`
	EnglishVerb   string `json:"english_verb,omitempty"`
	ArabicVerb    string `json:"arabic_verb,omitempty"`
	Tense         string `json:"tense,omitempty"`
	Pronoun       string `json:"pronoun,omitempty"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

type QuizResults struct {
	Score     int              `json:"score"`
	Total     int              `json:"total"`
	Category  string           `json:"category,omitempty"`
	Username  string           `json:"username"`
	Date      time.Time        `json:"date"`
	Questions []QuestionResult `json:"questions"`
}

type CompletedQuizInfo struct {
	QuizID         uint      `json:"quiz_id"`
	DateCompleted  time.Time `json:"date_completed"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Category       string    `json:"category"`
}

type QuizDetails struct {
	ID             uint             `json:"id"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	DateTaken      time.Time        `json:"date_taken"`
	CategoryName   string           `json:"category_name,omitempty"`
	Questions      []QuestionResult `json:"questions"`
}

type CategoryBestScore struct {
	CategoryID     uint       `json:"category_id"`
	CategoryName   string     `json:"category_name"`
	TotalWords     int64      `json:"total_words"`
	BestScore      *int       `json:"best_score"`
	BestPercentage *float64   `json:"best_percentage"`
	TotalAttempts  int64      `json:"total_attempts"`
	QuizDate       *time.Time `json:"quiz_date,omitempty"`
}

// quizHeader is the variant-neutral view of a quiz row.
type quizHeader struct {
	ID             uint
	UserID         uint
	CategoryID     uint
	Score          int
	TotalQuestions int
	DateTaken      time.Time
}

// questionRecord is the variant-neutral view of a question row plus its quiz
// owner and resolved correct answer.
type questionRecord struct {
	ID            uint
	QuizID        uint
	QuizUserID    uint
	IsAnswered    bool
	CorrectAnswer string
}

// quizBackend is the per-variant storage plumbing. All quiz semantics live in
// QuizService; a backend only knows its tables.
type quizBackend interface {
	createQuiz(tx *gorm.DB, userID, topicID uint, count int) (*quizHeader, error)
	currentQuiz(db *gorm.DB, userID uint) (*quizHeader, error)
	quizByID(db *gorm.DB, quizID, userID uint) (*quizHeader, error)
	listQuizzes(db *gorm.DB, userID uint) ([]quizHeader, error)
	nextQuestion(db *gorm.DB, quizID uint) (*NextQuestion, string, error)
	question(db *gorm.DB, questionID uint) (*questionRecord, error)
	markAnswered(tx *gorm.DB, questionID uint, userAnswer string, correct bool) error
	incrementScore(tx *gorm.DB, quizID uint) error
	answeredCount(db *gorm.DB, quizID uint) (int64, error)
	unansweredCount(db *gorm.DB, quizID uint) (int64, error)
	results(db *gorm.DB, quizID uint) ([]QuestionResult, error)
	topicName(db *gorm.DB, quiz *quizHeader) string
}

// QuizService is the quiz state machine: Created -> InProgress -> Complete.
type QuizService struct {
	db       *gorm.DB
	cfg      *config.Config
	backends map[QuizType]quizBackend
	sleep    func(time.Duration)
}

func NewQuizService(db *gorm.DB, cfg *config.Config) *QuizService {
	return &QuizService{
		db:  db,
		cfg: cfg,
		backends: map[QuizType]quizBackend{
			QuizTypeVocab:           vocabBackend{},
			QuizTypeVerbConjugation: verbBackend{},
		},
		sleep: time.Sleep,
	}
}

func (s *QuizService) backend(qt QuizType) (quizBackend, error) {
	b, ok := s.backends[qt]
	if !ok {
		return nil, ErrValidation
	}
	return b, nil
}

// CreateVocabQuiz samples words from the category and creates the quiz with
// its questions atomically. A pool smaller than requested shrinks the quiz.
func (s *QuizService) CreateVocabQuiz(userID, categoryID uint, categoryName string, numQuestions int) (uint, int, error) {
	if categoryID == 0 {
		if categoryName == "" {
			return 0, 0, ErrValidation
		}
		var category models.VocabCategory
		err := s.db.Where("category_name = ?", strings.ToLower(categoryName)).First(&category).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, 0, ErrNotFound
			}
			return 0, 0, err
		}
		categoryID = category.ID
	} else {
		var category models.VocabCategory
		if err := s.db.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, 0, ErrNotFound
			}
			return 0, 0, err
		}
	}

	return s.createQuiz(QuizTypeVocab, userID, categoryID, numQuestions)
}

// CreateVerbConjugationQuiz samples from the whole conjugation pool.
func (s *QuizService) CreateVerbConjugationQuiz(userID uint, numQuestions int) (uint, int, error) {
	return s.createQuiz(QuizTypeVerbConjugation, userID, 0, numQuestions)
}

func (s *QuizService) createQuiz(qt QuizType, userID, topicID uint, numQuestions int) (uint, int, error) {
	b, err := s.backend(qt)
	if err != nil {
		return 0, 0, err
	}
	if numQuestions <= 0 {
		numQuestions = s.cfg.Quiz.DefaultQuestionCount
	}

	var quiz *quizHeader
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		quiz, txErr = b.createQuiz(tx, userID, topicID, numQuestions)
		return txErr
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, 0, ErrConflict
		}
		return 0, 0, err
	}
	return quiz.ID, quiz.TotalQuestions, nil
}

// GetNextQuestion returns the first unanswered question of the given quiz (or
// of the current quiz when quizID is zero) together with the correct answer as
// a hint. allAnswered is true when no question remains or no quiz exists.
func (s *QuizService) GetNextQuestion(qt QuizType, userID, quizID uint) (question *NextQuestion, hint string, allAnswered bool, err error) {
	b, err := s.backend(qt)
	if err != nil {
		return nil, "", false, err
	}

	var quiz *quizHeader
	if quizID != 0 {
		quiz, err = b.quizByID(s.db, quizID, userID)
	} else {
		quiz, err = s.currentQuizWithRetry(b, userID)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", true, nil
		}
		return nil, "", false, err
	}

	question, hint, err = b.nextQuestion(s.db, quiz.ID)
	if err != nil {
		return nil, "", false, err
	}
	if question == nil {
		return nil, "", true, nil
	}
	return question, hint, false, nil
}

// currentQuizWithRetry absorbs the race between quiz creation and the first
// question fetch arriving on another request: the client never sees a
// transient not-found for a just-created quiz.
func (s *QuizService) currentQuizWithRetry(b quizBackend, userID uint) (*quizHeader, error) {
	for attempt := 0; ; attempt++ {
		quiz, err := b.currentQuiz(s.db, userID)
		if err == nil {
			return quiz, nil
		}
		if !errors.Is(err, ErrNotFound) || attempt >= quizLookupRetries-1 {
			return nil, err
		}
		s.sleep(quizLookupBackoff)
	}
}

// SubmitAnswer grades one question. A question is answered at most once and
// only by its quiz owner; grading and the score increment are one transaction.
func (s *QuizService) SubmitAnswer(qt QuizType, userID, questionID uint, userAnswer string) (bool, error) {
	b, err := s.backend(qt)
	if err != nil {
		return false, err
	}

	record, err := b.question(s.db, questionID)
	if err != nil {
		return false, err
	}
	if record.IsAnswered {
		return false, ErrAlreadyAnswered
	}
	if record.QuizUserID != userID {
		return false, ErrForbidden
	}

	correct := NormalizeArabic(userAnswer) == NormalizeArabic(record.CorrectAnswer)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := b.markAnswered(tx, questionID, userAnswer, correct); err != nil {
			return err
		}
		if correct {
			return b.incrementScore(tx, record.QuizID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return correct, nil
}

// AllAnswered reports whether the current quiz exists, has at least one
// answered question, and every question has been answered. Note that
// "current" means most recently created, not incomplete.
func (s *QuizService) AllAnswered(qt QuizType, userID uint) (bool, error) {
	b, err := s.backend(qt)
	if err != nil {
		return false, err
	}

	quiz, err := b.currentQuiz(s.db, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	answered, err := b.answeredCount(s.db, quiz.ID)
	if err != nil {
		return false, err
	}
	return answered >= 1 && answered >= int64(quiz.TotalQuestions), nil
}

// GetResults returns the graded breakdown of the current quiz. Callers must
// gate on AllAnswered first.
func (s *QuizService) GetResults(qt QuizType, userID uint) (*QuizResults, error) {
	b, err := s.backend(qt)
	if err != nil {
		return nil, err
	}

	quiz, err := b.currentQuiz(s.db, userID)
	if err != nil {
		return nil, err
	}
	questions, err := b.results(s.db, quiz.ID)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	return &QuizResults{
		Score:     quiz.Score,
		Total:     quiz.TotalQuestions,
		Category:  b.topicName(s.db, quiz),
		Username:  user.Username,
		Date:      quiz.DateTaken,
		Questions: questions,
	}, nil
}

// GetCompletedQuizzes lists every fully answered quiz of the type, most
// recent first.
func (s *QuizService) GetCompletedQuizzes(qt QuizType, userID uint) ([]CompletedQuizInfo, error) {
	b, err := s.backend(qt)
	if err != nil {
		return nil, err
	}

	quizzes, err := b.listQuizzes(s.db, userID)
	if err != nil {
		return nil, err
	}

	completed := make([]CompletedQuizInfo, 0, len(quizzes))
	for i := range quizzes {
		unanswered, err := b.unansweredCount(s.db, quizzes[i].ID)
		if err != nil {
			return nil, err
		}
		if unanswered > 0 {
			continue
		}
		completed = append(completed, CompletedQuizInfo{
			QuizID:         quizzes[i].ID,
			DateCompleted:  quizzes[i].DateTaken,
			Score:          quizzes[i].Score,
			TotalQuestions: quizzes[i].TotalQuestions,
			Category:       b.topicName(s.db, &quizzes[i]),
		})
	}
	return completed, nil
}

// GetQuizDetails returns the full breakdown of one owned quiz.
func (s *QuizService) GetQuizDetails(qt QuizType, userID, quizID uint) (*QuizDetails, error) {
	b, err := s.backend(qt)
	if err != nil {
		return nil, err
	}

	quiz, err := b.quizByID(s.db, quizID, userID)
	if err != nil {
		return nil, err
	}
	questions, err := b.results(s.db, quiz.ID)
	if err != nil {
		return nil, err
	}

	details := &QuizDetails{
		ID:             quiz.ID,
		Score:          quiz.Score,
		TotalQuestions: quiz.TotalQuestions,
		DateTaken:      quiz.DateTaken,
		Questions:      questions,
	}
	if qt == QuizTypeVocab {
		details.CategoryName = b.topicName(s.db, quiz)
	}
	return details, nil
}

// CategoryBestScores returns, per vocabulary category, the user's best quiz
// by percentage plus the attempt count.
func (s *QuizService) CategoryBestScores(userID uint) ([]CategoryBestScore, error) {
	var categories []models.VocabCategory
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, err
	}

	scores := make([]CategoryBestScore, 0, len(categories))
	for _, category := range categories {
		var wordCount int64
		err := s.db.Model(&models.VocabWord{}).
			Where("category_id = ?", category.ID).
			Count(&wordCount).Error
		if err != nil {
			return nil, err
		}

		var attempts int64
		err = s.db.Model(&models.VocabQuiz{}).
			Where("user_id = ? AND category_id = ?", userID, category.ID).
			Count(&attempts).Error
		if err != nil {
			return nil, err
		}

		entry := CategoryBestScore{
			CategoryID:    category.ID,
			CategoryName:  category.CategoryName,
			TotalWords:    wordCount,
			TotalAttempts: attempts,
		}

		var best models.VocabQuiz
		err = s.db.Where("user_id = ? AND category_id = ? AND total_questions > 0", userID, category.ID).
			Order("score * 100.0 / total_questions DESC").
			First(&best).Error
		if err == nil {
			percentage := float64(best.Score) / float64(best.TotalQuestions) * 100
			percentage = float64(int(percentage*10+0.5)) / 10
			entry.BestScore = &best.Score
			entry.BestPercentage = &percentage
			date := best.DateTaken
			entry.QuizDate = &date
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		scores = append(scores, entry)
	}
	return scores, nil
}

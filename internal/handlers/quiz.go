package handlers

import (
	"net/http"

	"github.com/musa-q/MyArabicLearner/internal/middleware"
	"github.com/musa-q/MyArabicLearner/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type CreateVocabQuizRequest struct {
	CategoryID        uint   `json:"category_id"`
	CategoryNameInput string `json:"category_name_input"`
	NumQuestions      int    `json:"num_questions"`
}

type CreateVerbQuizRequest struct {
	NumQuestions int `json:"num_questions"`
}

type QuizTypeRequest struct {
	QuizType string `json:"quiz_type"`
	QuizID   uint   `json:"quiz_id"`
}

type SendAnswerRequest struct {
	QuizType   string `json:"quiz_type"`
	QuestionID uint   `json:"question_id" binding:"required"`
	UserAnswer string `json:"user_answer"`
}

// CreateVocabQuiz godoc
// @Summary      Create a vocabulary quiz
// @Description  Sample random words from a category (by id or name) into a new quiz; the quiz shrinks to the pool size when the category is small
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateVocabQuizRequest true "Quiz parameters"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /quiz/create-vocab-quiz [post]
func (h *QuizHandler) CreateVocabQuiz(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateVocabQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.CategoryID == 0 && req.CategoryNameInput == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "category_id or category_name_input is required"})
		return
	}

	quizID, numQuestions, err := h.quizService.CreateVocabQuiz(user.ID, req.CategoryID, req.CategoryNameInput, req.NumQuestions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Vocabulary quiz created successfully",
		"quiz_id":       quizID,
		"num_questions": numQuestions,
	})
}

// CreateVerbConjugationQuiz godoc
// @Summary      Create a verb conjugation quiz
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateVerbQuizRequest true "Quiz parameters"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Router       /quiz/create-verb-conjugation-quiz [post]
func (h *QuizHandler) CreateVerbConjugationQuiz(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CreateVerbQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quizID, numQuestions, err := h.quizService.CreateVerbConjugationQuiz(user.ID, req.NumQuestions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Verb conjugation quiz created successfully",
		"quiz_id":       quizID,
		"num_questions": numQuestions,
	})
}

// GetNextQuestion godoc
// @Summary      Fetch the next unanswered question
// @Description  Returns the first unanswered question of the given quiz (or the current quiz) with the correct answer as a hint
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuizTypeRequest true "Quiz selector"
// @Success      200 {object} map[string]interface{}
// @Router       /quiz/get-next-question [post]
func (h *QuizHandler) GetNextQuestion(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req QuizTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	quizType, err := services.ParseQuizType(req.QuizType)
	if err != nil {
		respondError(c, err)
		return
	}

	question, hint, allAnswered, err := h.quizService.GetNextQuestion(quizType, user.ID, req.QuizID)
	if err != nil {
		respondError(c, err)
		return
	}
	if question == nil {
		c.JSON(http.StatusOK, gin.H{"question": nil, "all_answered": allAnswered})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question":     question,
		"hint":         hint,
		"all_answered": false,
	})
}

// SendAnswer godoc
// @Summary      Answer the identified question
// @Description  Grades the answer with alef-variant folding; a question can be answered only once and only by its quiz owner
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SendAnswerRequest true "Answer data"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /quiz/send-answer [post]
func (h *QuizHandler) SendAnswer(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req SendAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	quizType, err := services.ParseQuizType(req.QuizType)
	if err != nil {
		respondError(c, err)
		return
	}

	correct, err := h.quizService.SubmitAnswer(quizType, user.ID, req.QuestionID, req.UserAnswer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"answer_response": correct,
		"question_id":     req.QuestionID,
	})
}

// CheckQuizFinished godoc
// @Summary      Check whether the current quiz is fully answered
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuizTypeRequest true "Quiz selector"
// @Success      200 {object} map[string]bool
// @Router       /quiz/check-quiz-finished [post]
func (h *QuizHandler) CheckQuizFinished(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req QuizTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	quizType, err := services.ParseQuizType(req.QuizType)
	if err != nil {
		respondError(c, err)
		return
	}

	finished, err := h.quizService.AllAnswered(quizType, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"finished": finished})
}

// GetResults godoc
// @Summary      Fetch the graded results of the current quiz
// @Description  409 until every question is answered
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuizTypeRequest true "Quiz selector"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /quiz/get-results [post]
func (h *QuizHandler) GetResults(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req QuizTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	quizType, err := services.ParseQuizType(req.QuizType)
	if err != nil {
		respondError(c, err)
		return
	}

	finished, err := h.quizService.AllAnswered(quizType, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !finished {
		c.JSON(http.StatusConflict, gin.H{"quiz_answered": false, "results": nil})
		return
	}

	results, err := h.quizService.GetResults(quizType, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz_answered": true, "results": results})
}

// GetCompletedQuizzes godoc
// @Summary      List every fully answered quiz of a type
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuizTypeRequest true "Quiz selector"
// @Success      200 {object} map[string]interface{}
// @Router       /quiz/get-completed-quizzes [post]
func (h *QuizHandler) GetCompletedQuizzes(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req QuizTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	quizType, err := services.ParseQuizType(req.QuizType)
	if err != nil {
		respondError(c, err)
		return
	}

	completed, err := h.quizService.GetCompletedQuizzes(quizType, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":           user.ID,
		"quiz_type":         quizType,
		"completed_quizzes": completed,
	})
}

// GetQuizDetails godoc
// @Summary      Fetch the full breakdown of one owned quiz
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuizTypeRequest true "Quiz selector"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /quiz/get-quiz-details [post]
func (h *QuizHandler) GetQuizDetails(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req QuizTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if req.QuizID == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quiz_id is required"})
		return
	}
	quizType, err := services.ParseQuizType(req.QuizType)
	if err != nil {
		respondError(c, err)
		return
	}

	details, err := h.quizService.GetQuizDetails(quizType, user.ID, req.QuizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":   user.ID,
		"quiz_type": quizType,
		"quiz_data": details,
	})
}

// CategoryBestScores godoc
// @Summary      Best score per vocabulary category
// @Tags         quiz
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /quiz/category-best-scores [post]
func (h *QuizHandler) CategoryBestScores(c *gin.Context) {
	user := middleware.CurrentUser(c)

	scores, err := h.quizService.CategoryBestScores(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "best_scores": scores})
}

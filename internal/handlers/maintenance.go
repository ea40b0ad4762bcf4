package handlers

import (
	"net/http"

	"github.com/musa-q/MyArabicLearner/internal/services"

	"github.com/gin-gonic/gin"
)

// MaintenanceHandler exposes the admin content-maintenance routes. Responses
// use the {success, message} shape the admin frontend expects.
type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
}

func NewMaintenanceHandler(maintenanceService *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

type UpdateFlashcardRequest struct {
	WordID             uint   `json:"word_id" binding:"required"`
	CategoryName       string `json:"category_name" binding:"required"`
	NewEnglish         string `json:"new_english" binding:"required"`
	NewArabic          string `json:"new_arabic" binding:"required"`
	NewTransliteration string `json:"new_transliteration"`
}

type AddFlashcardRequest struct {
	CategoryID      uint   `json:"category_id" binding:"required"`
	English         string `json:"english" binding:"required"`
	Arabic          string `json:"arabic" binding:"required"`
	Transliteration string `json:"transliteration"`
}

type AddCategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required"`
}

type UpdateCategoryRequest struct {
	CategoryID uint   `json:"category_id" binding:"required"`
	NewName    string `json:"new_name" binding:"required"`
}

type DeleteCategoryRequest struct {
	CategoryID uint `json:"category_id" binding:"required"`
}

type AddConjugationRequest struct {
	VerbID      uint   `json:"verb_id" binding:"required"`
	Tense       string `json:"tense" binding:"required"`
	Pronoun     string `json:"pronoun" binding:"required"`
	Conjugation string `json:"conjugation" binding:"required"`
}

type UpdateConjugationRequest struct {
	ID          uint   `json:"id" binding:"required"`
	Conjugation string `json:"conjugation" binding:"required"`
}

func (h *MaintenanceHandler) UpdateFlashcard(c *gin.Context) {
	var req UpdateFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	err := h.maintenanceService.UpdateFlashcard(req.WordID, req.CategoryName, req.NewEnglish, req.NewArabic, req.NewTransliteration)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Category or word not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Flashcard updated successfully"})
}

func (h *MaintenanceHandler) AddFlashcard(c *gin.Context) {
	var req AddFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	if _, err := h.maintenanceService.AddFlashcard(req.CategoryID, req.English, req.Arabic, req.Transliteration); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Flashcard added successfully"})
}

func (h *MaintenanceHandler) AddCategory(c *gin.Context) {
	var req AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category name is required"})
		return
	}

	if _, err := h.maintenanceService.AddCategory(req.CategoryName); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Category already exists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category added successfully"})
}

func (h *MaintenanceHandler) UpdateCategory(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.maintenanceService.UpdateCategory(req.CategoryID, req.NewName); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated successfully"})
}

func (h *MaintenanceHandler) DeleteCategory(c *gin.Context) {
	var req DeleteCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category ID is required"})
		return
	}

	if err := h.maintenanceService.DeleteCategory(req.CategoryID); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully"})
}

func (h *MaintenanceHandler) GetAllVerbs(c *gin.Context) {
	verbs, err := h.maintenanceService.ListVerbs()
	if err != nil {
		respondError(c, err)
		return
	}

	list := make([]gin.H, 0, len(verbs))
	for _, verb := range verbs {
		list = append(list, gin.H{
			"id":   verb.ID,
			"verb": verb.EnglishVerb + " (" + verb.ArabicVerb + ")",
		})
	}
	c.JSON(http.StatusOK, list)
}

func (h *MaintenanceHandler) GetVerbConjugations(c *gin.Context) {
	var req struct {
		VerbID uint `json:"verb_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Verb ID is required"})
		return
	}

	conjugations, err := h.maintenanceService.ListConjugations(req.VerbID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conjugations)
}

func (h *MaintenanceHandler) AddConjugation(c *gin.Context) {
	var req AddConjugationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	if _, err := h.maintenanceService.AddConjugation(req.VerbID, req.Tense, req.Pronoun, req.Conjugation); err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Verb not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Conjugation added successfully"})
}

func (h *MaintenanceHandler) UpdateConjugation(c *gin.Context) {
	var req UpdateConjugationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Conjugation ID and new conjugation are required"})
		return
	}

	if err := h.maintenanceService.UpdateConjugation(req.ID, req.Conjugation); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Conjugation updated successfully"})
}

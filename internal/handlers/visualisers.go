package handlers

import (
	"net/http"

	"github.com/musa-q/MyArabicLearner/internal/services"

	"github.com/gin-gonic/gin"
)

// VisualiserHandler serves the read-only verb tables shown in the app.
type VisualiserHandler struct {
	maintenanceService *services.MaintenanceService
}

func NewVisualiserHandler(maintenanceService *services.MaintenanceService) *VisualiserHandler {
	return &VisualiserHandler{maintenanceService: maintenanceService}
}

func (h *VisualiserHandler) GetVerbs(c *gin.Context) {
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

func (h *VisualiserHandler) GetVerbTable(c *gin.Context) {
	var req struct {
		VerbID uint `json:"verbId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Verb is required"})
		return
	}

	conjugations, err := h.maintenanceService.ListConjugations(req.VerbID)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(conjugations) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Verb not found"})
		return
	}
	c.JSON(http.StatusOK, conjugations)
}

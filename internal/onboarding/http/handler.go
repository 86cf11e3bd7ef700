package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Talha-Bayansar/moskent-backend/internal/auth"
	"github.com/Talha-Bayansar/moskent-backend/internal/onboarding"
	"github.com/Talha-Bayansar/moskent-backend/internal/pkg/response"
)

type WizardHandler struct {
	service *onboarding.Service
}

func NewHandler(service *onboarding.Service) *WizardHandler {
	return &WizardHandler{service: service}
}

// State returns the wizard state for the caller's session, starting a new
// wizard at step 1 if none exists.
func (h *WizardHandler) State(c *gin.Context) {
	view := h.service.State(auth.GetSessionID(c))
	c.JSON(http.StatusOK, NewWizardResponse(view))
}

// SetBasicInfo updates the organization name/slug draft on step 1.
func (h *WizardHandler) SetBasicInfo(c *gin.Context) {
	var req BasicInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	view, err := h.service.SetBasicInfo(auth.GetSessionID(c), req.Name, req.Slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWizardResponse(view))
}

// SetTeam updates the team draft on step 2.
func (h *WizardHandler) SetTeam(c *gin.Context) {
	var req TeamStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	view, err := h.service.SetTeam(auth.GetSessionID(c), req.CreateTeam, req.TeamName)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWizardResponse(view))
}

// Next advances from step 1 to step 2.
func (h *WizardHandler) Next(c *gin.Context) {
	view, err := h.service.Next(auth.GetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWizardResponse(view))
}

// Back returns from step 2 to step 1.
func (h *WizardHandler) Back(c *gin.Context) {
	view, err := h.service.Back(auth.GetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWizardResponse(view))
}

// Submit runs the creation sequence and, on success, returns the outcome.
func (h *WizardHandler) Submit(c *gin.Context) {
	outcome, err := h.service.Submit(c.Request.Context(), auth.GetSessionID(c), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewOutcomeResponse(outcome))
}

// Reset discards the wizard state for the caller's session.
func (h *WizardHandler) Reset(c *gin.Context) {
	h.service.Reset(auth.GetSessionID(c))
	c.Status(http.StatusNoContent)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/creator-campaign-api/internal/dto"
	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/internal/service"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
	"github.com/noah-isme/creator-campaign-api/pkg/response"
)

// WizardHandler exposes the public submission wizard endpoints.
type WizardHandler struct {
	wizard     *service.WizardService
	enrichment *service.EnrichmentService
}

// NewWizardHandler constructs the handler.
func NewWizardHandler(wizard *service.WizardService, enrichment *service.EnrichmentService) *WizardHandler {
	return &WizardHandler{wizard: wizard, enrichment: enrichment}
}

// Start godoc
// @Summary Open a wizard session for a campaign
// @Tags Wizard
// @Produce json
// @Param slug path string true "Campaign slug"
// @Param preview query bool false "Preview mode (no persistence)"
// @Success 201 {object} response.Envelope
// @Router /wizard/{slug}/sessions [post]
func (h *WizardHandler) Start(c *gin.Context) {
	preview := c.Query("preview") == "true"
	session, err := h.wizard.Start(c.Request.Context(), c.Param("slug"), preview)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sessionState(session))
}

// State godoc
// @Summary Current wizard session state
// @Tags Wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /wizard/sessions/{id} [get]
func (h *WizardHandler) State(c *gin.Context) {
	session, err := h.wizard.State(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionState(session), nil)
}

// Acknowledge advances past the NDA step.
func (h *WizardHandler) Acknowledge(c *gin.Context) {
	h.stepAction(c, h.wizard.Acknowledge)
}

// Accept records the accepted decision.
func (h *WizardHandler) Accept(c *gin.Context) {
	h.stepAction(c, h.wizard.Accept)
}

// Decline records the declined decision.
func (h *WizardHandler) Decline(c *gin.Context) {
	h.stepAction(c, h.wizard.Decline)
}

// Back steps backwards.
func (h *WizardHandler) Back(c *gin.Context) {
	h.stepAction(c, h.wizard.Back)
}

// Restart resets a finished session.
func (h *WizardHandler) Restart(c *gin.Context) {
	h.stepAction(c, h.wizard.Restart)
}

// AddRow appends an account row.
func (h *WizardHandler) AddRow(c *gin.Context) {
	var req dto.RowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Clone(apperrors.ErrValidation, "invalid row payload"))
		return
	}
	session, err := h.wizard.AddRow(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionState(session), nil)
}

// UpdateRow rewrites an account row.
func (h *WizardHandler) UpdateRow(c *gin.Context) {
	var req dto.RowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Clone(apperrors.ErrValidation, "invalid row payload"))
		return
	}
	session, err := h.wizard.UpdateRow(c.Request.Context(), c.Param("id"), c.Param("rowId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionState(session), nil)
}

// RemoveRow deletes an account row.
func (h *WizardHandler) RemoveRow(c *gin.Context) {
	session, err := h.wizard.RemoveRow(c.Request.Context(), c.Param("id"), c.Param("rowId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionState(session), nil)
}

// Enrich triggers a follower-count fetch for a row.
func (h *WizardHandler) Enrich(c *gin.Context) {
	session, err := h.enrichment.Trigger(c.Request.Context(), c.Param("id"), c.Param("rowId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, sessionState(session), nil)
}

// SubmitAccept godoc
// @Summary Submit the accept-path form
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /wizard/sessions/{id}/submit [post]
func (h *WizardHandler) SubmitAccept(c *gin.Context) {
	var req dto.AcceptSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Clone(apperrors.ErrValidation, "invalid submission payload"))
		return
	}
	session, submission, err := h.wizard.SubmitAccept(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, submitResult(session, submission), nil)
}

// SubmitDecline records a decline-path submission.
func (h *WizardHandler) SubmitDecline(c *gin.Context) {
	var req dto.DeclineSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Clone(apperrors.ErrValidation, "invalid decline payload"))
		return
	}
	session, submission, err := h.wizard.SubmitDecline(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, submitResult(session, submission), nil)
}

func (h *WizardHandler) stepAction(c *gin.Context, action func(ctx context.Context, id string) (*models.WizardSession, error)) {
	session, err := action(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessionState(session), nil)
}

func sessionState(session *models.WizardSession) dto.SessionStateResponse {
	rows := make([]dto.RowItem, 0, len(session.Rows))
	for _, row := range session.Rows {
		rows = append(rows, dto.RowItem{
			ID:            row.ID,
			Platform:      row.Platform,
			Value:         row.Value,
			FollowerCount: row.FollowerCount,
			FetchedAt:     row.FetchedAt,
			FetchState:    row.FetchState,
			FetchMessage:  row.FetchMessage,
		})
	}
	return dto.SessionStateResponse{
		ID:           session.ID,
		Step:         session.Step,
		Decision:     session.Decision,
		Preview:      session.Preview,
		IsSubmitting: session.Submitting,
		Errors:       session.Errors,
		Campaign:     session.Snapshot,
		Rows:         rows,
		UploadURLs:   session.UploadURLs,
	}
}

func submitResult(session *models.WizardSession, submission *models.Submission) dto.SubmitResponse {
	resp := dto.SubmitResponse{Step: session.Step, Preview: session.Preview}
	if submission != nil && !session.Preview {
		resp.SubmissionID = submission.ID
	}
	return resp
}

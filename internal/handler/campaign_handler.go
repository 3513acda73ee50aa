package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/creator-campaign-api/internal/dto"
	"github.com/noah-isme/creator-campaign-api/internal/service"
	apperrors "github.com/noah-isme/creator-campaign-api/pkg/errors"
	"github.com/noah-isme/creator-campaign-api/pkg/response"
)

// CampaignHandler exposes admin campaign management endpoints.
type CampaignHandler struct {
	campaigns *service.CampaignService
}

// NewCampaignHandler constructs the handler.
func NewCampaignHandler(campaigns *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// List godoc
// @Summary List campaigns
// @Tags Campaigns
// @Produce json
// @Param status query string false "Filter by status"
// @Param search query string false "Search in title and slug"
// @Success 200 {object} response.Envelope
// @Router /campaigns [get]
func (h *CampaignHandler) List(c *gin.Context) {
	var query dto.CampaignQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, apperrors.Clone(apperrors.ErrValidation, "invalid query parameters"))
		return
	}
	campaigns, pagination, err := h.campaigns.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaigns, pagination)
}

// Get returns a single campaign.
func (h *CampaignHandler) Get(c *gin.Context) {
	campaign, err := h.campaigns.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaign, nil)
}

// Create godoc
// @Summary Create a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /campaigns [post]
func (h *CampaignHandler) Create(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Clone(apperrors.ErrValidation, "invalid campaign payload"))
		return
	}
	actorID := ""
	if claims := claimsFromContext(c); claims != nil {
		actorID = claims.UserID
	}
	campaign, err := h.campaigns.Create(c.Request.Context(), req, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, campaign)
}

// Update applies partial changes to a campaign.
func (h *CampaignHandler) Update(c *gin.Context) {
	var req dto.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Clone(apperrors.ErrValidation, "invalid campaign payload"))
		return
	}
	campaign, err := h.campaigns.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, campaign, nil)
}

// Delete removes a campaign.
func (h *CampaignHandler) Delete(c *gin.Context) {
	if err := h.campaigns.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Submissions lists a campaign's submissions with accept/decline tallies.
func (h *CampaignHandler) Submissions(c *gin.Context) {
	submissions, accepted, declined, err := h.campaigns.Submissions(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"accepted": accepted,
		"declined": declined,
	}
	response.JSON(c, http.StatusOK, submissions, nil, meta)
}

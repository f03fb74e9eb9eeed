package handlers

import (
	"net/http"

	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/gin-gonic/gin"
)

// CampaignHandler handles HTTP requests for campaigns
type CampaignHandler struct {
	campaignService service.CampaignServiceInterface
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignService service.CampaignServiceInterface) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

// CreateCampaign creates a new campaign
// @Summary Create a new campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaign body service.CreateCampaignRequest true "Campaign data"
// @Success 201 {object} service.CampaignResponse "Successfully created campaign"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Campaign name already taken"
// @Security BearerAuth
// @Router /campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	var req service.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	campaign, err := h.campaignService.Create(tenant, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

// GetCampaign retrieves a campaign by ID
// @Summary Get campaign by ID
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID (UUID)"
// @Success 200 {object} service.CampaignResponse "Successfully retrieved campaign"
// @Failure 400 {object} ErrorResponse "Invalid campaign ID"
// @Failure 404 {object} ErrorResponse "Campaign not found"
// @Security BearerAuth
// @Router /campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "campaign ID")
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetByID(tenant, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// ListCampaigns lists campaigns of the tenant
// @Summary List campaigns
// @Tags campaigns
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.CampaignListResponse "Successfully retrieved campaigns"
// @Security BearerAuth
// @Router /campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	campaigns, err := h.campaignService.GetByTenant(tenant, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// UpdateCampaign updates an existing campaign
// @Summary Update campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID (UUID)"
// @Param campaign body service.UpdateCampaignRequest true "Updated campaign data"
// @Success 200 {object} service.CampaignResponse "Successfully updated campaign"
// @Failure 400 {object} ErrorResponse "Invalid request body or campaign ID"
// @Failure 404 {object} ErrorResponse "Campaign not found"
// @Security BearerAuth
// @Router /campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "campaign ID")
	if !ok {
		return
	}

	var req service.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	campaign, err := h.campaignService.Update(tenant, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// DeleteCampaign deletes a campaign
// @Summary Delete campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID (UUID)"
// @Success 204 "Successfully deleted campaign"
// @Failure 400 {object} ErrorResponse "Invalid campaign ID"
// @Failure 404 {object} ErrorResponse "Campaign not found"
// @Security BearerAuth
// @Router /campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "campaign ID")
	if !ok {
		return
	}

	if err := h.campaignService.Delete(tenant, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

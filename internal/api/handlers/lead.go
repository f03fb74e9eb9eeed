package handlers

import (
	"net/http"

	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/gin-gonic/gin"
)

// LeadHandler handles HTTP requests for leads
type LeadHandler struct {
	leadService service.LeadServiceInterface
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadService service.LeadServiceInterface) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// CreateLead creates a new lead
// @Summary Create a new lead
// @Description Register an inbound enquiry.
// @Description
// @Description Optional Fields with Defaults:
// @Description - status: Defaults to 'new'
// @Tags leads
// @Accept json
// @Produce json
// @Param lead body service.CreateLeadRequest true "Lead data"
// @Success 201 {object} service.LeadResponse "Successfully created lead"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	var req service.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	lead, err := h.leadService.Create(tenant, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

// GetLead retrieves a lead by ID
// @Summary Get lead by ID
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 200 {object} service.LeadResponse "Successfully retrieved lead"
// @Failure 400 {object} ErrorResponse "Invalid lead ID"
// @Failure 404 {object} ErrorResponse "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "lead ID")
	if !ok {
		return
	}

	lead, err := h.leadService.GetByID(tenant, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

// ListLeads lists leads of the tenant
// @Summary List leads
// @Description Get leads of the tenant with pagination and optional status filter
// @Tags leads
// @Accept json
// @Produce json
// @Param status query string false "Filter by lead status (new, contacted, qualified, converted, lost)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.LeadListResponse "Successfully retrieved leads"
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)
	status := c.Query("status")

	leads, err := h.leadService.GetByTenant(tenant, status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leads)
}

// UpdateLead updates an existing lead
// @Summary Update lead
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Param lead body service.UpdateLeadRequest true "Updated lead data"
// @Success 200 {object} service.LeadResponse "Successfully updated lead"
// @Failure 400 {object} ErrorResponse "Invalid request body or lead ID"
// @Failure 404 {object} ErrorResponse "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [put]
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "lead ID")
	if !ok {
		return
	}

	var req service.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	lead, err := h.leadService.Update(tenant, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

// DistributeLead routes a lead to an agent through an assignment group
// @Summary Distribute a lead
// @Description Create a follow-up task for the lead and assign it to the next
// @Description agent of the given assignment group.
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Param request body service.DistributeLeadRequest true "Distribution parameters"
// @Success 200 {object} service.DistributeLeadResponse "Successfully distributed lead"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Lead or assignment group not found"
// @Failure 409 {object} ErrorResponse "Concurrent cursor updates exhausted retries"
// @Failure 422 {object} ErrorResponse "Group inactive or no eligible member"
// @Security BearerAuth
// @Router /leads/{id}/distribute [post]
func (h *LeadHandler) DistributeLead(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "lead ID")
	if !ok {
		return
	}

	var req service.DistributeLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.leadService.Distribute(tenant, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteLead deletes a lead
// @Summary Delete lead
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 204 "Successfully deleted lead"
// @Failure 400 {object} ErrorResponse "Invalid lead ID"
// @Failure 404 {object} ErrorResponse "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [delete]
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "lead ID")
	if !ok {
		return
	}

	if err := h.leadService.Delete(tenant, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/gin-gonic/gin"
)

// TenantHandler handles HTTP requests for tenants
type TenantHandler struct {
	tenantService service.TenantServiceInterface
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService service.TenantServiceInterface) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// CreateTenant creates a new tenant
// @Summary Create a new tenant
// @Description Register a new agency with a unique subdomain
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body service.CreateTenantRequest true "Tenant data"
// @Success 201 {object} service.TenantResponse "Successfully created tenant"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Subdomain already taken"
// @Security BearerAuth
// @Router /tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req service.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tenant, err := h.tenantService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// GetTenant retrieves a tenant by ID
// @Summary Get tenant by ID
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID (UUID)"
// @Success 200 {object} service.TenantResponse "Successfully retrieved tenant"
// @Failure 400 {object} ErrorResponse "Invalid tenant ID"
// @Failure 404 {object} ErrorResponse "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{id} [get]
func (h *TenantHandler) GetTenant(c *gin.Context) {
	id, ok := pathUUID(c, "id", "tenant ID")
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// ListTenants lists all tenants
// @Summary List tenants
// @Tags tenants
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.TenantListResponse "Successfully retrieved tenants"
// @Security BearerAuth
// @Router /tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	page, pageSize := pagination(c)

	tenants, err := h.tenantService.GetAll(page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenants)
}

// UpdateTenant updates an existing tenant
// @Summary Update tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID (UUID)"
// @Param tenant body service.UpdateTenantRequest true "Updated tenant data"
// @Success 200 {object} service.TenantResponse "Successfully updated tenant"
// @Failure 400 {object} ErrorResponse "Invalid request body or tenant ID"
// @Failure 404 {object} ErrorResponse "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{id} [put]
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	id, ok := pathUUID(c, "id", "tenant ID")
	if !ok {
		return
	}

	var req service.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tenant, err := h.tenantService.Update(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// DeleteTenant deletes a tenant
// @Summary Delete tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID (UUID)"
// @Success 204 "Successfully deleted tenant"
// @Failure 400 {object} ErrorResponse "Invalid tenant ID"
// @Failure 404 {object} ErrorResponse "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	id, ok := pathUUID(c, "id", "tenant ID")
	if !ok {
		return
	}

	if err := h.tenantService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

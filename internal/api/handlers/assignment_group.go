package handlers

import (
	"net/http"

	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssignmentGroupHandler handles HTTP requests for assignment groups and
// round-robin assignment
type AssignmentGroupHandler struct {
	groupService service.AssignmentGroupServiceInterface
	allocator    service.AllocatorServiceInterface
}

// NewAssignmentGroupHandler creates a new assignment group handler
func NewAssignmentGroupHandler(groupService service.AssignmentGroupServiceInterface, allocator service.AllocatorServiceInterface) *AssignmentGroupHandler {
	return &AssignmentGroupHandler{
		groupService: groupService,
		allocator:    allocator,
	}
}

// AssignRequest represents the request to assign a task through a group
type AssignRequest struct {
	TaskID uuid.UUID `json:"task_id" binding:"required"`
}

// CreateAssignmentGroup creates a new assignment group
// @Summary Create a new assignment group
// @Description Create a round-robin assignment group for the tenant.
// @Description
// @Description Optional Fields with Defaults:
// @Description - strategy: Defaults to 'sequential' (valid values: sequential, load_balanced)
// @Description - skip_unavailable: Defaults to false
// @Description - reset_daily: Defaults to false
// @Tags assignment-groups
// @Accept json
// @Produce json
// @Param group body service.CreateAssignmentGroupRequest true "Assignment group data"
// @Success 201 {object} service.AssignmentGroupResponse "Successfully created assignment group"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 409 {object} ErrorResponse "Group name already taken"
// @Security BearerAuth
// @Router /assignment-groups [post]
func (h *AssignmentGroupHandler) CreateAssignmentGroup(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	var req service.CreateAssignmentGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.groupService.Create(tenant, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// GetAssignmentGroup retrieves an assignment group by ID
// @Summary Get assignment group by ID
// @Tags assignment-groups
// @Accept json
// @Produce json
// @Param id path string true "Assignment group ID (UUID)"
// @Success 200 {object} service.AssignmentGroupResponse "Successfully retrieved assignment group"
// @Failure 400 {object} ErrorResponse "Invalid assignment group ID"
// @Failure 404 {object} ErrorResponse "Assignment group not found"
// @Security BearerAuth
// @Router /assignment-groups/{id} [get]
func (h *AssignmentGroupHandler) GetAssignmentGroup(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "assignment group ID")
	if !ok {
		return
	}

	group, err := h.groupService.GetByID(tenant, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// ListAssignmentGroups lists assignment groups of the tenant
// @Summary List assignment groups
// @Description Get all assignment groups of the tenant with pagination
// @Tags assignment-groups
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.AssignmentGroupListResponse "Successfully retrieved assignment groups"
// @Security BearerAuth
// @Router /assignment-groups [get]
func (h *AssignmentGroupHandler) ListAssignmentGroups(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	groups, err := h.groupService.GetByTenant(tenant, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// UpdateAssignmentGroup updates an existing assignment group
// @Summary Update assignment group
// @Description Update an assignment group. When member_order shrinks below the
// @Description current cursor the cursor is clamped so rotation stays valid.
// @Tags assignment-groups
// @Accept json
// @Produce json
// @Param id path string true "Assignment group ID (UUID)"
// @Param group body service.UpdateAssignmentGroupRequest true "Updated assignment group data"
// @Success 200 {object} service.AssignmentGroupResponse "Successfully updated assignment group"
// @Failure 400 {object} ErrorResponse "Invalid request body or assignment group ID"
// @Failure 404 {object} ErrorResponse "Assignment group not found"
// @Security BearerAuth
// @Router /assignment-groups/{id} [put]
func (h *AssignmentGroupHandler) UpdateAssignmentGroup(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "assignment group ID")
	if !ok {
		return
	}

	var req service.UpdateAssignmentGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.groupService.Update(tenant, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// DeleteAssignmentGroup deletes an assignment group
// @Summary Delete assignment group
// @Description Delete an assignment group. Past assignments are kept for audit.
// @Tags assignment-groups
// @Accept json
// @Produce json
// @Param id path string true "Assignment group ID (UUID)"
// @Success 204 "Successfully deleted assignment group"
// @Failure 400 {object} ErrorResponse "Invalid assignment group ID"
// @Failure 404 {object} ErrorResponse "Assignment group not found"
// @Security BearerAuth
// @Router /assignment-groups/{id} [delete]
func (h *AssignmentGroupHandler) DeleteAssignmentGroup(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "assignment group ID")
	if !ok {
		return
	}

	if err := h.groupService.Delete(tenant, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Assign routes a task to the next member of the group
// @Summary Assign a task through the group
// @Description Pick the next assignee per the group's strategy, advance the
// @Description rotation cursor and record an assignment audit row.
// @Tags assignment-groups
// @Accept json
// @Produce json
// @Param id path string true "Assignment group ID (UUID)"
// @Param request body AssignRequest true "Task to assign"
// @Success 200 {object} service.AssignmentResult "Successfully assigned"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Assignment group not found"
// @Failure 409 {object} ErrorResponse "Concurrent cursor updates exhausted retries"
// @Failure 422 {object} ErrorResponse "Group inactive or no eligible member"
// @Security BearerAuth
// @Router /assignment-groups/{id}/assign [post]
func (h *AssignmentGroupHandler) Assign(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "assignment group ID")
	if !ok {
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.allocator.AssignNext(tenant, id, req.TaskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Reset rewinds the group's rotation cursor to the first member
// @Summary Reset the rotation cursor
// @Tags assignment-groups
// @Accept json
// @Produce json
// @Param id path string true "Assignment group ID (UUID)"
// @Success 204 "Successfully reset"
// @Failure 400 {object} ErrorResponse "Invalid assignment group ID"
// @Failure 404 {object} ErrorResponse "Assignment group not found"
// @Security BearerAuth
// @Router /assignment-groups/{id}/reset [post]
func (h *AssignmentGroupHandler) Reset(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "assignment group ID")
	if !ok {
		return
	}

	if err := h.allocator.ResetGroup(tenant, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// History lists past assignments made through the group
// @Summary List assignment history
// @Description Get the group's assignment audit trail, newest first
// @Tags assignment-groups
// @Accept json
// @Produce json
// @Param id path string true "Assignment group ID (UUID)"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.AssignmentHistoryResponse "Successfully retrieved history"
// @Failure 404 {object} ErrorResponse "Assignment group not found"
// @Security BearerAuth
// @Router /assignment-groups/{id}/history [get]
func (h *AssignmentGroupHandler) History(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "assignment group ID")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	history, err := h.groupService.History(tenant, id, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

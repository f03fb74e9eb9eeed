package handlers

import (
	"net/http"

	"github.com/mycampushub/consulting-sub007/internal/service"

	"github.com/gin-gonic/gin"
)

// StudentHandler handles HTTP requests for students
type StudentHandler struct {
	studentService service.StudentServiceInterface
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService service.StudentServiceInterface) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
	}
}

// CreateStudent creates a new student
// @Summary Create a new student
// @Tags students
// @Accept json
// @Produce json
// @Param student body service.CreateStudentRequest true "Student data"
// @Success 201 {object} service.StudentResponse "Successfully created student"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Security BearerAuth
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	student, err := h.studentService.Create(tenant, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetStudent retrieves a student by ID
// @Summary Get student by ID
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID (UUID)"
// @Success 200 {object} service.StudentResponse "Successfully retrieved student"
// @Failure 400 {object} ErrorResponse "Invalid student ID"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "student ID")
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(tenant, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// ListStudents lists students of the tenant
// @Summary List students
// @Description Get students of the tenant with pagination and optional name/email search
// @Tags students
// @Accept json
// @Produce json
// @Param q query string false "Search query matched against name and email"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Number of items per page" default(20)
// @Success 200 {object} service.StudentListResponse "Successfully retrieved students"
// @Security BearerAuth
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)
	query := c.Query("q")

	students, err := h.studentService.GetByTenant(tenant, query, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// UpdateStudent updates an existing student
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID (UUID)"
// @Param student body service.UpdateStudentRequest true "Updated student data"
// @Success 200 {object} service.StudentResponse "Successfully updated student"
// @Failure 400 {object} ErrorResponse "Invalid request body or student ID"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "student ID")
	if !ok {
		return
	}

	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	student, err := h.studentService.Update(tenant, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent deletes a student
// @Summary Delete student
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID (UUID)"
// @Success 204 "Successfully deleted student"
// @Failure 400 {object} ErrorResponse "Invalid student ID"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Security BearerAuth
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "student ID")
	if !ok {
		return
	}

	if err := h.studentService.Delete(tenant, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

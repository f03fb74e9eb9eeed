package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/mycampushub/consulting-sub007/internal/api/middleware"
	apperrors "github.com/mycampushub/consulting-sub007/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// tenantID extracts the resolved tenant, aborting with 404 when missing.
// Routes registered behind the tenant middleware always have it; the check
// guards direct handler use in tests.
func tenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.TenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown tenant"})
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a UUID path parameter, aborting with 400 on bad input
func pathUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + label})
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads page/page_size query parameters with defaults
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}

// respondError translates service errors into HTTP status codes
func respondError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case apperrors.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case apperrors.IsValidation(err),
		errors.Is(err, apperrors.ErrInvalidStatus),
		errors.Is(err, apperrors.ErrInvalidStrategy),
		errors.Is(err, apperrors.ErrDuplicateMember),
		errors.Is(err, apperrors.ErrMemberNotInTenant):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrGroupInactive),
		errors.Is(err, apperrors.ErrNoEligibleMember):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case apperrors.IsDependency(err):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

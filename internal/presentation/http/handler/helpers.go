package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/request"
	"github.com/sangkips/shulefees-api/internal/presentation/http/dto/response"
	"github.com/sangkips/shulefees-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// bindJSON binds the body into req. On failure it writes a 422 with field
// errors for validation failures or a 400 for malformed JSON and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeBindError(c, err, "Invalid request body")
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeBindError(c, err, "Invalid query parameters")
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error, message string) {
	if fields := request.FieldErrors(err); fields != nil {
		response.ValidationError(c, fields)
		return
	}
	response.BadRequest(c, message)
}

// paramID parses a UUID path parameter, writing a 400 when it is malformed
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page, per_page, search, sort_by and order from the query
func pageParams(c *gin.Context) (*pagination.Params, bool) {
	params := pagination.Default()
	if !bindQuery(c, params) {
		return nil, false
	}
	params.Normalize()
	return params, true
}

// parseDate parses an optional YYYY-MM-DD value already checked by binding
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(request.DateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

func parseOptionalUUID(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}

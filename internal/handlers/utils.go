package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/amaumene/mediamatch/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindAuth:
		return http.StatusUnauthorized
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	c.AbortWithStatusJSON(statusFor(kind), errorResponse{
		Error: apperrors.Message(err),
		Code:  string(kind),
	})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, apperrors.NewValidationError(message))
}

// bindJSON decodes the body into v, answering 400 on failure.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, "Invalid request body")
		return false
	}
	return true
}

// intParam reads a positive integer path parameter, answering 400 on failure.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return v, true
}

package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"finance-analyzer/pkg/apperr"
	"finance-analyzer/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// statusFor maps an error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrImport):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrAuthentication):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes {"success":false,"message":...}. Unclassified errors are logged
// and answered with a generic message.
func (a *app) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := apperr.Message(err, "An unexpected error occurred")
	if status == http.StatusInternalServerError {
		a.log.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"success": false, "message": msg})
}

// respondBindError reports a request that failed binding or field validation.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": bindMessage(err)})
}

func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "rgbcolor":
		return field + " must be a valid hex color code"
	case "currency":
		return field + " must be an uppercase currency code"
	}
	return field + " is invalid"
}

// jsonName lower-cases the first letter of a Go field name.
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// caller returns the authenticated identity. Routes using it sit behind auth.RequireIdentity.
func caller(c *gin.Context) auth.Identity {
	id, _ := auth.Current(c)
	return id
}

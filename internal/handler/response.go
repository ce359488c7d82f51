package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gala/internal/auth"
	"gala/internal/domain"
	"gala/internal/middleware"
	"gala/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func ok(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{"data": data, "message": message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

// respondError maps err onto a status code. Unclassified errors are logged
// and hidden behind a generic message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status, body := errorBody(c, log, err)
	c.JSON(status, body)
}

func errorBody(c *gin.Context, log *zap.Logger, err error) (int, gin.H) {
	if de, isDomain := domain.As(err); isDomain {
		body := gin.H{"message": de.Message}
		if de.Code != "" {
			body["code"] = de.Code
		}
		if len(de.Fields) > 0 {
			body["errors"] = de.Fields
		}
		return statusOf(de.Kind), body
	}

	switch {
	case errors.Is(err, service.ErrInvalidCreds), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, gin.H{"message": err.Error()}
	case errors.Is(err, service.ErrAccountDisabled):
		return http.StatusForbidden, gin.H{"message": err.Error()}
	case errors.Is(err, service.ErrEmailExists):
		return http.StatusConflict, gin.H{"message": err.Error()}
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrPasswordTooLong):
		return http.StatusBadRequest, gin.H{"message": err.Error()}
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return http.StatusBadRequest, gin.H{"message": service.ErrPasswordTooLong.Error()}
	}
	log.Error("request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	return http.StatusInternalServerError, gin.H{"message": "Internal server error"}
}

func statusOf(k domain.Kind) int {
	switch k {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// readExpectedVersion takes the version from If-Match (3, "3" or W/"3") and
// falls back to the body value. If-Match: * disables the check.
func readExpectedVersion(c *gin.Context, body *int64) (*int64, error) {
	ifMatch := strings.TrimSpace(c.GetHeader("If-Match"))
	if ifMatch == "*" {
		return nil, nil
	}
	if ifMatch != "" {
		ifMatch = strings.Trim(strings.TrimPrefix(ifMatch, "W/"), `"'`)
		v, err := strconv.ParseInt(ifMatch, 10, 64)
		if err != nil {
			return nil, domain.BadRequest("If-Match must carry a section version")
		}
		return &v, nil
	}
	return body, nil
}

func setETag(c *gin.Context, version int64) {
	c.Header("ETag", `W/"`+strconv.FormatInt(version, 10)+`"`)
}

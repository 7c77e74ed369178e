package main

import (
	"errors"
	"net/http"

	"be04/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the auth error taxonomy to status codes. The four
// token failure kinds all come out as 401 but keep their own messages.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": auth.ErrEmailExists.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": auth.ErrInvalidCredentials.Error()})
	case errors.Is(err, auth.ErrAccountMissing):
		c.JSON(http.StatusNotFound, gin.H{"error": auth.ErrAccountMissing.Error()})
	case errors.Is(err, auth.ErrSessionInvalidated),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrTokenIssuedAtInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.Error("unhandled error", zap.Error(err))
		body := gin.H{"error": "internal server error"}
		if !appCfg.Production() {
			body["detail"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

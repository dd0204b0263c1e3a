package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyuga-t/todo-front/internal/gateway"
)

const loginPath = "/login"

func respondActionType(c *gin.Context, actionType string) {
	c.JSON(http.StatusOK, gin.H{"type": actionType})
}

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondFailure(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
}

// respondGatewayError converts a gateway failure at the handler
// boundary: 401 becomes a login redirect, a validation error
// becomes a 400 listing every violated field, everything else an
// inline failure result. Nothing escapes as a crash.
func (h *handlerImpl) respondGatewayError(c *gin.Context, err error, message string) {
	var verr *gateway.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": verr.Error(),
			"fields":  verr.Fields,
		})
		return
	}

	if errors.Is(err, gateway.ErrUnauthorized) {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}

	h.logger.Error().
		Err(err).
		Str("path", c.FullPath()).
		Msg("action failed")
	respondFailure(c, message)
}

// respondValidationFailure enumerates locally rejected form
// fields without touching the gateways.
func respondValidationFailure(c *gin.Context, fields []gateway.FieldError) {
	verr := &gateway.ValidationError{Fields: fields}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": verr.Error(),
		"fields":  verr.Fields,
	})
}

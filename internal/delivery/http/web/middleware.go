package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyuga-t/todo-front/internal/models"
)

const (
	loginUserCtxKey   = "login_user"
	accessTokenCtxKey = "access_token"
)

// HandleSessionMiddleware is the single authorization gate for
// every protected route: it reads the session cookie, resolves
// the current user against the external API and redirects to
// /login before anything protected is produced.
func (h *handlerImpl) HandleSessionMiddleware(c *gin.Context) {
	token := h.sessions.Read(c.Request)
	if token.IsZero() {
		h.logger.Debug().Msg("no session cookie, redirecting to login")
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}

	user, err := h.auth.CurrentUser(c, token.AccessToken)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to resolve session user, redirecting to login")
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}

	c.Set(loginUserCtxKey, user)
	c.Set(accessTokenCtxKey, token.AccessToken)
	c.Next()
}

func loginUserFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(loginUserCtxKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func accessTokenFromContext(c *gin.Context) string {
	value, exists := c.Get(accessTokenCtxKey)
	if !exists {
		return ""
	}
	token, _ := value.(string)
	return token
}

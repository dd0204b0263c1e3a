package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hyuga-t/todo-front/internal/gateway"
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f loginForm) validate() []gateway.FieldError {
	var fields []gateway.FieldError
	if f.Email == "" {
		fields = append(fields, gateway.FieldError{
			Field:   "email",
			Message: "input your email address",
		})
	}
	if len(f.Password) < 8 {
		fields = append(fields, gateway.FieldError{
			Field:   "password",
			Message: "password length is 8 at least",
		})
	}
	return fields
}

func (h *handlerImpl) HandleLoginLoader(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

func (h *handlerImpl) HandleLoginAction(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind login form")
		respondFailure(c, "ログインに失敗しました")
		return
	}

	if fields := form.validate(); len(fields) > 0 {
		respondValidationFailure(c, fields)
		return
	}

	token, err := h.auth.Login(c, form.Email, form.Password)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("email", form.Email).
			Msg("login failed")
		respondFailure(c, "ログインに失敗しました")
		return
	}

	cookie, err := h.sessions.Write(*token)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to write session cookie")
		respondFailure(c, "ログインに失敗しました")
		return
	}

	http.SetCookie(c.Writer, cookie)
	c.Redirect(http.StatusSeeOther, "/")
}

type signupForm struct {
	Email    string `form:"email"`
	Username string `form:"username"`
	Password string `form:"password"`
}

func (f signupForm) validate() []gateway.FieldError {
	var fields []gateway.FieldError
	if f.Email == "" {
		fields = append(fields, gateway.FieldError{
			Field:   "email",
			Message: "input your email address",
		})
	}
	if len(f.Username) < 4 {
		fields = append(fields, gateway.FieldError{
			Field:   "username",
			Message: "username is too short",
		})
	}
	if len(f.Password) < 4 {
		fields = append(fields, gateway.FieldError{
			Field:   "password",
			Message: "password length is 4 at least",
		})
	}
	return fields
}

func (h *handlerImpl) HandleSignupLoader(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

func (h *handlerImpl) HandleSignupAction(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind signup form")
		respondFailure(c, "アカウントの作成が失敗しました")
		return
	}

	if fields := form.validate(); len(fields) > 0 {
		respondValidationFailure(c, fields)
		return
	}

	token, err := h.auth.Signup(c, form.Email, form.Username, form.Password)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("email", form.Email).
			Msg("signup failed")
		respondFailure(c, "アカウントの作成が失敗しました")
		return
	}

	user, err := h.auth.CurrentUser(c, token.AccessToken)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch fresh user after signup")
		respondFailure(c, "アカウントの作成が失敗しました")
		return
	}

	cookie, err := h.sessions.Write(*token)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to write session cookie")
		respondFailure(c, "アカウントの作成が失敗しました")
		return
	}

	http.SetCookie(c.Writer, cookie)
	c.Redirect(http.StatusSeeOther, "/user/"+user.UUID)
}

// HandleLogoutAction destroys the session cookie. Logging out
// with no session still redirects cleanly.
func (h *handlerImpl) HandleLogoutAction(c *gin.Context) {
	http.SetCookie(c.Writer, h.sessions.Destroy())
	c.Redirect(http.StatusSeeOther, loginPath)
}

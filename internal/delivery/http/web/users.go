package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyuga-t/todo-front/internal/gateway"
)

// HandleUsersLoader produces the admin user-management page
// data. Non-superusers are sent back to the todo list.
func (h *handlerImpl) HandleUsersLoader(c *gin.Context) {
	loginUser, ok := loginUserFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}

	if !loginUser.IsSuperuser {
		h.logger.Warn().
			Str("user_uuid", loginUser.UUID).
			Msg("non-superuser requested the user list")
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return
	}

	users, err := h.auth.ListUsers(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch users")
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"login_user": loginUser,
		"users":      users,
	})
}

// HandleUsersAction performs admin edits from the user list:
// update a user or delete one.
func (h *handlerImpl) HandleUsersAction(c *gin.Context) {
	loginUser, ok := loginUserFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}
	if !loginUser.IsSuperuser {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "superuser required",
		})
		return
	}

	switch action := c.PostForm("_action"); action {
	case actionEdit:
		h.handleUpdateUser(c)
	case actionDelete:
		h.handleDeleteUser(c)
	default:
		h.logger.Error().
			Str("_action", action).
			Msg("unknown form action")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid action",
		})
	}
}

// HandleUserLoader produces the profile page data: the profile
// user plus their todos.
func (h *handlerImpl) HandleUserLoader(c *gin.Context) {
	loginUser, ok := loginUserFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}
	accessToken := accessTokenFromContext(c)

	userUUID := c.Param("uuid")
	if _, err := uuid.Parse(userUUID); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid uuid format",
		})
		return
	}

	profileUser, err := h.auth.GetUser(c, accessToken, userUUID)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Str("user_uuid", userUUID).
			Msg("failed to fetch profile user")
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}

	myTodos, err := h.todos.ListByAuthor(c, accessToken, profileUser.UUID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_uuid", profileUser.UUID).
			Msg("failed to fetch profile todos")
		myTodos = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"login_user": loginUser,
		"user":       profileUser,
		"my_todo":    myTodos,
	})
}

const (
	actionChangePassword = "change_password"
)

// HandleUserAction serves the profile page forms: profile
// update, password change and account deletion.
func (h *handlerImpl) HandleUserAction(c *gin.Context) {
	switch action := c.PostForm("_action"); action {
	case actionEdit:
		h.handleUpdateUser(c)
	case actionChangePassword:
		h.handleChangePassword(c)
	case actionDelete:
		h.handleDeleteUser(c)
	default:
		h.logger.Error().
			Str("_action", action).
			Msg("unknown form action")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid action",
		})
	}
}

func (h *handlerImpl) handleUpdateUser(c *gin.Context) {
	userUUID := c.PostForm("uuid")
	if _, err := uuid.Parse(userUUID); err != nil {
		respondValidationFailure(c, []gateway.FieldError{{
			Field:   "uuid",
			Message: "uuid must be a valid uuid",
		}})
		return
	}

	// Field validation happens in the gateway so that a rejected
	// form never reaches the API.
	_, err := h.auth.UpdateUser(c, accessTokenFromContext(c), userUUID, gateway.UpdateUserParams{
		Username:    c.PostForm("username"),
		Email:       c.PostForm("email"),
		IsActive:    c.PostForm("is_active") == "true",
		IsSuperuser: c.PostForm("is_superuser") == "true",
	})
	if err != nil {
		h.respondGatewayError(c, err, "ユーザー情報の更新ができませんでした。")
		return
	}

	respondSuccess(c, "ユーザー情報の更新が完了しました。")
}

func (h *handlerImpl) handleChangePassword(c *gin.Context) {
	var fields []gateway.FieldError
	currentPassword := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	if currentPassword == "" {
		fields = append(fields, gateway.FieldError{
			Field:   "current_password",
			Message: "current_password must not be empty",
		})
	}
	if len(newPassword) < 4 {
		fields = append(fields, gateway.FieldError{
			Field:   "new_password",
			Message: "password length is 4 at least",
		})
	}
	if len(fields) > 0 {
		respondValidationFailure(c, fields)
		return
	}

	err := h.auth.ChangePassword(c, accessTokenFromContext(c), currentPassword, newPassword)
	if err != nil {
		h.respondGatewayError(c, err, "パスワードの変更ができませんでした。")
		return
	}

	respondSuccess(c, "パスワードの変更が完了しました。")
}

func (h *handlerImpl) handleDeleteUser(c *gin.Context) {
	userUUID := c.PostForm("uuid")
	if _, err := uuid.Parse(userUUID); err != nil {
		respondValidationFailure(c, []gateway.FieldError{{
			Field:   "uuid",
			Message: "uuid must be a valid uuid",
		}})
		return
	}

	err := h.auth.DeleteUser(c, userUUID)
	if err != nil {
		h.respondGatewayError(c, err, "ユーザーの削除ができませんでした。")
		return
	}

	loginUser, _ := loginUserFromContext(c)
	if loginUser != nil && loginUser.UUID == userUUID {
		// Deleting yourself ends the session.
		http.SetCookie(c.Writer, h.sessions.Destroy())
		c.Redirect(http.StatusSeeOther, loginPath)
		return
	}

	respondSuccess(c, "ユーザーの削除が完了しました。")
}

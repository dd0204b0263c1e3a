package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyuga-t/todo-front/internal/gateway"
)

// HandleTodoLoader produces the single-todo detail page data.
func (h *handlerImpl) HandleTodoLoader(c *gin.Context) {
	loginUser, ok := loginUserFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}

	todoID := c.Param("uuid")
	if _, err := uuid.Parse(todoID); err != nil {
		h.logger.Error().
			Str("todo_id", todoID).
			Msg("invalid todo uuid")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid uuid format",
		})
		return
	}

	todo, err := h.todos.Get(c, accessTokenFromContext(c), todoID)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		var herr *gateway.HTTPError
		if errors.As(err, &herr) && herr.Status == http.StatusNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "todo not found",
			})
			return
		}

		h.logger.Error().
			Err(err).
			Str("todo_id", todoID).
			Msg("failed to fetch todo")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to fetch todo",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"login_user": loginUser,
		"todo":       todo,
	})
}

// HandleTodoAction edits the todo shown on the detail page.
func (h *handlerImpl) HandleTodoAction(c *gin.Context) {
	todoID := c.Param("uuid")
	if _, err := uuid.Parse(todoID); err != nil {
		respondValidationFailure(c, []gateway.FieldError{{
			Field:   "uuid",
			Message: "uuid must be a valid uuid",
		}})
		return
	}

	cmd, fields := parseEditTodoCommand(c, todoID)
	if fields != nil {
		respondValidationFailure(c, fields)
		return
	}

	_, err := h.todos.Update(c, accessTokenFromContext(c), cmd.ID, gateway.UpdateTodoParams{
		Title:       cmd.Title,
		Description: cmd.Description,
		Completed:   cmd.Completed,
		LimitDate:   cmd.LimitDate,
	})
	if err != nil {
		h.respondGatewayError(c, err, "Todoの更新ができませんでした")
		return
	}

	respondSuccess(c, "Todoの更新が完了しました。")
}

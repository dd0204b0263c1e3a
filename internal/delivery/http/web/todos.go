package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyuga-t/todo-front/internal/gateway"
	"github.com/hyuga-t/todo-front/internal/models"
	"github.com/hyuga-t/todo-front/internal/todoview"
)

// HandleTodosLoader produces the todo list page data. Superusers
// see every todo, everyone else only their own. The list is
// filtered by the query parameter and sorted by deadline urgency
// before it leaves the server.
func (h *handlerImpl) HandleTodosLoader(c *gin.Context) {
	loginUser, ok := loginUserFromContext(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}
	accessToken := accessTokenFromContext(c)

	var (
		todos []models.Todo
		err   error
	)
	if loginUser.IsSuperuser {
		todos, err = h.todos.List(c, accessToken)
	} else {
		todos, err = h.todos.ListByAuthor(c, accessToken, loginUser.UUID)
	}
	if err != nil {
		// The page still renders, just empty.
		h.logger.Error().
			Err(err).
			Msg("failed to fetch todos")
		c.JSON(http.StatusOK, gin.H{
			"todos":      []models.Todo{},
			"login_user": loginUser,
		})
		return
	}

	state := todoview.State{Query: c.Query("query")}
	sorted := todoview.Apply(todos, state, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"todos":      sorted,
		"login_user": loginUser,
	})
}

// Form submissions carry a discriminator field selecting one of
// a closed set of commands. Each command parses and validates
// its own fields independently.
const (
	actionAdd    = "add"
	actionEdit   = "edit"
	actionToggle = "toggle"
	actionDelete = "delete"
)

func (h *handlerImpl) HandleTodosAction(c *gin.Context) {
	switch action := c.PostForm("_action"); action {
	case actionAdd:
		h.handleAddTodo(c)
	case actionEdit:
		h.handleEditTodo(c, c.PostForm("id"))
	case actionToggle:
		h.handleToggleTodo(c)
	case actionDelete:
		h.handleDeleteTodo(c)
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

type addTodoCommand struct {
	Title       string
	Description *string
	AuthorUUID  string
	Completed   bool
	LimitDate   *time.Time
}

func parseAddTodoCommand(c *gin.Context) (*addTodoCommand, []gateway.FieldError) {
	var fields []gateway.FieldError

	cmd := &addTodoCommand{
		Title:     c.PostForm("title"),
		Completed: c.PostForm("completed") == "true",
	}
	if cmd.Title == "" {
		fields = append(fields, gateway.FieldError{
			Field:   "title",
			Message: "title must not be empty",
		})
	}

	cmd.AuthorUUID = c.PostForm("author_uuid")
	if _, err := uuid.Parse(cmd.AuthorUUID); err != nil {
		fields = append(fields, gateway.FieldError{
			Field:   "author_uuid",
			Message: "author_uuid must be a valid uuid",
		})
	}

	if description := c.PostForm("description"); description != "" {
		cmd.Description = &description
	}

	limitDate, err := parseLimitDate(c.PostForm("limit_date"))
	if err != nil {
		fields = append(fields, gateway.FieldError{
			Field:   "limit_date",
			Message: "limit_date must be a valid timestamp",
		})
	}
	cmd.LimitDate = limitDate

	if len(fields) > 0 {
		return nil, fields
	}
	return cmd, nil
}

func (h *handlerImpl) handleAddTodo(c *gin.Context) {
	cmd, fields := parseAddTodoCommand(c)
	if fields != nil {
		respondValidationFailure(c, fields)
		return
	}

	_, err := h.todos.Create(c, accessTokenFromContext(c), gateway.CreateTodoParams{
		Title:       cmd.Title,
		Description: cmd.Description,
		Completed:   cmd.Completed,
		AuthorUUID:  cmd.AuthorUUID,
		LimitDate:   cmd.LimitDate,
	})
	if err != nil {
		h.respondGatewayError(c, err, "Todoの登録ができませんでした")
		return
	}

	respondActionType(c, "add-success")
}

type editTodoCommand struct {
	ID          string
	Title       *string
	Description *string
	Completed   *bool
	LimitDate   *time.Time
}

func parseEditTodoCommand(c *gin.Context, todoID string) (*editTodoCommand, []gateway.FieldError) {
	var fields []gateway.FieldError

	cmd := &editTodoCommand{ID: todoID}
	if cmd.ID == "" {
		fields = append(fields, gateway.FieldError{
			Field:   "id",
			Message: "id must not be empty",
		})
	}

	if title := c.PostForm("title"); title != "" {
		cmd.Title = &title
	}
	if description := c.PostForm("description"); description != "" {
		cmd.Description = &description
	}
	if _, submitted := c.GetPostForm("completed"); submitted {
		completed := c.PostForm("completed") == "true"
		cmd.Completed = &completed
	}

	limitDate, err := parseLimitDate(c.PostForm("limit_date"))
	if err != nil {
		fields = append(fields, gateway.FieldError{
			Field:   "limit_date",
			Message: "limit_date must be a valid timestamp",
		})
	}
	cmd.LimitDate = limitDate

	if len(fields) > 0 {
		return nil, fields
	}
	return cmd, nil
}

func (h *handlerImpl) handleEditTodo(c *gin.Context, todoID string) {
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

	respondActionType(c, "edit-success")
}

func (h *handlerImpl) handleToggleTodo(c *gin.Context) {
	todoID := c.PostForm("id")
	if todoID == "" {
		respondValidationFailure(c, []gateway.FieldError{{
			Field:   "id",
			Message: "id must not be empty",
		}})
		return
	}

	// The form reports the current state, the update flips it.
	completed := c.PostForm("completed") != "true"
	_, err := h.todos.Update(c, accessTokenFromContext(c), todoID, gateway.UpdateTodoParams{
		Completed: &completed,
	})
	if err != nil {
		h.respondGatewayError(c, err, "Todoの更新ができませんでした")
		return
	}

	respondActionType(c, "toggle-success")
}

func (h *handlerImpl) handleDeleteTodo(c *gin.Context) {
	todoID := c.PostForm("id")
	if todoID == "" {
		respondValidationFailure(c, []gateway.FieldError{{
			Field:   "id",
			Message: "id must not be empty",
		}})
		return
	}

	err := h.todos.Delete(c, accessTokenFromContext(c), todoID)
	if err != nil {
		h.respondGatewayError(c, err, "Todoの削除ができませんでした")
		return
	}

	// Redirect so the browser revalidates the list.
	c.Redirect(http.StatusSeeOther, "/")
}

// parseLimitDate accepts RFC 3339 and the datetime-local input
// format. An empty value means no deadline.
func parseLimitDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04", value)
		if err != nil {
			return nil, err
		}
	}
	return &t, nil
}

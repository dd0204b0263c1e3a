package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyuga-t/todo-front/internal/models"
)

// TodoGateway translates todo CRUD calls into requests
// against the external API.
type TodoGateway interface {
	// List fetches every todo. Only meaningful for superusers.
	List(ctx context.Context, accessToken string) ([]models.Todo, error)

	// ListByAuthor fetches the todos owned by one user.
	ListByAuthor(ctx context.Context, accessToken, authorUUID string) ([]models.Todo, error)

	Get(ctx context.Context, accessToken, todoID string) (*models.Todo, error)

	// Create rejects an empty title with *ValidationError
	// before any request is made.
	Create(ctx context.Context, accessToken string, params CreateTodoParams) (*models.Todo, error)

	// Update has partial semantics: nil fields are left
	// unchanged server-side.
	Update(ctx context.Context, accessToken, todoID string, params UpdateTodoParams) (*models.Todo, error)

	Delete(ctx context.Context, accessToken, todoID string) error
}

type CreateTodoParams struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	AuthorUUID  string     `json:"author_uuid"`
	LimitDate   *time.Time `json:"limit_date,omitempty"`
}

type UpdateTodoParams struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	LimitDate   *time.Time `json:"limit_date,omitempty"`
}

type todoGatewayImpl struct {
	logger zerolog.Logger
	client *Client
}

func NewTodoGateway(logger zerolog.Logger, client *Client) TodoGateway {
	return &todoGatewayImpl{
		logger: logger,
		client: client,
	}
}

func (g *todoGatewayImpl) List(ctx context.Context, accessToken string) ([]models.Todo, error) {
	var todos []models.Todo
	err := g.client.do(ctx, http.MethodGet, "/todos", accessToken, nil, &todos)
	if err != nil {
		return nil, err
	}

	g.logger.Debug().
		Int("count", len(todos)).
		Msg("fetched all todos")
	return todos, nil
}

func (g *todoGatewayImpl) ListByAuthor(ctx context.Context, accessToken, authorUUID string) ([]models.Todo, error) {
	var todos []models.Todo
	err := g.client.do(ctx, http.MethodGet, "/todos/"+authorUUID, accessToken, nil, &todos)
	if err != nil {
		return nil, err
	}

	g.logger.Debug().
		Int("count", len(todos)).
		Str("author_uuid", authorUUID).
		Msg("fetched todos by author")
	return todos, nil
}

func (g *todoGatewayImpl) Get(ctx context.Context, accessToken, todoID string) (*models.Todo, error) {
	var todo models.Todo
	err := g.client.do(ctx, http.MethodGet, "/todo/"+todoID, accessToken, nil, &todo)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

func (g *todoGatewayImpl) Create(ctx context.Context, accessToken string, params CreateTodoParams) (*models.Todo, error) {
	if params.Title == "" {
		return nil, &ValidationError{Fields: []FieldError{{
			Field:   "title",
			Message: "title must not be empty",
		}}}
	}

	var todo models.Todo
	err := g.client.do(ctx, http.MethodPost, "/todos", accessToken, params, &todo)
	if err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("todo_id", todo.ID).
		Str("author_uuid", params.AuthorUUID).
		Msg("created todo")
	return &todo, nil
}

func (g *todoGatewayImpl) Update(ctx context.Context, accessToken, todoID string, params UpdateTodoParams) (*models.Todo, error) {
	var todo models.Todo
	err := g.client.do(ctx, http.MethodPut, "/todos/edit/"+todoID, accessToken, params, &todo)
	if err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("todo_id", todoID).
		Msg("updated todo")
	return &todo, nil
}

func (g *todoGatewayImpl) Delete(ctx context.Context, accessToken, todoID string) error {
	err := g.client.do(ctx, http.MethodDelete, "/todos/delete/"+todoID, accessToken, nil, nil)
	if err != nil {
		return err
	}

	g.logger.Info().
		Str("todo_id", todoID).
		Msg("deleted todo")
	return nil
}

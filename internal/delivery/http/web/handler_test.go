package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hyuga-t/todo-front/internal/gateway"
	"github.com/hyuga-t/todo-front/internal/models"
	"github.com/hyuga-t/todo-front/internal/session"
)

type fakeAuthGateway struct {
	token    *models.Token
	loginErr error

	user           *models.User
	currentUserErr error

	users        []models.User
	listUsersErr error

	updatedUUID   string
	updatedParams *gateway.UpdateUserParams
	updateErr     error

	deletedUUID string
	deleteErr   error

	changePasswordErr error
}

func (f *fakeAuthGateway) Login(ctx context.Context, email, password string) (*models.Token, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.token, nil
}

func (f *fakeAuthGateway) Signup(ctx context.Context, email, username, password string) (*models.Token, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.token, nil
}

func (f *fakeAuthGateway) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	if f.currentUserErr != nil {
		return nil, f.currentUserErr
	}
	return f.user, nil
}

func (f *fakeAuthGateway) ListUsers(ctx context.Context) ([]models.User, error) {
	if f.listUsersErr != nil {
		return nil, f.listUsersErr
	}
	return f.users, nil
}

func (f *fakeAuthGateway) GetUser(ctx context.Context, accessToken, userUUID string) (*models.User, error) {
	if f.currentUserErr != nil {
		return nil, f.currentUserErr
	}
	return f.user, nil
}

func (f *fakeAuthGateway) UpdateUser(ctx context.Context, accessToken, userUUID string, params gateway.UpdateUserParams) (*models.User, error) {
	if verr := validateUpdateUserParams(params); verr != nil {
		return nil, verr
	}
	f.updatedUUID = userUUID
	f.updatedParams = &params
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.user, nil
}

// Mirrors the real gateway's local validation so handler tests
// observe the same short-circuit behavior.
func validateUpdateUserParams(params gateway.UpdateUserParams) *gateway.ValidationError {
	var fields []gateway.FieldError
	if len(params.Username) < 4 {
		fields = append(fields, gateway.FieldError{Field: "username", Message: "username length is 4 at least"})
	}
	if params.Email == "" {
		fields = append(fields, gateway.FieldError{Field: "email", Message: "email must not be empty"})
	}
	if len(fields) > 0 {
		return &gateway.ValidationError{Fields: fields}
	}
	return nil
}

func (f *fakeAuthGateway) DeleteUser(ctx context.Context, userUUID string) error {
	f.deletedUUID = userUUID
	return f.deleteErr
}

func (f *fakeAuthGateway) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error {
	return f.changePasswordErr
}

type fakeTodoGateway struct {
	todos []models.Todo
	err   error

	listCalled       bool
	listByAuthorUUID string

	createdParams *gateway.CreateTodoParams
	updatedID     string
	updatedParams *gateway.UpdateTodoParams
	deletedID     string
}

func (f *fakeTodoGateway) List(ctx context.Context, accessToken string) ([]models.Todo, error) {
	f.listCalled = true
	if f.err != nil {
		return nil, f.err
	}
	return f.todos, nil
}

func (f *fakeTodoGateway) ListByAuthor(ctx context.Context, accessToken, authorUUID string) ([]models.Todo, error) {
	f.listByAuthorUUID = authorUUID
	if f.err != nil {
		return nil, f.err
	}
	return f.todos, nil
}

func (f *fakeTodoGateway) Get(ctx context.Context, accessToken, todoID string) (*models.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.todos) == 0 {
		return nil, &gateway.HTTPError{Status: http.StatusNotFound}
	}
	return &f.todos[0], nil
}

func (f *fakeTodoGateway) Create(ctx context.Context, accessToken string, params gateway.CreateTodoParams) (*models.Todo, error) {
	f.createdParams = &params
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: "created", Title: params.Title}, nil
}

func (f *fakeTodoGateway) Update(ctx context.Context, accessToken, todoID string, params gateway.UpdateTodoParams) (*models.Todo, error) {
	f.updatedID = todoID
	f.updatedParams = &params
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: todoID}, nil
}

func (f *fakeTodoGateway) Delete(ctx context.Context, accessToken, todoID string) error {
	f.deletedID = todoID
	return f.err
}

const (
	testUserUUID  = "9f3a2c84-6f1b-4f6e-9a46-000000000001"
	testAdminUUID = "9f3a2c84-6f1b-4f6e-9a46-000000000002"
)

func testUser() *models.User {
	return &models.User{
		UUID:     testUserUUID,
		Username: "tester",
		Email:    "test@example.com",
		IsActive: true,
	}
}

func testAdmin() *models.User {
	return &models.User{
		UUID:        testAdminUUID,
		Username:    "admin",
		Email:       "admin@example.com",
		IsActive:    true,
		IsSuperuser: true,
	}
}

func newTestRouter(t *testing.T, auth gateway.AuthGateway, todos gateway.TodoGateway) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := session.New(session.Config{Secret: "test-secret", MaxAge: time.Hour})
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}

	handler := New(zerolog.Nop(), store, auth, todos)

	router := gin.New()
	router.GET("/login", handler.HandleLoginLoader)
	router.POST("/login", handler.HandleLoginAction)
	router.GET("/signup", handler.HandleSignupLoader)
	router.POST("/signup", handler.HandleSignupAction)
	router.POST("/logout", handler.HandleLogoutAction)

	protected := router.Group("/", handler.HandleSessionMiddleware)
	protected.GET("/", handler.HandleTodosLoader)
	protected.POST("/", handler.HandleTodosAction)
	protected.GET("/todo/:uuid", handler.HandleTodoLoader)
	protected.POST("/todo/:uuid", handler.HandleTodoAction)
	protected.GET("/user/users", handler.HandleUsersLoader)
	protected.POST("/user/users", handler.HandleUsersAction)
	protected.GET("/user/:uuid", handler.HandleUserLoader)
	protected.POST("/user/:uuid", handler.HandleUserAction)

	return router, store
}

func sessionCookie(t *testing.T, store *session.Store) *http.Cookie {
	t.Helper()
	cookie, err := store.Write(models.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "bearer",
	})
	if err != nil {
		t.Fatalf("failed to write session cookie: %v", err)
	}
	return cookie
}

func doGet(router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func doPostForm(router *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		r.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

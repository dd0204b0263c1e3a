package web

import (
	"github.com/rs/zerolog"

	"github.com/hyuga-t/todo-front/internal/gateway"
	"github.com/hyuga-t/todo-front/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler exposes one loader/action pair per browser route.
// Loaders (GET) read the session, call the gateways and return
// page data; actions (POST) perform a mutation and return a
// redirect or an inline result.
type Handler interface {
	HandleSessionMiddleware(c *gin.Context)

	HandleLoginLoader(c *gin.Context)
	HandleLoginAction(c *gin.Context)
	HandleSignupLoader(c *gin.Context)
	HandleSignupAction(c *gin.Context)
	HandleLogoutAction(c *gin.Context)

	HandleTodosLoader(c *gin.Context)
	HandleTodosAction(c *gin.Context)
	HandleTodoLoader(c *gin.Context)
	HandleTodoAction(c *gin.Context)

	HandleUsersLoader(c *gin.Context)
	HandleUsersAction(c *gin.Context)
	HandleUserLoader(c *gin.Context)
	HandleUserAction(c *gin.Context)
}

type handlerImpl struct {
	logger   zerolog.Logger
	sessions *session.Store
	auth     gateway.AuthGateway
	todos    gateway.TodoGateway
}

func New(
	logger zerolog.Logger,
	sessions *session.Store,
	authGateway gateway.AuthGateway,
	todoGateway gateway.TodoGateway,
) Handler {
	return &handlerImpl{
		logger:   logger,
		sessions: sessions,
		auth:     authGateway,
		todos:    todoGateway,
	}
}

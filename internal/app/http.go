package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/hyuga-t/todo-front/internal/config"
	"github.com/hyuga-t/todo-front/internal/delivery/http/web"
	"github.com/hyuga-t/todo-front/internal/gateway"
	"github.com/hyuga-t/todo-front/internal/session"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	mustRegisterRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func mustRegisterRoutes(router gin.IRouter) {
	cfg := config.Global()

	sessions, err := session.New(session.Config{
		Secret: cfg.Session.Secret,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Env == config.EnvProd,
	})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to create session store")
		panic(err)
	}

	client := gateway.NewClient(globalLogger, cfg.API.RootURL, cfg.API.Timeout)
	handler := web.New(
		globalLogger,
		sessions,
		gateway.NewAuthGateway(globalLogger, client),
		gateway.NewTodoGateway(globalLogger, client),
	)

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
}

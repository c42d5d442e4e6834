// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/carlosCACB333/bonny/internal/delivery/http/middleware"
	"github.com/carlosCACB333/bonny/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler  *handler.AccountHandler
	ProfileHandler  *handler.ProfileHandler
	EmployeeHandler *handler.EmployeeHandler
	ClientHandler   *handler.ClientHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler  *handler.AccountHandler
	profileHandler  *handler.ProfileHandler
	employeeHandler *handler.EmployeeHandler
	clientHandler   *handler.ClientHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:  params.AccountHandler,
		profileHandler:  params.ProfileHandler,
		employeeHandler: params.EmployeeHandler,
		clientHandler:   params.ClientHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.accountHandler.SignupCompany)
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/logout", r.accountHandler.Logout)
		authGroup.GET("/session", r.accountHandler.CheckSession)
		authGroup.POST("/password", r.accountHandler.ResetPassword)
	}

	// Profile routes for the calling account
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.profileHandler.Get)
		profileGroup.PUT("/company", r.profileHandler.UpdateCompany)
		profileGroup.PUT("/employee", r.profileHandler.UpdateEmployee)
	}

	// Employee management, scoped to the caller's company
	employeeGroup := e.Group("/employees")
	employeeGroup.Use(r.authMiddleware.Authenticate)
	{
		employeeGroup.POST("", r.employeeHandler.Create)
		employeeGroup.GET("", r.employeeHandler.List)
		employeeGroup.GET("/:id", r.employeeHandler.Get)
		employeeGroup.PUT("/:id", r.employeeHandler.Update)
		employeeGroup.DELETE("/:id", r.employeeHandler.Delete)
	}

	// Walk-in client records
	clientGroup := e.Group("/clients")
	clientGroup.Use(r.authMiddleware.Authenticate)
	{
		clientGroup.POST("", r.clientHandler.Create)
		clientGroup.GET("", r.clientHandler.List)
		clientGroup.GET("/:id", r.clientHandler.Get)
		clientGroup.DELETE("/:id", r.clientHandler.Delete)
	}
}

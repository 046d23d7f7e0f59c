package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/desk-portal-api/internal/middleware"
	"github.com/noah-isme/desk-portal-api/internal/models"
	"github.com/noah-isme/desk-portal-api/internal/service"
	"github.com/noah-isme/desk-portal-api/internal/session"
)

// Deps bundles the handlers and shared infrastructure the route table
// wires together.
type Deps struct {
	Auth     *AuthHandler
	Desks    *DeskHandler
	Admin    *AdminHandler
	Employee *EmployeeHandler

	Sessions *session.Store
	Metrics  *service.MetricsService
}

// RegisterRoutes attaches the portal API to the engine. Every dashboard
// group carries the session middleware plus a role guard; the upstream
// service re-checks the token on each call, so the guards only shape
// which dashboard the browser shell lands on.
func RegisterRoutes(r *gin.Engine, deps Deps) {
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", func(c *gin.Context) {
			deps.Metrics.Handler().ServeHTTP(c.Writer, c.Request)
		})
	}

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/forgot-password", deps.Auth.ForgotPassword)
		auth.POST("/reset-password", deps.Auth.ResetPassword)

		auth.POST("/logout", middleware.Session(deps.Sessions), deps.Auth.Logout)
		auth.GET("/session", middleware.Session(deps.Sessions), deps.Auth.Session)
	}

	desks := v1.Group("/desks",
		middleware.Session(deps.Sessions),
		middleware.Guard(models.RoleAdmin, models.RoleITSupport),
	)
	{
		desks.GET("/board", deps.Desks.Board)
		desks.GET("/export", deps.Desks.Export)
		desks.POST("/assign", deps.Desks.Assign)
		desks.GET("/:number", deps.Desks.Detail)
		desks.PUT("/:number/status", deps.Desks.UpdateStatus)
	}

	admin := v1.Group("/admin",
		middleware.Session(deps.Sessions),
		middleware.Guard(models.RoleAdmin),
	)
	{
		admin.GET("/employees", deps.Admin.Employees)
		admin.GET("/floors", deps.Admin.Floors)
		admin.POST("/floors", deps.Admin.CreateFloor)
		admin.GET("/departments", deps.Admin.Departments)
		admin.POST("/departments", deps.Admin.CreateDepartment)
		admin.POST("/desks", deps.Admin.CreateDesk)
		admin.GET("/desk-requests", deps.Admin.Requests)
		admin.GET("/settings/auto-assignment", deps.Admin.AutoAssignment)
		admin.PUT("/settings/auto-assignment", deps.Admin.SetAutoAssignment)
	}

	me := v1.Group("/me",
		middleware.Session(deps.Sessions),
		middleware.Guard(models.RoleEmployee),
	)
	{
		me.GET("/desk-history", deps.Employee.History)
		me.GET("/desk-requests", deps.Employee.Requests)
		me.POST("/desk-requests", deps.Employee.CreateRequest)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}

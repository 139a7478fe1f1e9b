package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todoapp/internal/handlers"
	"todoapp/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	todoHandler *handlers.TodoHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/register", authHandler.Register)
	r.POST("/refresh", authHandler.RefreshToken)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	r.POST("/logout", authHandler.Logout)

	todos := r.Group("/todos")
	{
		todos.GET("", todoHandler.List)
		todos.POST("", todoHandler.Create)
		todos.GET("/:id", todoHandler.GetByID)
		todos.POST("/:id", todoHandler.Update)
		todos.DELETE("/:id", todoHandler.Delete)
	}

	return r
}

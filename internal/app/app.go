package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"todoapp/internal/config"
	"todoapp/internal/handlers"
	"todoapp/internal/middleware"
	"todoapp/internal/repositories"
	"todoapp/internal/routes"
	"todoapp/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func openDB(cfg *config.Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	return db
}

func newEmailService(cfg *config.Config) services.EmailService {
	return services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
}

// Run starts the HTTP API.
func Run() {
	cfg := config.LoadConfig()
	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	db := openDB(cfg)
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	todoRepo := repositories.NewTodoRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := newEmailService(cfg)
	userService := services.NewUserService(userRepo, emailService, authService)
	todoService := services.NewTodoService(todoRepo)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService)
	todoHandler := handlers.NewTodoHandler(todoService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	routes.SetupRoutes(router, authHandler, todoHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

// RunReminderSweep performs a single reminder sweep and returns. It is meant
// to be invoked once per minute by an external scheduler; per-todo delivery
// failures are logged and do not surface in the error.
func RunReminderSweep(ctx context.Context) error {
	cfg := config.LoadConfig()

	db := openDB(cfg)
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	userRepo := repositories.NewUserRepository(db)
	todoRepo := repositories.NewTodoRepository(db)
	emailService := newEmailService(cfg)

	reminderService := services.NewReminderService(todoRepo, userRepo, emailService)
	_, _, err := reminderService.SweepOnce(ctx)
	return err
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

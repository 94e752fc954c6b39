package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"postflow/internal/config"
	"postflow/internal/database"
	"postflow/internal/handlers"
	"postflow/internal/oauth"
	"postflow/internal/repository"
	"postflow/internal/security"
	"postflow/internal/service"
)

func main() {
	// Load .env if present, then configuration
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewSocialAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// Initialize email service (disabled unless SES_FROM_EMAIL is set)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Initialize services
	tokenIssuer := security.NewTokenIssuer(cfg.AuthSecret, cfg.SessionDuration)
	authService := service.NewAuthService(userRepo, tokenIssuer, emailService)
	accountService := service.NewAccountService(accountRepo)
	postService := service.NewPostService(postRepo, jobRepo, accountRepo)

	// OAuth connector over the per-platform provider table, built once
	connector := oauth.NewConnector(oauth.DefaultProviders(cfg))

	secure := cfg.IsProduction()

	// Initialize handlers
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(tokenIssuer, loginLimiter, secure)
	authHandler := handlers.NewAuthHandler(authService, cfg.SessionDuration, secure)
	userHandler := handlers.NewUserHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	connectHandler := handlers.NewConnectHandler(connector, accountService, secure)
	postHandler := handlers.NewPostHandler(postService)
	pageHandler := handlers.NewPageHandler(templates, accountService, postService)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Pages
	mux.HandleFunc("GET /{$}", pageHandler.Home)
	mux.HandleFunc("GET /auth/signin", pageHandler.ShowSignIn)
	mux.HandleFunc("GET /dashboard", middleware.RequirePage(pageHandler.Dashboard))
	mux.HandleFunc("GET /dashboard/accounts", middleware.RequirePage(pageHandler.DashboardAccounts))

	// Auth API
	mux.HandleFunc("POST /auth/signup", middleware.RateLimit(authHandler.Signup))
	mux.HandleFunc("POST /auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)

	// OAuth connection flow (browser-facing, redirect on failure)
	mux.HandleFunc("GET /auth/connect/{platform}", middleware.RequirePage(connectHandler.Connect))
	mux.HandleFunc("GET /auth/callback/{platform}", middleware.RequirePage(connectHandler.Callback))

	// User API
	mux.HandleFunc("PUT /user/profile", middleware.RequireAPI(userHandler.UpdateProfile))

	// Social accounts API
	mux.HandleFunc("GET /social-accounts", middleware.RequireAPI(accountHandler.ListAccounts))
	mux.HandleFunc("DELETE /social-accounts/{id}", middleware.RequireAPI(accountHandler.DisconnectAccount))

	// Posts and scheduling API
	mux.HandleFunc("GET /posts", middleware.RequireAPI(postHandler.ListPosts))
	mux.HandleFunc("POST /posts", middleware.RequireAPI(postHandler.CreatePost))
	mux.HandleFunc("GET /posts/{id}", middleware.RequireAPI(postHandler.GetPost))
	mux.HandleFunc("PUT /posts/{id}", middleware.RequireAPI(postHandler.UpdatePost))
	mux.HandleFunc("DELETE /posts/{id}", middleware.RequireAPI(postHandler.DeletePost))
	mux.HandleFunc("GET /scheduled-jobs", middleware.RequireAPI(postHandler.ListJobs))
	mux.HandleFunc("POST /scheduled-jobs", middleware.RequireAPI(postHandler.ScheduleJob))
	mux.HandleFunc("GET /dashboard/stats", middleware.RequireAPI(postHandler.DashboardStats))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	pattern := filepath.Join(templatesPath, "*.tmpl")
	tmpl, err := template.ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"clinic-management-backend/internal/config"
	"clinic-management-backend/internal/database"
	"clinic-management-backend/internal/handler"
	"clinic-management-backend/internal/middleware"
	"clinic-management-backend/internal/models"
	"clinic-management-backend/internal/repository"
	"clinic-management-backend/internal/service"
	"clinic-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection and schema
	db := database.Connect(cfg)

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	doctorRepo := repository.NewDoctorRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// Ensure the bootstrap admin account exists
	if err := ensureAdmin(userRepo, cfg); err != nil {
		log.Printf("Warning: Failed to ensure admin account exists: %v", err)
	}

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, auditRepo)
	appointmentService := service.NewAppointmentService(
		appointmentRepo, doctorRepo, patientRepo, auditRepo, cfg.Scheduling.ExclusiveSlots)
	directoryService := service.NewDirectoryService(doctorRepo, patientRepo)
	rosterService := service.NewRosterService(userRepo, doctorRepo, patientRepo, auditRepo)

	// 6. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 7. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 8. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	adminHandler := handler.NewAdminHandler(authService, rosterService)
	actorMiddleware := middleware.NewActorMiddleware(doctorRepo, patientRepo)

	// 9. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "clinic-management-backend",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Authenticated routes carry the resolved actor identity
	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(), actorMiddleware.ResolveActor())
	{
		// Directory
		api.GET("/doctors", directoryHandler.SearchDoctors)
		api.GET("/patients",
			middleware.RequireRole(models.RoleAdmin, models.RoleDoctor),
			directoryHandler.SearchPatients)

		// Appointment lifecycle
		api.GET("/appointments", appointmentHandler.List)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.POST("/appointments",
			middleware.RequireRole(models.RoleAdmin, models.RolePatient),
			appointmentHandler.Book)
		api.PATCH("/appointments/:id/reschedule",
			middleware.RequireRole(models.RolePatient),
			appointmentHandler.Reschedule)
		api.POST("/appointments/:id/cancel",
			middleware.RequireRole(models.RoleAdmin, models.RolePatient),
			appointmentHandler.Cancel)
		api.PATCH("/appointments/:id/status",
			middleware.RequireRole(models.RoleDoctor),
			appointmentHandler.MarkStatus)
		api.PUT("/appointments/:id/treatment",
			middleware.RequireRole(models.RoleDoctor),
			appointmentHandler.SaveTreatment)
		api.POST("/appointments/:id/payment",
			middleware.RequireAdmin(),
			appointmentHandler.CreatePayment)

		// Doctor schedule
		api.PUT("/doctors/:id/availability",
			middleware.RequireRole(models.RoleAdmin, models.RoleDoctor),
			appointmentHandler.SetAvailability)

		// Admin roster management
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/doctors", adminHandler.RegisterDoctor)
			admin.GET("/doctors", adminHandler.ListDoctors)
			admin.GET("/patients", adminHandler.ListPatients)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.GET("/activity", adminHandler.RecentActivity)
		}
	}

	// 10. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	log.Println("Server exited")
}

// ensureAdmin creates the bootstrap admin account once.
func ensureAdmin(userRepo repository.UserStore, cfg *config.Config) error {
	if _, err := userRepo.FindUserByEmail(cfg.Admin.Email); err == nil {
		return nil
	}

	passwordHash, err := utils.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         cfg.Admin.Name,
		Email:        cfg.Admin.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	if err := userRepo.CreateUser(admin); err != nil {
		return err
	}

	log.Printf("Bootstrap admin account %s created", cfg.Admin.Email)
	return nil
}

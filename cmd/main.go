package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/AUXLE/clavedeoroBackend/internal/app"
	"github.com/AUXLE/clavedeoroBackend/internal/auth"
	"github.com/AUXLE/clavedeoroBackend/internal/config"
	"github.com/AUXLE/clavedeoroBackend/internal/controllers"
	"github.com/AUXLE/clavedeoroBackend/internal/middleware"
	"github.com/AUXLE/clavedeoroBackend/internal/repositories"
	"github.com/AUXLE/clavedeoroBackend/internal/routes"
	"github.com/AUXLE/clavedeoroBackend/internal/services"
	"github.com/AUXLE/clavedeoroBackend/internal/storage"
	"github.com/AUXLE/clavedeoroBackend/internal/utils"
)

const corsLowSecurityLocalhost = "http://localhost:3000"

func main() {
	if err := godotenv.Load(); err != nil {
		// fine in production; the environment is provided by the platform
		utils.Logger.Infof("No .env file loaded: %v", err)
	}

	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	reviewRepo := repositories.NewReviewRepository(application.DB)
	adminUserRepo := repositories.NewAdminUserRepository(application.DB)

	//----------------------------------------------------------------------
	// External collaborators
	//----------------------------------------------------------------------
	verifier := auth.NewGoTrueVerifier(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	authorizer := auth.NewRepoAdminAuthorizer(adminUserRepo)
	store := storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceKey)

	if cfg.BootstrapAdminID != nil {
		if err := adminUserRepo.Upsert(context.Background(), *cfg.BootstrapAdminID, true); err != nil {
			utils.Logger.Fatal("Failed to upsert bootstrap admin:", err)
		}
		utils.Logger.Infof("Bootstrap admin %s ensured", cfg.BootstrapAdminID)
	}

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	propertyService := services.NewPropertyService(propertyRepo, store)
	reviewService := services.NewReviewService(reviewRepo, store)
	contactService := services.NewContactService(cfg)
	authService := services.NewAuthService(verifier, authorizer)
	sweepService := services.NewSweepService(propertyRepo, reviewRepo, store)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	propertyController := controllers.NewPropertyController(propertyService)
	reviewController := controllers.NewReviewController(reviewService)
	contactController := controllers.NewContactController(contactService)
	authController := controllers.NewAuthController(authService)
	healthController := controllers.NewHealthController()

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	// Health
	router.HandleFunc(routes.Root, healthController.HealthCheckHandler).Methods("GET")
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods("GET")

	// Public reads
	router.HandleFunc(routes.Properties, propertyController.ListProperties).Methods("GET")
	router.HandleFunc(routes.PropertyByID, propertyController.GetProperty).Methods("GET")
	router.HandleFunc(routes.Reviews, reviewController.ListReviews).Methods("GET")
	router.HandleFunc(routes.ReviewByID, reviewController.GetReview).Methods("GET")

	// Public writes
	router.HandleFunc(routes.ContactForm, contactController.SubmitContactForm).Methods("POST")
	router.HandleFunc(routes.AdminLogin, authController.LoginAdmin).Methods("POST")

	// Admin endpoints sit behind the two-stage gate
	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.RequireAdmin(verifier, authorizer))
	adminRouter.HandleFunc(routes.AdminProperties, propertyController.CreateProperty).Methods("POST")
	adminRouter.HandleFunc(routes.AdminPropertyByID, propertyController.UpdateProperty).Methods("PUT")
	adminRouter.HandleFunc(routes.AdminPropertyByID, propertyController.DeleteProperty).Methods("DELETE")
	adminRouter.HandleFunc(routes.AdminPropertyImages, propertyController.UploadImages).Methods("POST")
	adminRouter.HandleFunc(routes.AdminPropertyImageDetach, propertyController.DetachImage).Methods("DELETE")
	adminRouter.HandleFunc(routes.AdminReviews, reviewController.CreateReview).Methods("POST")
	adminRouter.HandleFunc(routes.AdminReviewImageUpload, reviewController.UploadImage).Methods("POST")
	adminRouter.HandleFunc(routes.AdminReviewByID, reviewController.UpdateReview).Methods("PUT")
	adminRouter.HandleFunc(routes.AdminReviewByID, reviewController.DeleteReview).Methods("DELETE")

	//----------------------------------------------------------------------
	// Nightly orphaned-object sweep
	//----------------------------------------------------------------------
	c := cron.New()
	_, schErr := c.AddFunc("30 3 * * *", func() {
		if e := sweepService.CleanupDaily(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled orphaned-object sweep failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule orphaned-object sweep")
	}
	c.Start()
	defer c.Stop()

	//----------------------------------------------------------------------
	// CORS & server
	//----------------------------------------------------------------------
	allowedOrigins := []string{cfg.AppURL}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, corsLowSecurityLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: co.Handler(router),
	}

	go func() {
		utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal("Failed to start server:", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	utils.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		utils.Logger.Fatal("Error during server shutdown:", err)
	}
	utils.Logger.Info("Server gracefully stopped")
}

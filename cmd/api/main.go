// cmd/api/main.go
// Main entry point for the application
// Bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prempath/prempath-backend/internal/auth"
	"github.com/prempath/prempath-backend/internal/common/database"
	"github.com/prempath/prempath-backend/internal/config"
	"github.com/prempath/prempath-backend/internal/contact"
	"github.com/prempath/prempath-backend/internal/interest"
	"github.com/prempath/prempath-backend/internal/matching"
	"github.com/prempath/prempath-backend/internal/memberid"
	"github.com/prempath/prempath-backend/internal/notification"
	"github.com/prempath/prempath-backend/internal/profile"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("Starting PremPath Matrimony API")

	// 1. Environment and configuration
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (%v), using environment variables", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Configuration validation failed: ", err)
	}

	// 2. MongoDB
	db, disconnect, err := database.NewMongoDatabase(&database.MongoConfig{
		URI:      cfg.MongoURI,
		Database: cfg.MongoDatabase,
	})
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := disconnect(ctx); err != nil {
			log.Printf("MongoDB disconnect: %v", err)
		}
	}()
	log.Println("Connected to MongoDB")

	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.EnsureIndexes(ctx, db); err != nil {
			log.Printf("Warning: index creation failed: %v", err)
		}
		cancel()
	}

	// 3. Redis (optional; password reset tokens fall back to memory)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis unavailable (%v), continuing without it", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("Connected to Redis")
		}
	}

	// 4. Member ID allocation
	memberIDRepo := memberid.NewRepository(db)
	memberIDService := memberid.NewService(memberIDRepo)
	memberIDHandler := memberid.NewHandler(memberIDService)

	// 5. Notifications (websocket hub + persistence + outbound channels)
	notificationHub := notification.NewHub()
	go notificationHub.Run()

	emailService := notification.NewEmailService(cfg)
	smsService := notification.NewSMSService(cfg)

	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo, notificationHub, &notification.Channels{
		Email:        emailService,
		SMS:          smsService,
		EmailEnabled: cfg.EnableEmailNotifications,
		SMSEnabled:   cfg.EnableSMSNotifications,
	})
	notificationHandler := notification.NewHandler(notificationService, notificationHub)

	// 6. Matching
	matchingRepo := matching.NewRepository(db)
	matchingService := matching.NewService(matchingRepo, notificationService, memberIDService)
	matchingHandler := matching.NewHandler(matchingService)

	// 7. Auth
	var tokenStore auth.ResetTokenStore
	if redisClient != nil {
		tokenStore = auth.NewRedisTokenStore(redisClient)
	} else {
		tokenStore = auth.NewMemoryTokenStore()
	}

	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, tokenStore, emailService, memberIDService, cfg)
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(authService)

	// 8. Profiles and uploads
	var uploadService profile.UploadService
	if cfg.UseS3 {
		uploadService, err = profile.NewS3UploadService(cfg.S3Bucket, cfg.S3Region)
		if err != nil {
			log.Printf("Warning: S3 init failed (%v), using local storage", err)
			uploadService = profile.NewLocalUploadService(cfg.LocalUploadDir, cfg.BaseURL)
		}
	} else {
		uploadService = profile.NewLocalUploadService(cfg.LocalUploadDir, cfg.BaseURL)
	}

	profileRepo := profile.NewRepository(db)
	profileService := profile.NewService(profileRepo, uploadService, memberIDService)
	profileHandler := profile.NewHandler(profileService)

	// 9. Interests and wishlist
	interestRepo := interest.NewRepository(db)
	interestService := interest.NewService(interestRepo, matchingService)
	interestHandler := interest.NewHandler(interestService)

	// 10. Contact
	contactRepo := contact.NewRepository(db)
	contactService := contact.NewService(contactRepo)
	contactHandler := contact.NewHandler(contactService)

	// 11. Routes
	router := mux.NewRouter()
	router.Use(loggingMiddleware, corsMiddleware)

	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/",
				http.FileServer(http.Dir(cfg.LocalUploadDir))))
	}

	authenticate := mux.MiddlewareFunc(authMiddleware.Authenticate)
	requireAdmin := mux.MiddlewareFunc(authMiddleware.RequireAdmin)

	auth.RegisterRoutes(router, authHandler)
	profile.RegisterRoutes(router, profileHandler, authenticate, requireAdmin)
	matching.RegisterRoutes(router, matchingHandler, authenticate, requireAdmin)
	interest.RegisterRoutes(router, interestHandler, authenticate)
	notification.RegisterRoutes(router, notificationHandler, authenticate, requireAdmin)
	memberid.RegisterRoutes(router, memberIDHandler, authenticate, requireAdmin)
	contact.RegisterRoutes(router, contactHandler, authenticate, requireAdmin)

	// 12. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s (%s)", srv.Addr, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exited gracefully")
}

var startTime = time.Now()

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":%q,"uptime":%q}`,
		time.Now().Format(time.RFC3339), time.Since(startTime).String())
}

// loggingMiddleware logs every request with its status and duration
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		log.Printf("%s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

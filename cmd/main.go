package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"roadwatch/backend/internal/api/handler"
	"roadwatch/backend/internal/complaint"
	"roadwatch/backend/internal/config"
	"roadwatch/backend/internal/geocode"
	"roadwatch/backend/internal/models"
	"roadwatch/backend/internal/notify"
	"roadwatch/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	if err := db.AutoMigrate(&models.Complaint{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting RoadWatch Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload directory %s: %v", cfg.UploadDir, err)
	}
	log.Printf("INFO: Upload folder ensured: %s", cfg.UploadDir)

	var notifier complaint.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Printf("WARNING: Telegram notifier disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	complaintSvc := complaint.NewService(s, cfg.UploadDir, cfg.UploadPublicPrefix, notifier)
	geocoder := geocode.NewClient(cfg.GoogleAPIKey)

	r := gin.Default()
	h := handler.NewHandler(complaintSvc, s, geocoder, cfg)

	// Public surface
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "roadwatch", "status": "ok"})
	})
	r.GET("/history", h.History)
	r.POST("/submit_complaint", h.SubmitComplaint)
	r.POST("/geocode", h.Geocode)
	r.Static("/static", "./static")

	// Admin session flow
	r.GET("/admin/login", h.ShowLogin)
	r.POST("/admin/login", h.Login)

	// Session-guarded admin surface
	admin := r.Group("/", h.RequireSession())
	admin.GET("/admin/logout", h.Logout)
	admin.GET("/admin-dashboard", h.AdminDashboard)
	admin.PUT("/admin/api/complaints/:id/status", h.UpdateComplaintStatus)

	// Shared-secret machine API
	r.GET("/api/complaints", h.RequireAPIKey(), h.APIListComplaints)

	server := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Printf("INFO: Server listening on %s", server.Addr)
	log.Fatal(server.ListenAndServe())
}

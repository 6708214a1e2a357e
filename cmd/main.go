package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"samadhan/backend/internal/analysis"
	"samadhan/backend/internal/api/handler"
	"samadhan/backend/internal/assistant"
	"samadhan/backend/internal/lifecycle"
	"samadhan/backend/internal/localization"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/notify"
	"samadhan/backend/internal/storage"
	"samadhan/backend/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "samadhandb"),
		envOr("DB_PORT", "5432"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Grievance{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.Println("Starting Samadhan Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// 1. Dependencies
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	localizer, err := localization.NewLocalizer()
	if err != nil {
		log.Fatalf("Failed to load language packs: %v", err)
	}

	// 2. Optional collaborators: media uploads and Telegram notifications
	// degrade to "off" when unconfigured, never block startup.
	media, err := storage.NewMediaStoreFromEnv()
	if err != nil {
		log.Printf("Warning: media uploads disabled: %v", err)
		media = nil
	}

	var notifier lifecycle.Notifier
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		tn, err := notify.NewTelegramNotifier(token, s, localizer, os.Getenv("NOTIFY_LOCALE"))
		if err != nil {
			log.Printf("Warning: Telegram notifications disabled: %v", err)
		} else {
			notifier = tn
		}
	}

	// 3. Services
	policy := analysis.FromName(os.Getenv("PRIORITY_POLICY"))
	wizardSvc := wizard.NewService(s, policy)
	lifecycleSvc := lifecycle.NewService(s, notifier)
	responder := assistant.NewResponder(localizer)

	// 4. Gin router
	r := gin.Default()
	h := handler.NewHandler(s, wizardSvc, lifecycleSvc, responder, media, []byte(jwtSecret))

	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.GET("/categories", h.Categories)
	r.GET("/ws/assistant", h.ServeAssistant)
	r.POST("/assistant", h.AskAssistant)

	auth := r.Group("/", h.RequireAuth())
	{
		auth.GET("/me", h.CurrentUser)
		auth.GET("/grievances/mine", h.MyGrievances)

		auth.GET("/draft", h.GetDraft)
		auth.DELETE("/draft", h.DiscardDraft)
		auth.POST("/draft/category", h.SetCategory)
		auth.POST("/draft/description", h.SetDescription)
		auth.POST("/draft/details", h.SetDetails)
		auth.POST("/draft/location", h.SetLocation)
		auth.POST("/draft/media/:kind", h.AttachMedia)
		auth.POST("/draft/next", h.NextStep)
		auth.POST("/draft/back", h.PrevStep)
		auth.POST("/draft/submit", h.SubmitDraft)
	}

	admin := r.Group("/admin", h.RequireAuth(), h.RequireAdmin())
	{
		admin.GET("/grievances", h.AdminListGrievances)
		admin.PATCH("/grievances/:id/status", h.UpdateStatus)
		admin.GET("/export/csv", h.ExportCSV)
		admin.GET("/export/print", h.ExportPrintable)
	}

	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}

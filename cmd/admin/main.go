package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"samadhan/backend/internal/lifecycle"
	"samadhan/backend/internal/models"
	"samadhan/backend/internal/projection"
	"samadhan/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Dial Redis when configured so status changes from the CLI drop the
	// web server's cached listing snapshot. Without it the cached list
	// serves stale rows until the TTL runs out.
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("WARNING: Redis unreachable, listing cache will not be refreshed: %v", err)
			rdb = nil
		}
	}

	storageSvc := storage.NewStorageService(db, rdb)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "set-status":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin set-status <grievance_id> <pending|in-progress|resolved>")
			os.Exit(1)
		}
		id := os.Args[2]
		status := models.Status(os.Args[3])
		if err := setStatus(storageSvc, id, status); err != nil {
			log.Fatalf("Error setting status: %v", err)
		}
		fmt.Printf("Grievance %s is now %s.\n", id, status)
	case "export-csv":
		filter := projection.Filter{Status: projection.All, Category: projection.All}
		if len(os.Args) > 2 {
			filter.Status = os.Args[2]
		}
		if len(os.Args) > 3 {
			filter.Category = os.Args[3]
		}
		if err := exportCSV(storageSvc, filter); err != nil {
			log.Fatalf("Error exporting: %v", err)
		}
	case "grant-admin":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin grant-admin <phone>")
			os.Exit(1)
		}
		phone := os.Args[2]
		if err := grantAdmin(storageSvc, phone); err != nil {
			log.Fatalf("Error granting admin: %v", err)
		}
		fmt.Printf("User %s is now an administrator.\n", phone)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func setStatus(s storage.Storage, id string, status models.Status) error {
	// The CLI runs with operator credentials; the same transition rules
	// apply as in the API.
	operator := &models.User{IsAdmin: true}
	svc := lifecycle.NewService(s, nil)
	_, err := svc.Transition(id, status, operator)
	return err
}

func exportCSV(s storage.Storage, filter projection.Filter) error {
	all, err := s.ListAllGrievances()
	if err != nil {
		return err
	}
	rows := projection.Rows(projection.Apply(all, filter))

	filename := projection.CSVFilename(time.Now())
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := projection.WriteCSV(f, rows); err != nil {
		return err
	}
	fmt.Printf("Wrote %d rows to %s.\n", len(rows), filename)
	return nil
}

func grantAdmin(s storage.Storage, phone string) error {
	user, err := s.GetUserByPhone(phone)
	if err != nil {
		return err
	}
	user.IsAdmin = true
	return s.SaveUser(user)
}

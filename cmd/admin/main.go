package main

import (
	"fmt"
	"log"
	"os"

	"roadwatch/backend/internal/models"
	"roadwatch/backend/internal/storage"

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

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		complaints, err := storageSvc.GetAllComplaints()
		if err != nil {
			log.Fatalf("Error listing complaints: %v", err)
		}
		for _, c := range complaints {
			fmt.Printf("%s  %-10s  %-12s  %s %s  %s\n",
				c.ComplaintID, c.Status, c.VehicleNo, c.Date, c.Time, c.ViolationType)
		}
	case "set-status":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin set-status <complaint_id> <status>")
			os.Exit(1)
		}
		complaintID := os.Args[2]
		status, ok := models.NormalizeStatus(os.Args[3])
		if !ok {
			fmt.Printf("Invalid status. Must be one of: %v\n", models.ValidStatuses)
			os.Exit(1)
		}
		if err := storageSvc.UpdateComplaintStatus(complaintID, status); err != nil {
			log.Fatalf("Error updating complaint: %v", err)
		}
		fmt.Printf("Complaint %s moved to %s.\n", complaintID, status)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

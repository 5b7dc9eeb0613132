package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"fitlog/config"
	"fitlog/db"
	"fitlog/middlewares"
	"fitlog/models"

	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "Account email (required)")
	role := flag.String("role", "admin", "Role to grant (default: admin)")
	configPath := flag.String("config", "config/config.yml", "Path to config file")
	flag.Parse()

	if *email == "" {
		fmt.Println("Error: email is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectPostgres(cfg.Postgres.DSN); err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}

	var account models.Account
	err = db.Postgres.Where("email = ?", *email).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("No account with email %s; sign up first", *email)
	}
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}

	if err := middlewares.InitCasbin(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}
	if err := middlewares.GrantRole(account.ID, *role); err != nil {
		log.Fatalf("Failed to grant role: %v", err)
	}

	fmt.Printf("Granted role %s to %s (%s)\n", *role, *email, account.ID)
}

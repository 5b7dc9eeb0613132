package db

import (
	"fmt"

	"fitlog/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var Postgres *gorm.DB

// ConnectPostgres opens the relational store and migrates the account,
// social-graph and achievement tables.
func ConnectPostgres(dsn string) error {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}

	err = gdb.AutoMigrate(
		&models.Account{},
		&models.FollowEdge{},
		&models.FollowRequest{},
		&models.BlockEdge{},
		&models.Achievement{},
		&models.AchievementProgress{},
	)
	if err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	Postgres = gdb
	return nil
}

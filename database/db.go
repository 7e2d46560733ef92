package database

import (
	"fmt"
	"os"

	"cobranzas-backend/config"
	"cobranzas-backend/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(); err != nil {
		config.GetLogger().Info("no .env file found, relying on environment")
	}

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=America/Lima",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), port)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Could not connect to database: " + err.Error())
	}
}

func AutoMigrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.ContractedService{},
		&models.Invoice{},
		&models.CollectionTracking{},
		&models.Notification{},
		&models.AlertSetting{},
		&models.IdempotencyKey{},
	)
	if err != nil {
		panic("Could not run migrations: " + err.Error())
	}
}

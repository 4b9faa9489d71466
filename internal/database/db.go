package database

import (
	"log"

	"fincontrol-backend/internal/config"
	"fincontrol-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.TransactionNote{},
	)
	if err != nil {
		log.Fatalf("Error de AutoMigrate: %v", err)
	}

	log.Println("Conexión a la base de datos establecida. Migración completada.")
}

package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"tourlms/config"
	"tourlms/models"
	courseModels "tourlms/models/course"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db       *gorm.DB
	Contacts ContactStore
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes the SQL connection and the contact message store
func ConnectDb() {
	dialector, err := dialectorFor(config.AppConfig)
	if err != nil {
		log.Fatalf("Invalid database configuration: %v", err)
	}

	db, err := Open(dialector)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", config.AppConfig.DBDriver, err)
	}

	contacts := ContactStore(NewGormContactStore(db))
	if config.AppConfig.ContactStore == "mongo" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		coll, err := ConnectMongo(ctx, config.AppConfig.MongoURI, config.AppConfig.MongoDatabase)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		contacts = NewMongoContactStore(coll)
	}

	// Save database instance globally
	Database = DbInstance{Db: db, Contacts: contacts}
}

// Open connects with the given dialector, sets up pooling and runs migrations
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel()),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if dialector.Name() == "sqlite" {
		// a single connection keeps in-memory databases shared
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)   // Maximum open connections
		sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
		sqlDB.SetConnMaxLifetime(0) // No timeout
	}

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// logLevel prints every statement in development and only slow queries and errors otherwise
func logLevel() logger.LogLevel {
	if config.AppConfig != nil && config.AppConfig.IsDevelopment() {
		return logger.Info
	}
	return logger.Warn
}

// OpenSQLite opens a sqlite database, e.g. "file::memory:" in tests
func OpenSQLite(dsn string) (*gorm.DB, error) {
	return Open(sqlite.Open(dsn))
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBName + ".db"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&models.ContactMessage{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.CourseContent{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
		&courseModels.NotificationSubscription{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("Migrations completed successfully.")
	return nil
}

package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vulnlab/socialsite/models"
)

var db *gorm.DB

// InitDatabase opens the SQLite database, performs automatic migrations and
// seeds the initial accounts. Foreign keys are enforced by the engine; writes
// are serialized by SQLite's own locking, no locking happens in application code.
func InitDatabase(cfg AppConfig) *gorm.DB {
	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("failed to create database directory: %v", err)
		}
	}

	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gormCfg := &gorm.Config{
		Logger:         gLogger,
		TranslateError: true,
	}

	handle, err := gorm.Open(sqlite.Open(cfg.DBPath+"?_foreign_keys=on"), gormCfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := handle.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		log.Fatalf("auto migration failed: %v", err)
	}

	if err := seedAdmin(handle, cfg); err != nil {
		log.Fatalf("admin seeding failed: %v", err)
	}
	if cfg.SeedDemo {
		if err := seedDemoData(handle); err != nil {
			log.Printf("demo data seeding failed: %v", err)
		}
	}

	db = handle
	return handle
}

// DB provides access to the initialized gorm DB instance.
func DB() *gorm.DB {
	if db == nil {
		log.Fatal("database not initialized, call InitDatabase first")
	}
	return db
}

// seedAdmin creates the configured admin account when the users table is
// empty. This is the only path that sets the admin flag.
func seedAdmin(db *gorm.DB, cfg AppConfig) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	return db.Create(&admin).Error
}

var demoUsernames = []string{"john_doe", "jane_smith", "mike_wilson", "sarah_jones", "alex_brown"}

var demoPosts = []string{
	"Hello everyone! This is my first post.",
	"Just sharing some thoughts today. The weather is nice!",
	"Working on a new project, excited to share updates soon.",
	"Anyone have recommendations for good books to read?",
	"Great discussion happening here, love this community!",
}

// seedDemoData inserts a fixed set of demo users and posts. Existing users are
// left untouched, so repeated boots do not duplicate accounts.
func seedDemoData(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	for _, name := range demoUsernames {
		var user models.User
		res := db.Where(models.User{Username: name}).
			Attrs(models.User{PasswordHash: string(hash)}).
			FirstOrCreate(&user)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			continue // user already present, keep their posts as-is
		}
		for _, content := range demoPosts {
			post := models.Post{UserID: user.ID, Content: content}
			if err := db.Create(&post).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// toGormLogLevel maps the application LogLevel to GORM's logger level.
func toGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}

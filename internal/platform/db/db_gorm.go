package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"task_backend/internal/config"
	authadapters "task_backend/internal/feature/auth/adapters"
	authentity "task_backend/internal/feature/auth/domain/entity"
	taskadapters "task_backend/internal/feature/tasks/adapters"
)

// OpenDB opens the Postgres connection with a startup retry loop.
// The process exits if the database is still unreachable after 60 seconds.
func OpenDB(cfg *config.Config) *gorm.DB {
	dsn := cfg.DB.DSN()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// Migrate はスキーマを作成・更新します（User, Task, Session）。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&authentity.User{},
		&taskadapters.TaskModel{},
		&authadapters.SessionModel{},
	)
}

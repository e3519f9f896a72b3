// Command migrate はスキーマのマイグレーションのみを実行して終了します。
// RUN_MIGRATIONSを有効にせずにサーバーを運用する環境向けです。
package main

import (
	"log"

	"task_backend/internal/config"
	infradb "task_backend/internal/platform/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	// OpenDBのRunMigrationsは無視し、常にマイグレーションを実行する
	cfg.RunMigrations = false

	db := infradb.OpenDB(cfg)
	if err := infradb.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("migrations applied")
}

package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"task_backend/internal/app/di"
	"task_backend/internal/app/router"
	"task_backend/internal/config"
	authadapters "task_backend/internal/feature/auth/adapters"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	infradb "task_backend/internal/platform/db"
	jwtmw "task_backend/internal/platform/jwt"
	infraredis "task_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB(cfg)

	// Redis（セッションストア、未設定・接続不可ならPostgresにフォールバック）
	var rdb *redisv9.Client
	if cfg.Redis.Host != "" {
		if tmp, err := infraredis.NewRedisClient(cfg.Redis); err != nil {
			log.Println("[WARN] Redis unavailable. Falling back to Postgres sessions.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	taskRepo := taskadapters.NewTaskRepository(db)

	// JWT
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, cfg.RefreshTokenTTL)
	tasksUC := taskusecase.NewTasksUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	tasksH := taskhandler.NewTaskHandler(tasksUC)

	// ルータ生成
	r := router.NewRouter(cfg.JWTSecret, authH, tasksH)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

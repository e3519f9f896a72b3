package router

import (
	"time"

	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	"task_backend/internal/platform/http/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/shared/ratelimiter"
)

func NewRouter(jwtSecret string, authHandler *authhandler.AuthHandler, tasks *taskhandler.TaskHandler) *gin.Engine {
	r := gin.Default()

	// 認証エンドポイントのブルートフォース対策（IPごとに1分あたり10回）
	loginLimiter := ratelimiter.NewRateLimiter(10, time.Minute)

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)

	user := r.Group("/api/user")
	{
		// 新規ユーザー登録
		user.POST("/register", loginLimiter.Middleware(), authHandler.Register)
		// ログイン（JWT 発行）
		user.POST("/login", loginLimiter.Middleware(), authHandler.Login)
		// トークン更新とログアウトはリフレッシュトークン自体で認証される
		user.POST("/refresh", authHandler.Refresh)
		user.POST("/logout", authHandler.Logout)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth := r.Group("/api")
	auth.Use(jwtmw.AuthRequired(jwtSecret))
	{
		auth.GET("/user/profile", authHandler.Profile)

		auth.POST("/task/create", tasks.Create)
		auth.GET("/task/getAll", tasks.List)
		auth.GET("/task/getById/:id", tasks.GetByID)
		auth.PUT("/task/update/:id", tasks.Update)
		auth.DELETE("/task/delete/:id", tasks.Delete)
	}

	return r
}

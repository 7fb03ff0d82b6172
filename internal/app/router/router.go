package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "contacts_backend/internal/feature/auth/transport/handler"
	"contacts_backend/internal/feature/auth/transport/middleware"
	contacthandler "contacts_backend/internal/feature/contacts/transport/handler"
	platformhandler "contacts_backend/internal/platform/http/handler"
	"contacts_backend/internal/shared/ratelimiter"
)

func NewRouter(authH *authhandler.AuthHandler, contactH *contacthandler.ContactHandler,
	resolver middleware.IdentityResolver, limiter *ratelimiter.RateLimiter) *gin.Engine {
	r := gin.Default()

	// ブラウザのフロントエンドから呼び出すため全オリジンを許可
	r.Use(cors.Default())

	// IPごとのレートリミット
	if limiter != nil {
		r.Use(limiter.Middleware())
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 新規ユーザー登録
	r.POST("/register", authH.Register)
	// ログイン（アクセストークン発行）
	r.POST("/token", authH.Token)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// middleware.AuthRequired を適用
	// → リクエストヘッダーに Bearer トークンが必要になる
	auth.Use(middleware.AuthRequired(resolver))
	{
		auth.GET("/users/me", authH.Me)
		auth.POST("/users/avatar", authH.UpdateAvatar)

		auth.POST("/contacts", contactH.Create)
		auth.GET("/contacts", contactH.List)
		// 静的ルートはパラメータルートより先に登録する
		auth.GET("/contacts/birthdays", contactH.Birthdays)
		auth.GET("/contacts/:id", contactH.Get)
		auth.PUT("/contacts/:id", contactH.Update)
		auth.DELETE("/contacts/:id", contactH.Delete)
	}

	return r
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"contacts_backend/internal/app/di"
	"contacts_backend/internal/app/router"
	authadapters "contacts_backend/internal/feature/auth/adapters"
	authhandler "contacts_backend/internal/feature/auth/transport/handler"
	authusecase "contacts_backend/internal/feature/auth/usecase"
	contacthandler "contacts_backend/internal/feature/contacts/transport/handler"
	contactsusecase "contacts_backend/internal/feature/contacts/usecase"
	infradb "contacts_backend/internal/platform/db"
	jwtauth "contacts_backend/internal/platform/jwt"
	"contacts_backend/internal/platform/password"
	infraredis "contacts_backend/internal/platform/redis"
	"contacts_backend/internal/shared/ratelimiter"
)

func main() {
	// .env があれば読み込む（本番では環境変数を直接設定）
	_ = godotenv.Load()

	// トークン設定（SECRET_KEY未設定は起動エラー）
	jwtCfg, err := jwtauth.LoadConfig()
	if err != nil {
		log.Fatalf("invalid token configuration: %v", err)
	}
	codec, err := jwtauth.NewCodec(jwtCfg)
	if err != nil {
		log.Fatalf("failed to initialize token codec: %v", err)
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	contactRepo := di.NewContactRepository(rdb, db)

	// アバターストレージ（未設定時はnil → アップロード無効）
	avatars := di.NewAvatarStorage(context.Background())

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewBcryptHasher(0), codec, avatars, jwtCfg.Expiration)
	contactsUC := contactsusecase.NewContactsUsecase(contactRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	contactH := contacthandler.NewContactHandler(contactsUC)

	// IPごとのレートリミット
	limiter := ratelimiter.NewRateLimiter(100, time.Minute)

	// ルータ生成
	r := router.NewRouter(authH, contactH, authUC, limiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

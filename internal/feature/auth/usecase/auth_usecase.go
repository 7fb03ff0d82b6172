// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"contacts_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスまたはユーザー名のユーザーが既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdateAvatarURL は指定されたユーザーのアバターURLを更新します。
	UpdateAvatarURL(ctx context.Context, id uint, url string) error
}

// PasswordHasher はパスワードの一方向ハッシュ化と検証を抽象化します。
type PasswordHasher interface {
	// Hash は平文パスワードからソルト付きハッシュを生成します。
	Hash(plaintext string) (string, error)

	// Verify は平文パスワードがハッシュと一致するかを返します。
	// 不正なハッシュ文字列は検証失敗として扱われ、エラーにはなりません。
	Verify(plaintext, hashed string) bool
}

// TokenCodec は署名付きアクセストークンの発行と検証を抽象化します。
type TokenCodec interface {
	// Issue は指定されたサブジェクトとTTLで署名済みトークンを発行します。
	Issue(subject string, ttl time.Duration) (string, error)

	// Decode はトークンを検証し、サブジェクトクレームを返します。
	Decode(token string) (string, error)
}

// AvatarStorage はアバター画像の外部ストレージへのアップロードを抽象化します。
type AvatarStorage interface {
	// Upload は画像を保存し、公開URLを返します。
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// dummyPasswordHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
// PasswordHasher.Verifyが常に呼ばれることを保証します。
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	hasher   PasswordHasher
	tokens   TokenCodec
	avatars  AvatarStorage
	tokenTTL time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// avatarsはnil可で、その場合アバターアップロードは無効になります。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenCodec,
	avatars AvatarStorage, tokenTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		avatars:  avatars,
		tokenTTL: tokenTTL,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// メールアドレスの重複は事前チェックしますが、最終的な一意性の保証はディレクトリ側の
// 制約に委ねます。レースで事前チェックをすり抜けた場合もErrEmailAlreadyExistsを返します。
func (u *authUsecase) Register(ctx context.Context, email, username, password string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	// 事前チェック：既存ユーザーがいれば書き込みを試みない
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: email, Username: username, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にアクセストークンを返します。
// ユーザー未検出とパスワード不一致は呼び出し側から区別できません（ユーザー列挙防止）。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	passwordHash := dummyPasswordHash
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	ok := u.hasher.Verify(password, passwordHash)

	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.Issue(user.Email, u.tokenTTL)
	if tokenErr != nil {
		return "", fmt.Errorf("failed to issue token: %w", tokenErr)
	}

	return token, nil
}

// Resolve は提示されたベアラートークンを検証し、対応するユーザーを返します。
// デコード失敗・サブジェクト不明はすべて外部向けにはErrUnauthenticatedに集約されます。
// 内部的な失敗理由は診断用ログにのみ残します。
func (u *authUsecase) Resolve(ctx context.Context, token string) (*entity.User, error) {
	subject, err := u.tokens.Decode(token)
	if err != nil {
		slog.Debug("token rejected", "reason", err)
		return nil, ErrUnauthenticated
	}

	// トークン発行後にユーザーが削除されたケースもここで401に落ちる
	user, err := u.users.FindByEmail(ctx, subject)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			slog.Warn("identity lookup failed", "error", err)
		}
		return nil, ErrUnauthenticated
	}

	return user, nil
}

// UpdateAvatar はアバター画像を外部ストレージへアップロードし、ユーザーのURLを更新します。
func (u *authUsecase) UpdateAvatar(ctx context.Context, userID uint, r io.Reader, contentType string) (*entity.User, error) {
	if u.avatars == nil {
		return nil, ErrAvatarStorageUnavailable
	}

	key := fmt.Sprintf("avatars/%d", userID)
	url, err := u.avatars.Upload(ctx, key, r, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := u.users.UpdateAvatarURL(ctx, userID, url); err != nil {
		return nil, fmt.Errorf("failed to update avatar url: %w", err)
	}

	return u.users.FindByID(ctx, userID)
}

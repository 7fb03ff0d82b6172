package dto

// TokenReq は/tokenエンドポイントのフォームエンコードされた認証リクエストを表します。
// OAuth2パスワードグラント互換のため、メールアドレスはusernameフィールドで送られます。
type TokenReq struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

package dto

// TokenResponse represents the response body for a successful /token request.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

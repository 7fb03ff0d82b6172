package dto

import "contacts_backend/internal/feature/auth/domain/entity"

// UserOut represents a user in API responses.
// It contains only the public-facing fields: the password hash never leaves the server.
type UserOut struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserOutFromEntity converts a domain entity to its API representation.
func UserOutFromEntity(u *entity.User) UserOut {
	return UserOut{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}
}

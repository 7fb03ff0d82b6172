// Package dto defines data transfer objects for the contacts HTTP API.
package dto

import (
	"time"

	"contacts_backend/internal/feature/contacts/domain/entity"
)

// birthdayLayout is the wire format for birthday dates.
const birthdayLayout = "2006-01-02"

// ContactReq represents the request body for creating or replacing a contact.
type ContactReq struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required,max=50"`
	Birthday  string `json:"birthday" binding:"omitempty,datetime=2006-01-02"`
	ExtraInfo string `json:"extra_info" binding:"omitempty,max=1024"`
}

// ToEntity converts the validated request into a domain entity owned by userID.
func (r ContactReq) ToEntity(userID uint) *entity.Contact {
	contact := &entity.Contact{
		UserID:    userID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		ExtraInfo: r.ExtraInfo,
	}
	if r.Birthday != "" {
		// Already validated by the datetime binding tag
		if b, err := time.Parse(birthdayLayout, r.Birthday); err == nil {
			contact.Birthday = &b
		}
	}
	return contact
}

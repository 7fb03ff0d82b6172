package dto

import "contacts_backend/internal/feature/contacts/domain/entity"

// ContactOut represents a contact in API responses.
type ContactOut struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday,omitempty"`
	ExtraInfo string `json:"extra_info,omitempty"`
}

// ContactOutFromEntity converts a domain entity to its API representation.
func ContactOutFromEntity(c *entity.Contact) ContactOut {
	out := ContactOut{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		ExtraInfo: c.ExtraInfo,
	}
	if c.Birthday != nil {
		out.Birthday = c.Birthday.Format(birthdayLayout)
	}
	return out
}

// ContactListFromEntities converts a slice of entities for list responses.
func ContactListFromEntities(contacts []entity.Contact) []ContactOut {
	out := make([]ContactOut, 0, len(contacts))
	for i := range contacts {
		out = append(out, ContactOutFromEntity(&contacts[i]))
	}
	return out
}

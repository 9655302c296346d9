package contact

import (
	"time"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// ContactResponse is the API view of a contact
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContactResponse builds the API view of a contact
func NewContactResponse(c *entities.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Role:      c.Role,
		CreatedAt: c.CreatedAt,
	}
}

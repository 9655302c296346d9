package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is a person tasks can be assigned to. The roster of contacts is
// what the extractor is allowed to assign against.
type Contact struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Name    string    `json:"name" gorm:"type:varchar(255);not null"`
	Email   string    `json:"email" gorm:"type:varchar(255)"`
	Role    string    `json:"role" gorm:"type:varchar(100)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact
func NewContact(ownerID uuid.UUID, name, email, role string) *Contact {
	return &Contact{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// FirstName returns the leading name token, used for informal transcript matching
func (c *Contact) FirstName() string {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

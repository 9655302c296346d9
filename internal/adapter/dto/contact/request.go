package contact

// CreateContactRequest is the payload for creating a contact
type CreateContactRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,max=100"`
}

// UpdateContactRequest is the payload for updating a contact
type UpdateContactRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,max=100"`
}

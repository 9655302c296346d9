package contact

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/notetrackhq/notetrack/errors"
	contactdto "github.com/notetrackhq/notetrack/internal/adapter/dto/contact"
	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

// Service manages the contact roster
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *contactdto.CreateContactRequest) (*entities.Contact, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Contact, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Contact, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, req *contactdto.UpdateContactRequest) (*entities.Contact, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

type service struct {
	contactRepo repositories.ContactRepository
}

// NewService creates the contact service
func NewService(contactRepo repositories.ContactRepository) Service {
	return &service{contactRepo: contactRepo}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req *contactdto.CreateContactRequest) (*entities.Contact, error) {
	c := entities.NewContact(ownerID, req.Name, req.Email, req.Role)
	if err := s.contactRepo.Create(ctx, c); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Contact, error) {
	c, err := s.contactRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if c == nil {
		return nil, apperrors.ErrContactNotFound(id.String())
	}
	return c, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Contact, error) {
	contacts, err := s.contactRepo.List(ctx, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return contacts, nil
}

func (s *service) Update(ctx context.Context, id, ownerID uuid.UUID, req *contactdto.UpdateContactRequest) (*entities.Contact, error) {
	c, err := s.contactRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if c == nil {
		return nil, apperrors.ErrContactNotFound(id.String())
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Role != nil {
		c.Role = *req.Role
	}

	if err := s.contactRepo.Update(ctx, c); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	c, err := s.contactRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return apperrors.ErrDBQuery(err)
	}
	if c == nil {
		return apperrors.ErrContactNotFound(id.String())
	}
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return apperrors.ErrDBQuery(err)
	}
	return nil
}

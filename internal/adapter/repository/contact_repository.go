package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) repositories.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Contact, error) {
	var contact entities.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*entities.Contact, error) {
	var contacts []*entities.Contact
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Contact{}).Error
}

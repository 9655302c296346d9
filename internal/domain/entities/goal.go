package entities

import (
	"time"

	"github.com/google/uuid"
)

// Goal types
const (
	GoalTypeYearly    = "yearly"
	GoalTypeQuarterly = "quarterly"
)

// Goal is a yearly or quarterly objective tasks can roll up to.
// A quarterly goal may point at a yearly parent.
type Goal struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID  `json:"owner_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	Description string     `json:"description" gorm:"type:text"`
	Type        string     `json:"type" gorm:"type:varchar(20);not null"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid"`

	Parent     *Goal      `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Categories []Category `json:"categories,omitempty" gorm:"foreignKey:GoalID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Goal) TableName() string {
	return "goals"
}

// NewGoal creates a new goal
func NewGoal(ownerID uuid.UUID, title, description, goalType string, parentID *uuid.UUID) *Goal {
	return &Goal{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Type:        goalType,
		ParentID:    parentID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// Category is a workstream grouping under a goal.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	GoalID      uuid.UUID `json:"goal_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category under a goal
func NewCategory(ownerID, goalID uuid.UUID, name, description string) *Category {
	return &Category{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		GoalID:      goalID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

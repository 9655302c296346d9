package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting represents a captured meeting: a title plus either a free-form
// transcript or a recording URL that gets transcribed in the background.
// Processed/ProcessedAt are mutated only by the extraction pipeline.
type Meeting struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID      uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Title        string    `json:"title" gorm:"type:varchar(255);not null"`
	Transcript   string    `json:"transcript" gorm:"type:text"`
	RecordingURL *string   `json:"recording_url,omitempty" gorm:"type:text"`
	// RecordingObject is the object-store key of an uploaded recording.
	// Transcription presigns a fresh URL from it per run, so RecordingURL
	// expiring does not strand a reprocess.
	RecordingObject *string           `json:"-" gorm:"type:text"`
	Metadata        datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	Processed       bool              `json:"processed" gorm:"not null;default:false"`
	ProcessedAt     *time.Time        `json:"processed_at,omitempty" gorm:"type:timestamp"`

	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:MeetingID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new unprocessed meeting
func NewMeeting(ownerID uuid.UUID, title, transcript string) *Meeting {
	return &Meeting{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      title,
		Transcript: transcript,
		Processed:  false,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// HasSource reports whether the meeting has anything to extract from
func (m *Meeting) HasSource() bool {
	return m.Transcript != "" ||
		(m.RecordingURL != nil && *m.RecordingURL != "") ||
		(m.RecordingObject != nil && *m.RecordingObject != "")
}

// MarkProcessed flips the processed flag after a successful run
func (m *Meeting) MarkProcessed(at time.Time) {
	m.Processed = true
	m.ProcessedAt = &at
	m.UpdatedAt = at
}

// ResetProcessed returns the meeting to its unprocessed state
func (m *Meeting) ResetProcessed() {
	m.Processed = false
	m.ProcessedAt = nil
	m.UpdatedAt = time.Now()
}

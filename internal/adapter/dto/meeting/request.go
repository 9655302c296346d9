package meeting

// CreateMeetingRequest is the payload for creating a meeting from notes.
// Either transcript or recording_url must be present; the handler enforces
// the at-least-one rule since validator tags cannot express it.
type CreateMeetingRequest struct {
	Title        string                 `json:"title" validate:"required,min=1,max=255"`
	Transcript   string                 `json:"transcript" validate:"omitempty,min=1"`
	RecordingURL string                 `json:"recording_url" validate:"omitempty,url"`
	Metadata     map[string]interface{} `json:"metadata" validate:"omitempty"`
}

// ListMeetingsRequest carries listing filters from query params
type ListMeetingsRequest struct {
	Processed *bool `query:"processed"`
	Limit     int   `query:"limit" validate:"omitempty,min=1,max=200"`
	Offset    int   `query:"offset" validate:"omitempty,min=0"`
}

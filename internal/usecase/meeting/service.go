package meeting

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/notetrackhq/notetrack/errors"
	meetingdto "github.com/notetrackhq/notetrack/internal/adapter/dto/meeting"
	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
	"github.com/notetrackhq/notetrack/internal/usecase/extraction"
)

// AudioStore is the slice of object storage the meeting service uses for
// uploaded recordings.
type AudioStore interface {
	UploadRecording(ctx context.Context, meetingID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
	RecordingURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	DeleteRecording(ctx context.Context, objectName string) error
}

// Service manages meetings and hands them to the extraction pipeline
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *meetingdto.CreateMeetingRequest) (*entities.Meeting, error)
	Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Meeting, *entities.ExtractionRun, error)
	List(ctx context.Context, ownerID uuid.UUID, filter repositories.MeetingFilter) ([]*entities.Meeting, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	Reprocess(ctx context.Context, id, ownerID uuid.UUID) error
	AttachRecording(ctx context.Context, id, ownerID uuid.UUID, reader io.Reader, size int64, contentType string) (*entities.Meeting, error)
}

type service struct {
	meetingRepo    repositories.MeetingRepository
	extractionRepo repositories.ExtractionRepository
	taskRepo       repositories.TaskRepository
	pipeline       extraction.Service
	audioStore     AudioStore
	logger         *zap.Logger
}

// NewService creates the meeting service. audioStore may be nil when
// object storage is not configured; recording uploads then fail cleanly.
func NewService(
	meetingRepo repositories.MeetingRepository,
	extractionRepo repositories.ExtractionRepository,
	taskRepo repositories.TaskRepository,
	pipeline extraction.Service,
	audioStore AudioStore,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		meetingRepo:    meetingRepo,
		extractionRepo: extractionRepo,
		taskRepo:       taskRepo,
		pipeline:       pipeline,
		audioStore:     audioStore,
		logger:         logger,
	}
}

// Create stores the meeting and queues its first extraction run. The
// meeting is returned unprocessed; extraction happens in the background.
func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req *meetingdto.CreateMeetingRequest) (*entities.Meeting, error) {
	if req.Transcript == "" && req.RecordingURL == "" {
		return nil, apperrors.ErrMeetingEmptySource()
	}

	m := entities.NewMeeting(ownerID, req.Title, req.Transcript)
	if req.RecordingURL != "" {
		m.RecordingURL = &req.RecordingURL
	}
	if len(req.Metadata) > 0 {
		m.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.meetingRepo.Create(ctx, m); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}

	if err := s.enqueueRun(ctx, m, nil); err != nil {
		// The meeting exists; the user can reprocess once the queue drains.
		s.logger.Warn("failed to queue initial extraction",
			zap.String("meeting_id", m.ID.String()),
			zap.Error(err),
		)
	}
	return m, nil
}

func (s *service) Get(ctx context.Context, id, ownerID uuid.UUID) (*entities.Meeting, *entities.ExtractionRun, error) {
	m, err := s.meetingRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, nil, apperrors.ErrDBQuery(err)
	}
	if m == nil {
		return nil, nil, apperrors.ErrMeetingNotFound(id.String())
	}

	tasks, err := s.taskRepo.List(ctx, ownerID, repositories.TaskFilter{MeetingID: &m.ID})
	if err != nil {
		return nil, nil, apperrors.ErrDBQuery(err)
	}
	m.Tasks = make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		m.Tasks = append(m.Tasks, *t)
	}

	run, err := s.extractionRepo.LatestRunForMeeting(ctx, m.ID)
	if err != nil {
		return nil, nil, apperrors.ErrDBQuery(err)
	}
	return m, run, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, filter repositories.MeetingFilter) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	return meetings, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	m, err := s.meetingRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return apperrors.ErrDBQuery(err)
	}
	if m == nil {
		return apperrors.ErrMeetingNotFound(id.String())
	}
	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return apperrors.ErrDBQuery(err)
	}
	if m.RecordingObject != nil && *m.RecordingObject != "" && s.audioStore != nil {
		// Best effort: an orphaned object costs storage, not correctness.
		if err := s.audioStore.DeleteRecording(ctx, *m.RecordingObject); err != nil {
			s.logger.Warn("failed to delete stored recording",
				zap.String("meeting_id", m.ID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Reprocess queues a fresh extraction run that supersedes the previous
// one. Existing extracted tasks stay visible until the new run commits.
func (s *service) Reprocess(ctx context.Context, id, ownerID uuid.UUID) error {
	m, err := s.meetingRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return apperrors.ErrDBQuery(err)
	}
	if m == nil {
		return apperrors.ErrMeetingNotFound(id.String())
	}
	if !m.HasSource() {
		return apperrors.ErrMeetingEmptySource()
	}

	var supersedes *uuid.UUID
	prev, err := s.extractionRepo.LatestRunForMeeting(ctx, m.ID)
	if err != nil {
		return apperrors.ErrDBQuery(err)
	}
	if prev != nil {
		supersedes = &prev.ID
	}

	// Flip processed off right away so clients see the meeting as pending
	// again; the swap transaction sets it back once the new run commits.
	m.ResetProcessed()
	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return apperrors.ErrDBQuery(err)
	}
	return s.enqueueRun(ctx, m, supersedes)
}

// AttachRecording uploads audio for a transcript-less meeting and queues
// extraction once the recording URL is known.
func (s *service) AttachRecording(ctx context.Context, id, ownerID uuid.UUID, reader io.Reader, size int64, contentType string) (*entities.Meeting, error) {
	if s.audioStore == nil {
		return nil, apperrors.ErrInvalidAudio("audio storage is not configured")
	}

	m, err := s.meetingRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}
	if m == nil {
		return nil, apperrors.ErrMeetingNotFound(id.String())
	}

	objectName, err := s.audioStore.UploadRecording(ctx, m.ID, reader, size, contentType)
	if err != nil {
		return nil, apperrors.ErrMeetingUploadFailed(err)
	}

	// The object name is what transcription works from; the URL here is
	// informational for clients and may expire.
	recordingURL, err := s.audioStore.RecordingURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	m.RecordingObject = &objectName
	m.RecordingURL = &recordingURL
	m.ResetProcessed()
	if err := s.meetingRepo.Update(ctx, m); err != nil {
		return nil, apperrors.ErrDBQuery(err)
	}

	if err := s.enqueueRun(ctx, m, nil); err != nil {
		s.logger.Warn("failed to queue extraction after upload",
			zap.String("meeting_id", m.ID.String()),
			zap.Error(err),
		)
	}
	return m, nil
}

func (s *service) enqueueRun(ctx context.Context, m *entities.Meeting, supersedes *uuid.UUID) error {
	run := entities.NewExtractionRun(m.ID, m.OwnerID, supersedes)
	if err := s.extractionRepo.CreateRun(ctx, run); err != nil {
		return apperrors.ErrDBQuery(err)
	}
	return s.pipeline.EnqueueRun(ctx, run.ID)
}

package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/notetrackhq/notetrack/errors"
	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
	"github.com/notetrackhq/notetrack/internal/infrastructure/cache"
	"github.com/notetrackhq/notetrack/internal/infrastructure/external"
	"github.com/notetrackhq/notetrack/pkg/jobcontext"
)

// Service runs extraction pipelines in the background. Runs are queued and
// picked up by a fixed pool of workers; a full queue is reported to the
// caller instead of blocking the request.
type Service interface {
	EnqueueRun(ctx context.Context, runID uuid.UUID) error
	StartWorkerPool()
	StopWorkerPool()
}

// RecordingStore resolves a stored recording object into a URL the
// transcription service can fetch. Resolved per run so reprocessing an old
// meeting never works from an expired link.
type RecordingStore interface {
	RecordingURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Options bundles the tunables for the pipeline
type Options struct {
	WorkerCount int
	QueueSize   int
	RunTimeout  time.Duration
	LockTTL     time.Duration
}

type service struct {
	extractionRepo repositories.ExtractionRepository
	meetingRepo    repositories.MeetingRepository
	goalRepo       repositories.GoalRepository
	contactRepo    repositories.ContactRepository

	resolver    *ContextResolver
	extractor   *TaskExtractor
	transcriber external.Transcriber
	recordings  RecordingStore
	locker      cache.MeetingLocker

	opts   Options
	logger *zap.Logger

	queue    chan uuid.UUID
	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewService creates the extraction service. transcriber may be nil when
// audio support is not configured; runs on recording-only meetings then
// fail with an explicit error.
func NewService(
	extractionRepo repositories.ExtractionRepository,
	meetingRepo repositories.MeetingRepository,
	goalRepo repositories.GoalRepository,
	contactRepo repositories.ContactRepository,
	resolver *ContextResolver,
	extractor *TaskExtractor,
	transcriber external.Transcriber,
	recordings RecordingStore,
	locker cache.MeetingLocker,
	opts Options,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.WorkerCount < 1 {
		opts.WorkerCount = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	if opts.RunTimeout <= 0 {
		opts.RunTimeout = 5 * time.Minute
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 10 * time.Minute
	}
	return &service{
		extractionRepo: extractionRepo,
		meetingRepo:    meetingRepo,
		goalRepo:       goalRepo,
		contactRepo:    contactRepo,
		resolver:       resolver,
		extractor:      extractor,
		transcriber:    transcriber,
		recordings:     recordings,
		locker:         locker,
		opts:           opts,
		logger:         logger,
		queue:          make(chan uuid.UUID, opts.QueueSize),
		stopChan:       make(chan struct{}),
	}
}

// EnqueueRun hands a pending run to the worker pool without blocking
func (s *service) EnqueueRun(_ context.Context, runID uuid.UUID) error {
	select {
	case s.queue <- runID:
		s.logger.Info("extraction run queued", zap.String("run_id", runID.String()))
		return nil
	default:
		s.logger.Warn("extraction queue full", zap.String("run_id", runID.String()))
		return apperrors.ErrExtractionQueueFull()
	}
}

// StartWorkerPool launches the background workers
func (s *service) StartWorkerPool() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	s.logger.Info("starting extraction workers", zap.Int("count", s.opts.WorkerCount))
	for i := 0; i < s.opts.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

// StopWorkerPool signals the workers and waits for in-flight runs to finish
func (s *service) StopWorkerPool() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()
	s.logger.Info("extraction workers stopped")
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopChan:
			return
		case runID := <-s.queue:
			s.processRun(id, runID)
		}
	}
}

func (s *service) processRun(workerID int, runID uuid.UUID) {
	logger := s.logger.With(
		zap.Int("worker_id", workerID),
		zap.String("run_id", runID.String()),
	)

	claimCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	claimed, err := s.extractionRepo.ClaimRun(claimCtx, runID)
	cancel()
	if err != nil {
		logger.Error("failed to claim run", zap.Error(err))
		return
	}
	if !claimed {
		logger.Info("run already claimed, skipping")
		return
	}

	ctx, cancel := jobcontext.RunBegin(context.Background(), runID, uuid.Nil, workerID, s.opts.RunTimeout)
	defer cancel()

	err = jobcontext.RunExec(ctx, func(ctx context.Context) error {
		return s.execute(ctx, runID, logger)
	})
	if err != nil {
		logger.Error("extraction run failed", zap.Error(err))
		s.failRun(runID, err)
	}
}

// execute runs the pipeline for a claimed run. Any returned error moves
// the run to failed; the meeting's existing tasks are left untouched.
func (s *service) execute(ctx context.Context, runID uuid.UUID, logger *zap.Logger) error {
	run, err := s.extractionRepo.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("load run: %w", err)
	}
	if run == nil {
		return entities.ErrRunNotFound
	}

	meeting, err := s.meetingRepo.GetByID(ctx, run.MeetingID)
	if err != nil {
		return fmt.Errorf("load meeting: %w", err)
	}
	if meeting == nil {
		return entities.ErrMeetingNotFound
	}

	acquired, err := s.locker.Acquire(ctx, meeting.ID, s.opts.LockTTL)
	if err != nil {
		return fmt.Errorf("acquire meeting lock: %w", err)
	}
	if !acquired {
		return fmt.Errorf("meeting %s is already being processed", meeting.ID)
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.locker.Release(releaseCtx, meeting.ID); err != nil {
			logger.Warn("failed to release meeting lock", zap.Error(err))
		}
	}()

	transcript := meeting.Transcript
	if transcript == "" {
		transcript, err = s.transcribe(ctx, meeting)
		if err != nil {
			return err
		}
		meeting.Transcript = transcript
		if err := s.meetingRepo.Update(ctx, meeting); err != nil {
			return fmt.Errorf("save transcript: %w", err)
		}
		logger.Info("recording transcribed", zap.Int("chars", len(transcript)))
	}

	goals, err := s.goalRepo.List(ctx, meeting.OwnerID)
	if err != nil {
		return fmt.Errorf("load goals: %w", err)
	}
	categories, err := s.goalRepo.ListCategories(ctx, meeting.OwnerID, nil)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	roster, err := s.contactRepo.List(ctx, meeting.OwnerID)
	if err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}

	resolved, err := s.resolver.Resolve(ctx, transcript, goals, categories)
	if err != nil {
		return fmt.Errorf("resolve context: %w", err)
	}
	logger.Info("context resolved",
		zap.String("label", resolved.Label),
		zap.Bool("has_goal", resolved.GoalID != nil),
		zap.Bool("has_category", resolved.CategoryID != nil),
	)

	drafts, err := s.extractor.Extract(ctx, transcript, resolved.Label, roster, time.Now())
	if err != nil {
		return err
	}
	logger.Info("tasks extracted", zap.Int("count", len(drafts)))

	run.MarkPersisting(resolved.Label, resolved.GoalID, resolved.CategoryID)
	if err := s.extractionRepo.UpdateRun(ctx, run); err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	tasks := make([]repositories.ExtractedTask, 0, len(drafts))
	for _, draft := range drafts {
		task := entities.NewExtractedTask(meeting.OwnerID, meeting.ID, run.ID, draft.Title, draft.Description, draft.Priority)
		task.Deadline = draft.Deadline
		task.GoalID = resolved.GoalID
		task.CategoryID = resolved.CategoryID
		if len(draft.SourceExcerpts) > 0 {
			if excerpts, err := json.Marshal(draft.SourceExcerpts); err == nil {
				task.SourceExcerpts = excerpts
			}
		}
		tasks = append(tasks, repositories.ExtractedTask{
			Task:      task,
			Assignees: draft.Assignees,
		})
	}

	if err := s.extractionRepo.PersistResults(ctx, run, meeting, tasks); err != nil {
		return fmt.Errorf("persist results: %w", err)
	}

	logger.Info("extraction run completed", zap.Int("task_count", len(tasks)))
	return nil
}

func (s *service) transcribe(ctx context.Context, meeting *entities.Meeting) (string, error) {
	hasObject := meeting.RecordingObject != nil && *meeting.RecordingObject != ""
	hasURL := meeting.RecordingURL != nil && *meeting.RecordingURL != ""
	if !hasObject && !hasURL {
		return "", entities.ErrEmptySource
	}
	if s.transcriber == nil {
		return "", fmt.Errorf("transcription is not configured")
	}

	audioURL := ""
	if hasObject {
		if s.recordings == nil {
			return "", fmt.Errorf("recording storage is not configured")
		}
		presigned, err := s.recordings.RecordingURL(ctx, *meeting.RecordingObject, time.Hour)
		if err != nil {
			return "", fmt.Errorf("resolve recording url: %w", err)
		}
		audioURL = presigned
	} else {
		audioURL = *meeting.RecordingURL
	}
	return s.transcriber.TranscribeURL(ctx, audioURL)
}

// failRun records the failure on the run record with a fresh context, since
// the run's own context may already be cancelled.
func (s *service) failRun(runID uuid.UUID, runErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	run, err := s.extractionRepo.GetRun(ctx, runID)
	if err != nil || run == nil {
		s.logger.Error("failed to load run for failure update", zap.Error(err))
		return
	}
	run.MarkFailed(runErr.Error())
	if err := s.extractionRepo.UpdateRun(ctx, run); err != nil {
		s.logger.Error("failed to mark run failed", zap.Error(err))
	}
}

package extraction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/notetrackhq/notetrack/errors"
	"github.com/notetrackhq/notetrack/internal/domain/entities"
	"github.com/notetrackhq/notetrack/internal/domain/repositories"
)

// ---- in-memory fakes ----

type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (f *fakeMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.meetings[m.ID] = &cp
	return nil
}

func (f *fakeMeetingRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meetings[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMeetingRepo) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*entities.Meeting, error) {
	m, err := f.GetByID(ctx, id)
	if err != nil || m == nil || m.OwnerID != ownerID {
		return nil, err
	}
	return m, nil
}

func (f *fakeMeetingRepo) List(_ context.Context, ownerID uuid.UUID, _ repositories.MeetingFilter) ([]*entities.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Meeting
	for _, m := range f.meetings {
		if m.OwnerID == ownerID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) Update(_ context.Context, m *entities.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.meetings[m.ID] = &cp
	return nil
}

func (f *fakeMeetingRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.meetings, id)
	return nil
}

type fakeExtractionRepo struct {
	mu    sync.Mutex
	runs  map[uuid.UUID]*entities.ExtractionRun
	tasks map[uuid.UUID]*entities.Task

	meetings *fakeMeetingRepo
}

func newFakeExtractionRepo(meetings *fakeMeetingRepo) *fakeExtractionRepo {
	return &fakeExtractionRepo{
		runs:     make(map[uuid.UUID]*entities.ExtractionRun),
		tasks:    make(map[uuid.UUID]*entities.Task),
		meetings: meetings,
	}
}

func (f *fakeExtractionRepo) CreateRun(_ context.Context, run *entities.ExtractionRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *run
	f.runs[run.ID] = &cp
	return nil
}

func (f *fakeExtractionRepo) GetRun(_ context.Context, id uuid.UUID) (*entities.ExtractionRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[id]
	if !ok {
		return nil, nil
	}
	cp := *run
	return &cp, nil
}

func (f *fakeExtractionRepo) ClaimRun(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[id]
	if !ok || run.Status != entities.RunStatusPending {
		return false, nil
	}
	run.MarkExtracting()
	return true, nil
}

func (f *fakeExtractionRepo) UpdateRun(_ context.Context, run *entities.ExtractionRun) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *run
	f.runs[run.ID] = &cp
	return nil
}

func (f *fakeExtractionRepo) LatestRunForMeeting(_ context.Context, meetingID uuid.UUID) (*entities.ExtractionRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entities.ExtractionRun
	for _, run := range f.runs {
		if run.MeetingID != meetingID {
			continue
		}
		if latest == nil || run.CreatedAt.After(latest.CreatedAt) {
			latest = run
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeExtractionRepo) PersistResults(ctx context.Context, run *entities.ExtractionRun, meeting *entities.Meeting, tasks []repositories.ExtractedTask) error {
	f.mu.Lock()
	for id, t := range f.tasks {
		if t.MeetingID != nil && *t.MeetingID == meeting.ID && t.AIExtracted {
			delete(f.tasks, id)
		}
	}
	for _, et := range tasks {
		cp := *et.Task
		for _, c := range et.Assignees {
			cp.Assignees = append(cp.Assignees, *c)
		}
		f.tasks[cp.ID] = &cp
	}
	f.mu.Unlock()

	meeting.MarkProcessed(time.Now())
	if err := f.meetings.Update(ctx, meeting); err != nil {
		return err
	}
	run.MarkDone(len(tasks))
	return f.UpdateRun(ctx, run)
}

func (f *fakeExtractionRepo) tasksForMeeting(meetingID uuid.UUID) []*entities.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Task
	for _, t := range f.tasks {
		if t.MeetingID != nil && *t.MeetingID == meetingID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out
}

func (f *fakeExtractionRepo) addTask(t *entities.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[t.ID] = t
}

type fakeGoalRepo struct {
	goals      []*entities.Goal
	categories []*entities.Category
}

func (f *fakeGoalRepo) Create(context.Context, *entities.Goal) error { return nil }
func (f *fakeGoalRepo) GetOwned(context.Context, uuid.UUID, uuid.UUID) (*entities.Goal, error) {
	return nil, nil
}
func (f *fakeGoalRepo) List(context.Context, uuid.UUID) ([]*entities.Goal, error) {
	return f.goals, nil
}
func (f *fakeGoalRepo) Update(context.Context, *entities.Goal) error { return nil }
func (f *fakeGoalRepo) Delete(context.Context, uuid.UUID) error      { return nil }
func (f *fakeGoalRepo) CreateCategory(context.Context, *entities.Category) error {
	return nil
}
func (f *fakeGoalRepo) GetCategoryOwned(context.Context, uuid.UUID, uuid.UUID) (*entities.Category, error) {
	return nil, nil
}
func (f *fakeGoalRepo) ListCategories(context.Context, uuid.UUID, *uuid.UUID) ([]*entities.Category, error) {
	return f.categories, nil
}
func (f *fakeGoalRepo) UpdateCategory(context.Context, *entities.Category) error { return nil }
func (f *fakeGoalRepo) DeleteCategory(context.Context, uuid.UUID) error          { return nil }

type fakeContactRepo struct {
	contacts []*entities.Contact
}

func (f *fakeContactRepo) Create(context.Context, *entities.Contact) error { return nil }
func (f *fakeContactRepo) GetOwned(context.Context, uuid.UUID, uuid.UUID) (*entities.Contact, error) {
	return nil, nil
}
func (f *fakeContactRepo) List(context.Context, uuid.UUID) ([]*entities.Contact, error) {
	return f.contacts, nil
}
func (f *fakeContactRepo) Update(context.Context, *entities.Contact) error { return nil }
func (f *fakeContactRepo) Delete(context.Context, uuid.UUID) error         { return nil }

type fakeLocker struct {
	mu   sync.Mutex
	held map[uuid.UUID]bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[uuid.UUID]bool)}
}

func (f *fakeLocker) Acquire(_ context.Context, id uuid.UUID, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held[id] {
		return false, nil
	}
	f.held[id] = true
	return true, nil
}

func (f *fakeLocker) Release(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, id)
	return nil
}

// sequenceGateway returns responses in order: first call gets the resolver
// answer, second the extractor answer.
type sequenceGateway struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
}

func (s *sequenceGateway) CompleteJSON(context.Context, string, string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "{}", nil
}

// ---- harness ----

type pipelineFixture struct {
	service     Service
	meetingRepo *fakeMeetingRepo
	extraction  *fakeExtractionRepo
	locker      *fakeLocker
}

func newPipelineFixture(t *testing.T, gw Gateway, contacts []*entities.Contact, goals []*entities.Goal) *pipelineFixture {
	t.Helper()
	meetingRepo := newFakeMeetingRepo()
	extractionRepo := newFakeExtractionRepo(meetingRepo)
	locker := newFakeLocker()

	svc := NewService(
		extractionRepo, meetingRepo,
		&fakeGoalRepo{goals: goals}, &fakeContactRepo{contacts: contacts},
		NewContextResolver(gw, 8000, nil),
		NewTaskExtractor(gw, nil),
		nil, nil, locker,
		Options{WorkerCount: 2, QueueSize: 4, RunTimeout: 5 * time.Second, LockTTL: time.Minute},
		nil,
	)
	svc.StartWorkerPool()
	t.Cleanup(svc.StopWorkerPool)

	return &pipelineFixture{
		service:     svc,
		meetingRepo: meetingRepo,
		extraction:  extractionRepo,
		locker:      locker,
	}
}

func (fx *pipelineFixture) queueMeeting(t *testing.T, transcript string) (*entities.Meeting, *entities.ExtractionRun) {
	t.Helper()
	m := entities.NewMeeting(uuid.New(), "weekly sync", transcript)
	if err := fx.meetingRepo.Create(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	run := entities.NewExtractionRun(m.ID, m.OwnerID, nil)
	if err := fx.extraction.CreateRun(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	if err := fx.service.EnqueueRun(context.Background(), run.ID); err != nil {
		t.Fatal(err)
	}
	return m, run
}

func (fx *pipelineFixture) waitForRun(t *testing.T, runID uuid.UUID) *entities.ExtractionRun {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		run, err := fx.extraction.GetRun(context.Background(), runID)
		if err != nil {
			t.Fatal(err)
		}
		if run != nil && run.IsTerminal() {
			return run
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("run did not reach a terminal state")
	return nil
}

// ---- tests ----

func TestPipelineRunProducesTasks(t *testing.T) {
	maria := testContact("Maria Lopez", "PM")
	goal := entities.NewGoal(uuid.New(), "Product launch", "", entities.GoalTypeQuarterly, nil)
	gw := &sequenceGateway{responses: []string{
		fmt.Sprintf(`{"goal_id": %q, "category_id": null}`, goal.ID),
		`{"tasks": [
			{"title": "Send the board deck", "priority": "high", "deadline": "friday", "assignees": ["Maria"]},
			{"title": "Schedule user interviews", "priority": "low"}
		]}`,
	}}
	fx := newPipelineFixture(t, gw, []*entities.Contact{maria}, []*entities.Goal{goal})

	m, run := fx.queueMeeting(t, "transcript with commitments")
	done := fx.waitForRun(t, run.ID)

	if done.Status != entities.RunStatusDone {
		t.Fatalf("run status = %s (%s), want done", done.Status, done.LastError)
	}
	if done.TaskCount != 2 {
		t.Errorf("task_count = %d, want 2", done.TaskCount)
	}
	if done.ContextLabel != "Product launch" || done.GoalID == nil || *done.GoalID != goal.ID {
		t.Errorf("run did not record the resolved context: label=%q goal=%v", done.ContextLabel, done.GoalID)
	}

	updated, _ := fx.meetingRepo.GetByID(context.Background(), m.ID)
	if !updated.Processed || updated.ProcessedAt == nil {
		t.Error("meeting should be marked processed")
	}

	tasks := fx.extraction.tasksForMeeting(m.ID)
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if !task.AIExtracted {
			t.Error("extracted task missing ai_extracted flag")
		}
		if task.ExtractionRunID == nil || *task.ExtractionRunID != run.ID {
			t.Error("extracted task not linked to its run")
		}
		if task.OwnerID != m.OwnerID {
			t.Error("extracted task has wrong owner")
		}
		if task.GoalID == nil || *task.GoalID != goal.ID {
			t.Error("extracted task not linked to the resolved goal")
		}
	}
}

func TestPipelineSwapReplacesOnlyExtractedTasks(t *testing.T) {
	gw := &sequenceGateway{responses: []string{
		`{"goal_id": null, "category_id": null}`,
		`{"tasks": [{"title": "Follow up with legal team"}]}`,
	}}
	fx := newPipelineFixture(t, gw, nil, []*entities.Goal{testGoal("Grow revenue")})

	m, run := fx.queueMeeting(t, "transcript")

	// A manual task and a stale extracted task from an earlier run.
	manual := entities.NewTask(m.OwnerID, "Hand-written task", "", "")
	manual.MeetingID = &m.ID
	fx.extraction.addTask(manual)

	oldRunID := uuid.New()
	stale := entities.NewExtractedTask(m.OwnerID, m.ID, oldRunID, "Old extracted task", "", "")
	fx.extraction.addTask(stale)

	done := fx.waitForRun(t, run.ID)
	if done.Status != entities.RunStatusDone {
		t.Fatalf("run status = %s (%s)", done.Status, done.LastError)
	}

	tasks := fx.extraction.tasksForMeeting(m.ID)
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want manual + fresh", len(tasks))
	}
	var sawManual, sawFresh bool
	for _, task := range tasks {
		switch task.Title {
		case "Hand-written task":
			sawManual = true
		case "Follow up with legal team":
			sawFresh = true
		case "Old extracted task":
			t.Error("stale extracted task survived the swap")
		}
	}
	if !sawManual {
		t.Error("manual task was removed by the swap")
	}
	if !sawFresh {
		t.Error("fresh extracted task is missing")
	}
}

func TestPipelineResolverFailureFallsBackToGeneral(t *testing.T) {
	gw := &sequenceGateway{
		responses: []string{"", `{"tasks": [{"title": "Send the Q3 report"}]}`},
		errs:      []error{errors.New("gateway timeout")},
	}
	fx := newPipelineFixture(t, gw, nil, []*entities.Goal{testGoal("Grow revenue")})

	m, run := fx.queueMeeting(t, "Alice, please send the Q3 report by Friday.")
	done := fx.waitForRun(t, run.ID)

	if done.Status != entities.RunStatusDone {
		t.Fatalf("run status = %s (%s), want done despite resolver failure", done.Status, done.LastError)
	}
	if done.ContextLabel != "General" || done.GoalID != nil || done.CategoryID != nil {
		t.Errorf("resolver failure should degrade to General, got %+v", done)
	}
	if done.TaskCount != 1 {
		t.Errorf("task_count = %d, want 1", done.TaskCount)
	}
	updated, _ := fx.meetingRepo.GetByID(context.Background(), m.ID)
	if !updated.Processed {
		t.Error("meeting should still be marked processed")
	}
}

func TestPipelineFailureLeavesMeetingUntouched(t *testing.T) {
	gw := &sequenceGateway{
		responses: []string{`{"goal_id": null, "category_id": null}`},
		errs:      []error{nil, errors.New("model unavailable")},
	}
	fx := newPipelineFixture(t, gw, nil, []*entities.Goal{testGoal("Grow revenue")})

	m, run := fx.queueMeeting(t, "transcript")

	stale := entities.NewExtractedTask(m.OwnerID, m.ID, uuid.New(), "Existing task", "", "")
	fx.extraction.addTask(stale)

	done := fx.waitForRun(t, run.ID)
	if done.Status != entities.RunStatusFailed {
		t.Fatalf("run status = %s, want failed", done.Status)
	}
	if done.LastError == "" {
		t.Error("failed run should record the error")
	}

	updated, _ := fx.meetingRepo.GetByID(context.Background(), m.ID)
	if updated.Processed {
		t.Error("failed run must not mark the meeting processed")
	}
	if len(fx.extraction.tasksForMeeting(m.ID)) != 1 {
		t.Error("failed run must not touch existing tasks")
	}

	held := fx.locker.held[m.ID]
	if held {
		t.Error("meeting lock was not released after failure")
	}
}

func TestPipelineEmptySourceFailsRun(t *testing.T) {
	gw := &sequenceGateway{}
	fx := newPipelineFixture(t, gw, nil, nil)

	m, run := fx.queueMeeting(t, "")
	done := fx.waitForRun(t, run.ID)

	if done.Status != entities.RunStatusFailed {
		t.Fatalf("run status = %s, want failed", done.Status)
	}
	updated, _ := fx.meetingRepo.GetByID(context.Background(), m.ID)
	if updated.Processed {
		t.Error("meeting without a source must stay unprocessed")
	}
}

func TestPipelineNoActionItems(t *testing.T) {
	gw := &sequenceGateway{responses: []string{
		`{"goal_id": null, "category_id": null}`,
		`{"tasks": []}`,
	}}
	fx := newPipelineFixture(t, gw, nil, []*entities.Goal{testGoal("Grow revenue")})

	m, run := fx.queueMeeting(t, "purely informational meeting")
	done := fx.waitForRun(t, run.ID)

	if done.Status != entities.RunStatusDone {
		t.Fatalf("run status = %s (%s), want done", done.Status, done.LastError)
	}
	if done.TaskCount != 0 {
		t.Errorf("task_count = %d, want 0", done.TaskCount)
	}
	updated, _ := fx.meetingRepo.GetByID(context.Background(), m.ID)
	if !updated.Processed {
		t.Error("a meeting with no action items still counts as processed")
	}
}

func TestEnqueueRunQueueFull(t *testing.T) {
	gw := &sequenceGateway{}
	meetingRepo := newFakeMeetingRepo()
	extractionRepo := newFakeExtractionRepo(meetingRepo)

	// Workers never started, so the queue only drains by capacity.
	svc := NewService(
		extractionRepo, meetingRepo,
		&fakeGoalRepo{}, &fakeContactRepo{},
		NewContextResolver(gw, 8000, nil),
		NewTaskExtractor(gw, nil),
		nil, nil, newFakeLocker(),
		Options{WorkerCount: 1, QueueSize: 1, RunTimeout: time.Second, LockTTL: time.Minute},
		nil,
	)

	if err := svc.EnqueueRun(context.Background(), uuid.New()); err != nil {
		t.Fatalf("first enqueue should fit: %v", err)
	}

	err := svc.EnqueueRun(context.Background(), uuid.New())
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_MEETING_QUEUE_FULL {
		t.Errorf("got %v, want queue-full error", err)
	}
}

func TestClaimedRunIsNotProcessedTwice(t *testing.T) {
	gw := &sequenceGateway{responses: []string{
		`{"goal_id": null, "category_id": null}`,
		`{"tasks": []}`,
	}}
	fx := newPipelineFixture(t, gw, nil, []*entities.Goal{testGoal("Grow revenue")})

	_, run := fx.queueMeeting(t, "transcript")
	fx.waitForRun(t, run.ID)

	// Re-enqueueing a finished run is a no-op: the claim fails.
	if err := fx.service.EnqueueRun(context.Background(), run.ID); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)

	gw.mu.Lock()
	calls := gw.calls
	gw.mu.Unlock()
	if calls != 2 {
		t.Errorf("model called %d times, want 2 (no reprocessing of a claimed run)", calls)
	}
}

type fakeRecordingStore struct {
	mu      sync.Mutex
	url     string
	objects []string
}

func (f *fakeRecordingStore) RecordingURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects = append(f.objects, objectName)
	return f.url, nil
}

type fakeTranscriber struct {
	mu         sync.Mutex
	transcript string
	urls       []string
}

func (f *fakeTranscriber) TranscribeURL(_ context.Context, audioURL string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, audioURL)
	return f.transcript, nil
}

func TestPipelineResolvesRecordingURLPerRun(t *testing.T) {
	gw := &sequenceGateway{responses: []string{
		`{"goal_id": null, "category_id": null}`,
		`{"tasks": [{"title": "Follow up with the vendor"}]}`,
	}}
	recordings := &fakeRecordingStore{url: "https://store.example/fresh-link"}
	transcriber := &fakeTranscriber{transcript: "We agreed to follow up with the vendor."}

	meetingRepo := newFakeMeetingRepo()
	extractionRepo := newFakeExtractionRepo(meetingRepo)
	svc := NewService(
		extractionRepo, meetingRepo,
		&fakeGoalRepo{goals: []*entities.Goal{testGoal("Grow revenue")}}, &fakeContactRepo{},
		NewContextResolver(gw, 8000, nil),
		NewTaskExtractor(gw, nil),
		transcriber, recordings, newFakeLocker(),
		Options{WorkerCount: 1, QueueSize: 4, RunTimeout: 5 * time.Second, LockTTL: time.Minute},
		nil,
	)
	svc.StartWorkerPool()
	t.Cleanup(svc.StopWorkerPool)

	fx := &pipelineFixture{service: svc, meetingRepo: meetingRepo, extraction: extractionRepo}

	m := entities.NewMeeting(uuid.New(), "vendor call", "")
	object := "recordings/" + m.ID.String() + "/audio"
	staleURL := "https://store.example/expired-link"
	m.RecordingObject = &object
	m.RecordingURL = &staleURL
	if err := meetingRepo.Create(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	run := entities.NewExtractionRun(m.ID, m.OwnerID, nil)
	if err := extractionRepo.CreateRun(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	if err := svc.EnqueueRun(context.Background(), run.ID); err != nil {
		t.Fatal(err)
	}

	done := fx.waitForRun(t, run.ID)
	if done.Status != entities.RunStatusDone {
		t.Fatalf("run status = %s, last error: %s", done.Status, done.LastError)
	}

	recordings.mu.Lock()
	objects := recordings.objects
	recordings.mu.Unlock()
	if len(objects) != 1 || objects[0] != object {
		t.Fatalf("recording store asked for %v, want %q", objects, object)
	}
	transcriber.mu.Lock()
	urls := transcriber.urls
	transcriber.mu.Unlock()
	if len(urls) != 1 || urls[0] != recordings.url {
		t.Errorf("transcriber fetched %v, want the freshly issued link", urls)
	}

	updated, _ := meetingRepo.GetByID(context.Background(), m.ID)
	if updated.Transcript != transcriber.transcript {
		t.Errorf("transcript was not saved back: %q", updated.Transcript)
	}
}

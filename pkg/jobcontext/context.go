package jobcontext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyRunID        KeyContext = "run_id"
	keyMeetingID    KeyContext = "meeting_id"
	keyWorkerID     KeyContext = "worker_id"
	keyRunStartTime KeyContext = "run_start_time"
)

// RunMetadata holds metadata for one extraction run execution
type RunMetadata struct {
	RunID     uuid.UUID
	MeetingID uuid.UUID
	WorkerID  int
	StartTime time.Time
}

// RunBegin initializes a run context with metadata and timeout.
// The timeout bounds both LLM calls and the final persist transaction so a
// hung upstream can never pin a worker forever.
func RunBegin(parentCtx context.Context, runID, meetingID uuid.UUID, workerID int, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keyMeetingID, meetingID)
	ctx = context.WithValue(ctx, keyWorkerID, workerID)
	ctx = context.WithValue(ctx, keyRunStartTime, time.Now())

	return ctx, cancel
}

// RunExec executes the run function with panic recovery. Extraction runs are
// never retried here: a failed run stays failed until the user reprocesses.
func RunExec(ctx context.Context, runFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered: %v", p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before run execution: %w", ctx.Err())
	}

	return runFunc(ctx)
}

// GetRunID extracts the extraction run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	runID, ok := ctx.Value(keyRunID).(uuid.UUID)
	return runID, ok
}

// GetMeetingID extracts the meeting ID from context
func GetMeetingID(ctx context.Context) (uuid.UUID, bool) {
	meetingID, ok := ctx.Value(keyMeetingID).(uuid.UUID)
	return meetingID, ok
}

// GetWorkerID extracts the worker ID from context
func GetWorkerID(ctx context.Context) int {
	workerID, ok := ctx.Value(keyWorkerID).(int)
	if !ok {
		return -1
	}
	return workerID
}

// GetRunStartTime extracts the run start time from context
func GetRunStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyRunStartTime).(time.Time)
	return startTime, ok
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	meetingID, _ := GetMeetingID(ctx)
	startTime, _ := GetRunStartTime(ctx)

	return &RunMetadata{
		RunID:     runID,
		MeetingID: meetingID,
		WorkerID:  GetWorkerID(ctx),
		StartTime: startTime,
	}
}

// IsRetryableError classifies transport-level errors worth retrying within a
// single gateway call: network errors, timeouts, rate limits, 5xx.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Context errors (timeout, cancelled)
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}

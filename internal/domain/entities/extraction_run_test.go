package entities

import (
	"testing"

	"github.com/google/uuid"
)

func TestExtractionRunLifecycle(t *testing.T) {
	run := NewExtractionRun(uuid.New(), uuid.New(), nil)
	if run.Status != RunStatusPending {
		t.Fatalf("new run status = %s, want pending", run.Status)
	}
	if run.IsTerminal() {
		t.Error("pending run must not be terminal")
	}

	run.MarkExtracting()
	if run.Status != RunStatusExtracting || run.StartedAt == nil {
		t.Errorf("after MarkExtracting: status=%s started_at=%v", run.Status, run.StartedAt)
	}

	goalID := uuid.New()
	run.MarkPersisting("Sales pipeline", &goalID, nil)
	if run.Status != RunStatusPersisting {
		t.Errorf("after MarkPersisting: status=%s", run.Status)
	}
	if run.ContextLabel != "Sales pipeline" || run.GoalID == nil || *run.GoalID != goalID {
		t.Errorf("resolved context not recorded: label=%q goal=%v", run.ContextLabel, run.GoalID)
	}

	run.MarkDone(3)
	if run.Status != RunStatusDone || run.TaskCount != 3 || run.CompletedAt == nil {
		t.Errorf("after MarkDone: %+v", run)
	}
	if !run.IsTerminal() {
		t.Error("done run must be terminal")
	}
}

func TestExtractionRunFailure(t *testing.T) {
	run := NewExtractionRun(uuid.New(), uuid.New(), nil)
	run.MarkExtracting()
	run.MarkFailed("model unavailable")

	if run.Status != RunStatusFailed {
		t.Errorf("status = %s, want failed", run.Status)
	}
	if run.LastError != "model unavailable" {
		t.Errorf("last_error = %q", run.LastError)
	}
	if !run.IsTerminal() {
		t.Error("failed run must be terminal")
	}
}

func TestExtractionRunSupersedes(t *testing.T) {
	first := NewExtractionRun(uuid.New(), uuid.New(), nil)
	second := NewExtractionRun(first.MeetingID, first.OwnerID, &first.ID)

	if second.SupersedesID == nil || *second.SupersedesID != first.ID {
		t.Error("superseding run does not point at its predecessor")
	}
}

func TestNewExtractedTask(t *testing.T) {
	ownerID, meetingID, runID := uuid.New(), uuid.New(), uuid.New()
	task := NewExtractedTask(ownerID, meetingID, runID, "Send the deck", "details", "")

	if !task.AIExtracted {
		t.Error("extracted task must carry the ai_extracted flag")
	}
	if task.MeetingID == nil || *task.MeetingID != meetingID {
		t.Error("extracted task not linked to its meeting")
	}
	if task.ExtractionRunID == nil || *task.ExtractionRunID != runID {
		t.Error("extracted task not linked to its run")
	}
	if task.Priority != TaskPriorityMedium {
		t.Errorf("empty priority should default to medium, got %q", task.Priority)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("new task status = %q, want pending", task.Status)
	}
}

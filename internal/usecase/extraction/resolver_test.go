package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// fakeGateway returns canned responses and records prompts
type fakeGateway struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGateway) CompleteJSON(_ context.Context, _, userPrompt string) (string, error) {
	f.prompts = append(f.prompts, userPrompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func testGoal(name string) *entities.Goal {
	return entities.NewGoal(uuid.New(), name, "", entities.GoalTypeQuarterly, nil)
}

func testCategory(name string) *entities.Category {
	return entities.NewCategory(uuid.New(), uuid.New(), name, "")
}

func TestResolveCategoryPreferredOverGoal(t *testing.T) {
	goal := testGoal("Grow revenue")
	category := testCategory("Sales pipeline")
	gw := &fakeGateway{response: fmt.Sprintf(
		`{"goal_id": %q, "category_id": %q}`,
		goal.ID, category.ID,
	)}
	resolver := NewContextResolver(gw, 8000, nil)

	resolved, err := resolver.Resolve(context.Background(), "transcript", []*entities.Goal{goal}, []*entities.Category{category})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.GoalID != nil {
		t.Error("goal link should be dropped when a category matches")
	}
	if resolved.CategoryID == nil || *resolved.CategoryID != category.ID {
		t.Errorf("got category %v, want %v", resolved.CategoryID, category.ID)
	}
	if resolved.Label != "Sales pipeline" {
		t.Errorf("got label %q, want the matched category's name", resolved.Label)
	}
}

func TestResolveLabelComesFromGoalTitle(t *testing.T) {
	goal := testGoal("Grow revenue")
	gw := &fakeGateway{response: fmt.Sprintf(`{"goal_id": %q, "category_id": null}`, goal.ID)}
	resolver := NewContextResolver(gw, 8000, nil)

	resolved, err := resolver.Resolve(context.Background(), "transcript", []*entities.Goal{goal}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.GoalID == nil || *resolved.GoalID != goal.ID {
		t.Errorf("got goal %v, want %v", resolved.GoalID, goal.ID)
	}
	if resolved.Label != "Grow revenue" {
		t.Errorf("got label %q, want the goal's title", resolved.Label)
	}
}

func TestResolveRejectsUnknownIDs(t *testing.T) {
	goal := testGoal("Grow revenue")
	gw := &fakeGateway{response: fmt.Sprintf(
		`{"goal_id": %q, "category_id": %q}`,
		uuid.New(), uuid.New(),
	)}
	resolver := NewContextResolver(gw, 8000, nil)

	resolved, err := resolver.Resolve(context.Background(), "transcript", []*entities.Goal{goal}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.GoalID != nil || resolved.CategoryID != nil {
		t.Error("invented ids must not be linked")
	}
	if resolved.Label != "General" {
		t.Errorf("got label %q, want General when nothing matched", resolved.Label)
	}
}

func TestResolveFailureFallsBackToGeneral(t *testing.T) {
	gw := &fakeGateway{err: errors.New("upstream unavailable")}
	resolver := NewContextResolver(gw, 8000, nil)

	resolved, err := resolver.Resolve(context.Background(), "transcript", []*entities.Goal{testGoal("G")}, nil)
	if err != nil {
		t.Fatalf("resolution failure should degrade, not error: %v", err)
	}
	if resolved.Label != "General" || resolved.GoalID != nil || resolved.CategoryID != nil {
		t.Errorf("expected general context, got %+v", resolved)
	}
}

func TestResolveSkipsModelWithoutGoalsOrCategories(t *testing.T) {
	gw := &fakeGateway{response: `{}`}
	resolver := NewContextResolver(gw, 8000, nil)

	resolved, err := resolver.Resolve(context.Background(), "transcript", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Label != "General" {
		t.Errorf("got label %q, want General", resolved.Label)
	}
	if len(gw.prompts) != 0 {
		t.Error("model should not be called when there is nothing to classify")
	}
}

func TestResolveTruncatesLongTranscripts(t *testing.T) {
	gw := &fakeGateway{response: `{"goal_id": null, "category_id": null}`}
	resolver := NewContextResolver(gw, 100, nil)

	long := strings.Repeat("a", 5000)
	_, err := resolver.Resolve(context.Background(), long, []*entities.Goal{testGoal("G")}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gw.prompts) != 1 {
		t.Fatal("expected one model call")
	}
	if strings.Contains(gw.prompts[0], strings.Repeat("a", 101)) {
		t.Error("transcript was not truncated to the character limit")
	}
}

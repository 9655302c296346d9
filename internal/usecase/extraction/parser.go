package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// resolvedContext is the typed shape of the context resolver's output
type resolvedContext struct {
	GoalID     *string `json:"goal_id"`
	CategoryID *string `json:"category_id"`
}

// extractedItem is the typed shape of one task in the extractor's output.
// Deadline may be an ISO date or a relative phrase lifted from the
// transcript; it is resolved against the run date afterwards.
type extractedItem struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	Deadline       string   `json:"deadline"`
	Assignees      []string `json:"assignees"`
	SourceExcerpts []string `json:"source_excerpts"`
}

type extractedItems struct {
	Tasks []extractedItem `json:"tasks"`
}

// extractJSON strips markdown code fences that models wrap JSON in
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
		response = strings.TrimSuffix(response, "```")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
		response = strings.TrimSuffix(response, "```")
	}

	return strings.TrimSpace(response)
}

// decodeStrict unmarshals into v, repairing almost-valid JSON (trailing
// commas, single quotes) once before giving up. Unknown fields are ignored
// but type mismatches are errors.
func decodeStrict(raw string, v interface{}) error {
	cleaned := extractJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	repaired, err := jsonrepair.JSONRepair(cleaned)
	if err != nil {
		return fmt.Errorf("unparseable model output: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("invalid model output: %w", err)
	}
	return nil
}

// parseResolvedContext parses and normalizes resolver output
func parseResolvedContext(raw string) (*resolvedContext, error) {
	var rc resolvedContext
	if err := decodeStrict(raw, &rc); err != nil {
		return nil, err
	}
	// A category implies its goal, so keep only the more specific link.
	if rc.CategoryID != nil && *rc.CategoryID != "" {
		rc.GoalID = nil
	}
	if rc.GoalID != nil && *rc.GoalID == "" {
		rc.GoalID = nil
	}
	if rc.CategoryID != nil && *rc.CategoryID == "" {
		rc.CategoryID = nil
	}
	return &rc, nil
}

// parseExtractedItems parses extractor output and normalizes each item.
// Items with empty titles are dropped; unrecognized priorities fall back
// to medium rather than failing the run.
func parseExtractedItems(raw string) ([]extractedItem, error) {
	var out extractedItems
	if err := decodeStrict(raw, &out); err != nil {
		return nil, err
	}

	items := make([]extractedItem, 0, len(out.Tasks))
	for _, item := range out.Tasks {
		item.Title = strings.TrimSpace(item.Title)
		if item.Title == "" {
			continue
		}
		item.Priority = strings.ToLower(strings.TrimSpace(item.Priority))
		if item.Priority == entities.TaskPriorityUrgent {
			// Extraction tops out at high; urgent is a level users set
			// themselves.
			item.Priority = entities.TaskPriorityHigh
		}
		if !entities.ValidPriority(item.Priority) {
			item.Priority = entities.TaskPriorityMedium
		}
		cleaned := item.Assignees[:0]
		for _, name := range item.Assignees {
			if name = strings.TrimSpace(name); name != "" {
				cleaned = append(cleaned, name)
			}
		}
		item.Assignees = cleaned
		items = append(items, item)
	}
	return items, nil
}

package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// DraftTask is a task candidate produced by the extractor before
// persistence: context links and run bookkeeping are attached later.
type DraftTask struct {
	Title          string
	Description    string
	Priority       string
	Deadline       *time.Time
	Assignees      []*entities.Contact
	SourceExcerpts []string
}

const extractorSystemPrompt = `You extract action items from meeting transcripts.
Respond with a JSON object: {"tasks": [...]} where each task is
{
  "title": "5-8 words, starting with an action verb",
  "description": "one or two sentences of detail from the transcript",
  "priority": "low" | "medium" | "high",
  "deadline": "YYYY-MM-DD, or the deadline phrase verbatim from the transcript, or empty",
  "assignees": ["names of people responsible, exactly as listed in the roster"],
  "source_excerpts": ["short verbatim quotes from the transcript this task came from"]
}
Rules:
- Include ONLY explicit commitments and action items. Discussion, opinions, and status updates are not tasks.
- One task per distinct commitment. Do not merge unrelated commitments or split one commitment into several tasks.
- Assign people only when the transcript names who is responsible, and only using names or roles from the provided roster. Never invent people.
- Priority: "high" on explicit urgency cues ("urgent", "asap", "blocker", "critical"); "low" on explicit de-prioritization cues ("nice to have", "later", "not urgent"). Default to "medium" when there is no cue; never invent urgency.
- Keep deadline phrases like "by Friday" or "next week" verbatim; do not guess a date for them.
- If the transcript contains no action items, return {"tasks": []}.`

// TaskExtractor turns a transcript into draft tasks. Assignee names from
// the model are matched against the owner's roster; names that match no
// contact are dropped rather than guessed at.
type TaskExtractor struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewTaskExtractor creates an extractor
func NewTaskExtractor(gateway Gateway, logger *zap.Logger) *TaskExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskExtractor{gateway: gateway, logger: logger}
}

// Extract pulls action items out of the transcript. contextLabel tells the
// model what the meeting was about. Relative deadlines are resolved against
// runDate. Unparseable model output yields an empty list, not an error;
// transport failures propagate so the run can be retried.
func (e *TaskExtractor) Extract(ctx context.Context, transcript, contextLabel string, roster []*entities.Contact, runDate time.Time) ([]DraftTask, error) {
	raw, err := e.gateway.CompleteJSON(ctx, extractorSystemPrompt, e.buildPrompt(transcript, contextLabel, roster, runDate))
	if err != nil {
		return nil, fmt.Errorf("task extraction failed: %w", err)
	}

	items, err := parseExtractedItems(raw)
	if err != nil {
		e.logger.Warn("unparseable extractor output, treating as no tasks", zap.Error(err))
		return []DraftTask{}, nil
	}

	drafts := make([]DraftTask, 0, len(items))
	for _, item := range items {
		drafts = append(drafts, DraftTask{
			Title:          item.Title,
			Description:    item.Description,
			Priority:       item.Priority,
			Deadline:       resolveDeadline(item.Deadline, runDate),
			Assignees:      matchRoster(item.Assignees, roster),
			SourceExcerpts: item.SourceExcerpts,
		})
	}
	return drafts, nil
}

func (e *TaskExtractor) buildPrompt(transcript, contextLabel string, roster []*entities.Contact, runDate time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Today's date: %s\n", runDate.Format("2006-01-02"))
	if contextLabel == "" {
		contextLabel = "General"
	}
	fmt.Fprintf(&b, "Meeting context: %s\n\n", contextLabel)

	b.WriteString("Roster:\n")
	if len(roster) == 0 {
		b.WriteString("(none)\n")
	}
	for _, c := range roster {
		if c.Role != "" {
			fmt.Fprintf(&b, "- %s (%s)\n", c.Name, c.Role)
		} else {
			fmt.Fprintf(&b, "- %s\n", c.Name)
		}
	}

	b.WriteString("\nTranscript:\n")
	b.WriteString(transcript)
	return b.String()
}

// matchRoster maps model-reported names onto contacts, case-insensitively:
// full name first, then unambiguous first name, then unambiguous role, so
// "the designer said she'd mock it up" still lands on the right contact.
func matchRoster(names []string, roster []*entities.Contact) []*entities.Contact {
	var matched []*entities.Contact
	seen := make(map[string]bool)

	for _, name := range names {
		contact := findContact(name, roster)
		if contact == nil || seen[contact.ID.String()] {
			continue
		}
		seen[contact.ID.String()] = true
		matched = append(matched, contact)
	}
	return matched
}

func findContact(name string, roster []*entities.Contact) *entities.Contact {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return nil
	}

	for _, c := range roster {
		if strings.ToLower(c.Name) == lowered {
			return c
		}
	}

	var byFirst *entities.Contact
	for _, c := range roster {
		if strings.ToLower(c.FirstName()) == lowered {
			if byFirst != nil {
				// Ambiguous first name, refuse to guess.
				return nil
			}
			byFirst = c
		}
	}
	if byFirst != nil {
		return byFirst
	}

	var byRole *entities.Contact
	for _, c := range roster {
		if c.Role != "" && strings.ToLower(c.Role) == lowered {
			if byRole != nil {
				// Two people share the role, refuse to guess.
				return nil
			}
			byRole = c
		}
	}
	return byRole
}

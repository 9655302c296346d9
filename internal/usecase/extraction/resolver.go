package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/notetrackhq/notetrack/internal/domain/entities"
)

// Gateway is the chat-completion surface the pipeline needs from the LLM
// client. Implementations must return a JSON object string.
type Gateway interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ResolvedContext links a meeting to at most one of the user's goals or
// categories. A category is the more specific link, so when the model
// proposes both only the category is kept.
type ResolvedContext struct {
	Label      string
	GoalID     *uuid.UUID
	CategoryID *uuid.UUID
}

const resolverSystemPrompt = `You classify meeting transcripts against a user's goals and work categories.
Respond with a JSON object:
{
  "goal_id": "id of the single most relevant goal, or null",
  "category_id": "id of the single most relevant category, or null"
}
Rules:
- Pick a goal or category ONLY if the transcript clearly relates to it. When unsure, return null for both.
- If a category fits, return its id and leave goal_id null; the category already implies its goal.
- Never invent ids. Only use ids from the provided lists.`

// ContextResolver classifies a transcript against the owner's goals and
// categories. Resolution is best-effort: any model or parse failure
// degrades to the General context instead of failing the run.
type ContextResolver struct {
	gateway   Gateway
	charLimit int
	logger    *zap.Logger
}

// NewContextResolver creates a resolver with a transcript character cap
func NewContextResolver(gateway Gateway, charLimit int, logger *zap.Logger) *ContextResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContextResolver{
		gateway:   gateway,
		charLimit: charLimit,
		logger:    logger,
	}
}

func generalContext() *ResolvedContext {
	return &ResolvedContext{Label: "General"}
}

// Resolve classifies the transcript. It returns a non-nil context in all
// cases; only a cancelled context propagates as an error.
func (r *ContextResolver) Resolve(ctx context.Context, transcript string, goals []*entities.Goal, categories []*entities.Category) (*ResolvedContext, error) {
	if len(goals) == 0 && len(categories) == 0 {
		return generalContext(), nil
	}

	excerpt := transcript
	if r.charLimit > 0 && len(excerpt) > r.charLimit {
		excerpt = excerpt[:r.charLimit]
	}

	raw, err := r.gateway.CompleteJSON(ctx, resolverSystemPrompt, r.buildPrompt(excerpt, goals, categories))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.Warn("context resolution failed, falling back to general", zap.Error(err))
		return generalContext(), nil
	}

	parsed, err := parseResolvedContext(raw)
	if err != nil {
		r.logger.Warn("unparseable resolver output, falling back to general", zap.Error(err))
		return generalContext(), nil
	}

	// Ids must refer to records the owner actually has; the label is the
	// matched record's own name so users recognize it.
	resolved := generalContext()
	if parsed.CategoryID != nil {
		if id, err := uuid.Parse(*parsed.CategoryID); err == nil {
			if c := findCategory(categories, id); c != nil {
				resolved.CategoryID = &id
				resolved.Label = c.Name
			}
		}
	}
	if resolved.CategoryID == nil && parsed.GoalID != nil {
		if id, err := uuid.Parse(*parsed.GoalID); err == nil {
			if g := findGoal(goals, id); g != nil {
				resolved.GoalID = &id
				resolved.Label = g.Title
			}
		}
	}
	return resolved, nil
}

func (r *ContextResolver) buildPrompt(transcript string, goals []*entities.Goal, categories []*entities.Category) string {
	var b strings.Builder

	b.WriteString("Goals:\n")
	if len(goals) == 0 {
		b.WriteString("(none)\n")
	}
	for _, g := range goals {
		fmt.Fprintf(&b, "- id=%s type=%s title=%q\n", g.ID, g.Type, g.Title)
	}

	b.WriteString("\nCategories:\n")
	if len(categories) == 0 {
		b.WriteString("(none)\n")
	}
	for _, c := range categories {
		fmt.Fprintf(&b, "- id=%s goal_id=%s name=%q\n", c.ID, c.GoalID, c.Name)
	}

	b.WriteString("\nTranscript:\n")
	b.WriteString(transcript)
	return b.String()
}

func findGoal(goals []*entities.Goal, id uuid.UUID) *entities.Goal {
	for _, g := range goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func findCategory(categories []*entities.Category, id uuid.UUID) *entities.Category {
	for _, c := range categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

package intelligence

import (
	"context"

	"fieldassist/models"
)

// ParamSpec describes one tool parameter in a provider-neutral way.
type ParamSpec struct {
	Type        string // "string", "boolean", "integer"
	Description string
}

// ToolSchema is the typed schema for one tool, handed to the completion
// provider so the model can emit well-formed calls.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]ParamSpec
	Required    []string
}

// ModelTurn is one completion: either a narrative, tool-call requests, or both.
type ModelTurn struct {
	Narrative string
	ToolCalls []models.ToolCall
	Usage     models.TokenUsage
}

// CompletionProvider is the LLM collaborator. Implementations must honor ctx
// cancellation; the orchestrator runs every call under a turn budget.
type CompletionProvider interface {
	Complete(ctx context.Context, history []models.ChatMessage, tools []ToolSchema) (*ModelTurn, error)
}

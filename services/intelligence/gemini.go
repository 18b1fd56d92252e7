// File: services/intelligence/gemini.go
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"fieldassist/models"

	"github.com/google/uuid"
	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const systemPrompt = `You are the scheduling assistant for a local field-service company.
Help customers book appointments, get ballpark quotes, and handle emergencies.
Use the provided tools for any availability, booking, pricing, or service-area
question instead of guessing. Keep replies to one or two short sentences.`

// GeminiProvider implements CompletionProvider on the Gemini API using native
// function calling.
type GeminiProvider struct {
	model *genai.GenerativeModel
}

func NewGeminiProvider(apiKey, modelName string) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	return &GeminiProvider{model: model}, nil
}

// requestModel returns a per-call copy of the shared model with the given
// tools attached. Sessions complete concurrently, so the shared model is never
// written after construction.
func (g *GeminiProvider) requestModel(tools []ToolSchema) *genai.GenerativeModel {
	model := *g.model
	model.Tools = []*genai.Tool{{FunctionDeclarations: toDeclarations(tools)}}
	return &model
}

// Complete sends the session history plus tool schemas and maps the answer back
// into a provider-neutral ModelTurn.
func (g *GeminiProvider) Complete(ctx context.Context, history []models.ChatMessage, tools []ToolSchema) (*ModelTurn, error) {
	contents := toContents(history)
	if len(contents) == 0 {
		return nil, fmt.Errorf("empty message history")
	}

	cs := g.requestModel(tools).StartChat()
	cs.History = contents[:len(contents)-1]
	last := contents[len(contents)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	turn := &ModelTurn{}
	if resp.UsageMetadata != nil {
		turn.Usage = models.TokenUsage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				return nil, fmt.Errorf("failed to encode tool args for %s: %w", p.Name, err)
			}
			turn.ToolCalls = append(turn.ToolCalls, models.ToolCall{
				Name:          p.Name,
				CorrelationID: uuid.New().String(),
				Args:          args,
			})
		}
	}
	turn.Narrative = strings.TrimSpace(sb.String())
	return turn, nil
}

// toContents maps the session log onto Gemini roles. Tool-result entries become
// FunctionResponse parts; their content is the envelope's structured content
// only, so private metadata never re-enters the prompt.
func toContents(history []models.ChatMessage) []*genai.Content {
	var contents []*genai.Content
	for _, msg := range history {
		switch msg.Role {
		case models.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		case models.RoleAssistant:
			if msg.Content == "" {
				continue
			}
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		case models.RoleTool:
			var payload map[string]any
			if err := json.Unmarshal([]byte(msg.Content), &payload); err != nil {
				payload = map[string]any{"result": msg.Content}
			}
			contents = append(contents, &genai.Content{
				Role: "function",
				Parts: []genai.Part{genai.FunctionResponse{
					Name:     msg.ToolName,
					Response: payload,
				}},
			})
		}
	}
	return contents
}

func toDeclarations(tools []ToolSchema) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		props := make(map[string]*genai.Schema, len(t.Parameters))
		for name, p := range t.Parameters {
			props[name] = &genai.Schema{
				Type:        toGenaiType(p.Type),
				Description: p.Description,
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   t.Required,
			},
		})
	}
	return decls
}

func toGenaiType(t string) genai.Type {
	switch t {
	case "boolean":
		return genai.TypeBoolean
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	default:
		return genai.TypeString
	}
}

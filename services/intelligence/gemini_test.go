package intelligence

import (
	"sync"
	"testing"

	"fieldassist/models"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSchemas() []ToolSchema {
	return []ToolSchema{{
		Name:        "search_availability",
		Description: "Find open appointment slots.",
		Parameters: map[string]ParamSpec{
			"service_type": {Type: "string", Description: "Kind of work needed"},
			"urgent":       {Type: "boolean", Description: "Same-day help needed"},
		},
		Required: []string{"service_type"},
	}}
}

func TestRequestModelNeverWritesSharedState(t *testing.T) {
	g := &GeminiProvider{model: &genai.GenerativeModel{}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := g.requestModel(sampleSchemas())
			assert.NotSame(t, g.model, m)
			assert.Len(t, m.Tools, 1)
		}()
	}
	wg.Wait()

	assert.Nil(t, g.model.Tools, "the shared model stays as constructed")
}

func TestToDeclarations(t *testing.T) {
	decls := toDeclarations(sampleSchemas())

	require.Len(t, decls, 1)
	assert.Equal(t, "search_availability", decls[0].Name)
	require.NotNil(t, decls[0].Parameters)
	assert.Equal(t, genai.TypeObject, decls[0].Parameters.Type)
	assert.Equal(t, []string{"service_type"}, decls[0].Parameters.Required)
	assert.Equal(t, genai.TypeString, decls[0].Parameters.Properties["service_type"].Type)
	assert.Equal(t, genai.TypeBoolean, decls[0].Parameters.Properties["urgent"].Type)
}

func TestToContentsMapsRoles(t *testing.T) {
	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "anything open today?"},
		{Role: models.RoleAssistant, Content: "Let me check."},
		{Role: models.RoleTool, ToolName: "search_availability", Content: `{"success":true,"total_slots":3}`},
	}

	contents := toContents(history)

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "function", contents[2].Role)

	fr, ok := contents[2].Parts[0].(genai.FunctionResponse)
	require.True(t, ok)
	assert.Equal(t, "search_availability", fr.Name)
	assert.Equal(t, true, fr.Response["success"])
}

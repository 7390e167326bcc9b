package itinerary

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func busanRequest(t *testing.T) TripRequest {
	t.Helper()
	req, err := ValidateRequest([]byte(busanRequestJSON))
	require.NoError(t, err)
	return req
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := busanRequest(t)

	first := BuildPrompt(req)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildPrompt(req))
	}
	assert.Equal(t, PromptKey(first), PromptKey(BuildPrompt(req)))
}

func TestBuildPrompt_ListsEveryItemType(t *testing.T) {
	prompt := BuildPrompt(busanRequest(t))
	for _, typ := range ItemTypes {
		assert.Contains(t, prompt, `"`+string(typ)+`"`)
	}
}

func TestBuildPrompt_EmbedsSchemaAndRequest(t *testing.T) {
	req := busanRequest(t)
	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "[OUTPUT_JSON_SCHEMA]\n"+outputSchemaText)

	reqJSON, err := json.MarshalIndent(req, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, prompt, "[USER_REQUEST_INPUT]\n"+string(reqJSON))
	assert.Contains(t, prompt, `"budget_krw": 500000`)
	assert.Contains(t, prompt, `"main_mode": "public_transport"`)

	schemaAt := strings.Index(prompt, "[OUTPUT_JSON_SCHEMA]")
	requestAt := strings.Index(prompt, "[USER_REQUEST_INPUT]")
	assert.Less(t, schemaAt, requestAt)
	assert.True(t, strings.HasSuffix(prompt, "with no commentary before or after it.\n"))
}

func TestBuildPrompt_DiffersPerRequest(t *testing.T) {
	a := busanRequest(t)
	b := a
	b.DurationDays = 3

	assert.NotEqual(t, PromptKey(BuildPrompt(a)), PromptKey(BuildPrompt(b)))
}

func TestOutputSchema_TypeEnumMatchesItemTypes(t *testing.T) {
	s := OutputSchema()

	plan, ok := s.Properties.Get("plan")
	require.True(t, ok)
	schedule, ok := plan.Items.Properties.Get("schedule")
	require.True(t, ok)
	typ, ok := schedule.Items.Properties.Get("type")
	require.True(t, ok)

	want := make([]any, 0, len(ItemTypes))
	for _, it := range ItemTypes {
		want = append(want, string(it))
	}
	assert.Equal(t, want, typ.Enum)
	assert.Equal(t, []string{"trip_title", "overall_summary", "plan"}, s.Required)
}

func TestOutputSchema_RendersInDeclarationOrder(t *testing.T) {
	title := strings.Index(outputSchemaText, `"trip_title"`)
	summary := strings.Index(outputSchemaText, `"overall_summary"`)
	plan := strings.Index(outputSchemaText, `"plan"`)

	require.NotEqual(t, -1, title)
	assert.Less(t, title, summary)
	assert.Less(t, summary, plan)
}

// README: Prompt assembly; a pure function of the TripRequest.
package itinerary

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// BuildPrompt renders req into the instruction sent to the model.
// The same request always yields the same bytes.
func BuildPrompt(req TripRequest) string {
	var b strings.Builder

	b.WriteString(`You are "Plan-AI", a travel planner that answers only with JSON. Build a personalised itinerary from the USER_REQUEST_INPUT below.

[TOP PRIORITY RULES]
1. Your answer MUST follow the structure of [OUTPUT_JSON_SCHEMA] literally.
2. NEVER rename fields or add fields of your own (e.g. do not use "plan_name" or "itinerary").
3. The "type" field may ONLY be one of: `)
	for i, t := range ItemTypes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(`"` + string(t) + `"`)
	}
	b.WriteString(`.
4. Respect every constraint of the request: total budget (budget_krw), party size, food restrictions, walking preference, pace, atmosphere and transportation.
5. Produce exactly duration_days entries in "plan", numbered from 1, each with a non-empty "schedule".
6. Write titles, themes, summaries and descriptions in Korean.

[OUTPUT_JSON_SCHEMA]
`)
	b.WriteString(outputSchemaText)
	b.WriteString("\n\n[USER_REQUEST_INPUT]\n")

	// TripRequest holds only strings, integers and finite floats, so this cannot fail.
	reqJSON, _ := json.MarshalIndent(req, "", "  ")
	b.Write(reqJSON)

	b.WriteString("\n\nFollowing the request above, return ONLY one JSON object that matches OUTPUT_JSON_SCHEMA, with no commentary before or after it.\n")
	return b.String()
}

// PromptKey identifies a prompt in the response cache and the generation log.
func PromptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

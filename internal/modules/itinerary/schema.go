// README: JSON Schema of TripResponse, embedded verbatim in every prompt.
package itinerary

import (
	"encoding/json"
	"fmt"

	"github.com/eino-contrib/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type prop = orderedmap.Pair[string, *jsonschema.Schema]

func object(required []string, props ...prop) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Required:   required,
		Properties: orderedmap.New[string, *jsonschema.Schema](orderedmap.WithInitialData(props...)),
	}
}

func field(name, typ, desc string) prop {
	return prop{Key: name, Value: &jsonschema.Schema{Type: typ, Description: desc}}
}

// OutputSchema describes the itinerary the model must return. The enum of
// schedule[].type is taken from ItemTypes.
func OutputSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(ItemTypes))
	for _, t := range ItemTypes {
		enum = append(enum, string(t))
	}

	location := object([]string{"name", "address", "latitude", "longitude"},
		field("name", "string", "place name"),
		field("address", "string", "street address"),
		field("latitude", "number", "WGS84 latitude"),
		field("longitude", "number", "WGS84 longitude"),
	)

	item := object([]string{"time", "type", "title", "description", "location"},
		field("time", "string", "start time, HH:MM (e.g. 14:00)"),
		prop{Key: "type", Value: &jsonschema.Schema{Type: "string", Enum: enum, Description: "kind of stop"}},
		field("title", "string", "schedule entry title"),
		field("description", "string", "what to do there and why it fits the request"),
		prop{Key: "location", Value: location},
		field("cost_krw", "integer", "estimated cost of this entry in KRW for the whole party, default 0"),
	)

	day := object([]string{"day", "theme", "schedule"},
		field("day", "integer", "day number starting at 1"),
		field("theme", "string", "theme of the day"),
		prop{Key: "schedule", Value: &jsonschema.Schema{Type: "array", Items: item}},
	)

	return object([]string{"trip_title", "overall_summary", "plan"},
		field("trip_title", "string", "trip title"),
		field("overall_summary", "string", "summary of the whole plan"),
		prop{Key: "plan", Value: &jsonschema.Schema{Type: "array", Items: day}},
	)
}

var outputSchemaText = renderSchema(OutputSchema())

func renderSchema(s *jsonschema.Schema) string {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("render output schema: %v", err))
	}
	return string(b)
}

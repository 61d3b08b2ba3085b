package watchlist

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema describing the persisted state
// layout. It reflects the State type, so the schema tracks the Go types
// automatically; the embedded copy under schema/ is refreshed by
// tools/schema-generator.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Persisted blobs may carry fields written by newer versions;
		// validation only guards shape, not closed-world membership.
		AllowAdditionalProperties: true,
		// Expand struct references instead of using $ref for a cleaner schema.
		ExpandedStruct: true,
	}

	schema := r.Reflect(&State{})
	schema.Title = "Watchlist Persisted State"
	schema.Description = "Layout of one serialized watchlist state blob as written to the durable store."

	return json.MarshalIndent(schema, "", "  ")
}

package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// JSON is used for the human-readable manifest section of snapshots (config,
// visit order, init values). It cannot encode interface-typed model slots;
// those always go through Gob.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used for snapshot manifests unless overridden.
//
// Existing persisted files are self-describing (they store the codec name in
// their header) and are opened by selecting the appropriate codec by name.
var Default Codec = JSON{}

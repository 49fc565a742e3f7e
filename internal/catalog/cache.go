// internal/catalog/cache.go
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getllm/getllm/internal/logging"
	"github.com/getllm/getllm/internal/util"
	"github.com/xeipuuv/gojsonschema"
)

// snapshotSchema is the shape a snapshot file must satisfy before it is
// trusted. Files that fail validation are discarded rather than half-read.
const snapshotSchema = `{
  "type": "object",
  "required": ["fetched_at", "entries"],
  "properties": {
    "fetched_at": { "type": "string" },
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": { "type": "string", "minLength": 1 },
          "description": { "type": "string" },
          "size_bytes": { "type": "integer", "minimum": 0 }
        }
      }
    }
  }
}`

// Snapshot is the persisted form of a fetched catalog.
type Snapshot struct {
	FetchedAt time.Time `json:"fetched_at"`
	Entries   []Model   `json:"entries"`
}

// LoadSnapshot reads the snapshot file at path. A missing file returns
// (nil, nil). A file that fails schema validation or decoding is logged and
// treated as absent, so a corrupt cache never wedges a listing.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	if err := validateSnapshot(data); err != nil {
		logging.LogEvent("discarding catalog snapshot %s: %v", path, err)
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logging.LogEvent("discarding catalog snapshot %s: %v", path, err)
		return nil, nil
	}
	return &snap, nil
}

// saveSnapshot persists snap atomically, creating the cache directory as needed.
func saveSnapshot(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog snapshot: %w", err)
	}
	return util.WriteFileAtomic(path, data, 0o644)
}

// validateSnapshot checks raw file contents against the snapshot schema.
func validateSnapshot(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(snapshotSchema)
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("snapshot failed validation: %s", strings.Join(details, "; "))
}

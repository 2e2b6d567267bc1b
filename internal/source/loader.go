// Package source loads catalog export files from disk. The export is the
// only input boundary: a JSON envelope with a source label, an export
// timestamp and the raw records.
package source

import (
	"encoding/json"
	"fmt"
	"os"

	"collex/internal"
)

// LoadEnvelope reads and decodes one export file. The envelope itself must
// be valid JSON; individual records inside it decode tolerantly and never
// fail.
func LoadEnvelope(path string) (internal.Envelope, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return internal.Envelope{}, err
	}

	var env internal.Envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return internal.Envelope{}, fmt.Errorf("parse export %s: %w", path, err)
	}
	return env, nil
}

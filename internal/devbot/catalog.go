package devbot

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed fixtures/catalog.json
var defaultCatalog []byte

// LoadCatalog returns the catalog payload served to connecting apps: the
// file at path when given, the embedded fixture otherwise. The payload is
// kept as raw JSON and forwarded untouched, the way the real bot answers
// get_all_data.
func LoadCatalog(path string) (json.RawMessage, error) {
	raw := defaultCatalog
	if path != "" {
		fileRaw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog fixture: %w", err)
		}
		raw = fileRaw
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("catalog fixture is not valid json")
	}
	return json.RawMessage(raw), nil
}

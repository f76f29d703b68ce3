package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Required JSON keys of each request body
var (
	LoginFields   = []string{"username", "password"}
	StudentFields = []string{"username", "password", "activity_name", "email"}
)

// Decode reads a JSON object from r into dst and returns the keys from
// required that the object leaves out or sets to null. Empty strings count
// as present.
func Decode(r io.Reader, dst any, required ...string) ([]string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("decode body: not a JSON object")
	}

	var missing []string
	for _, key := range required {
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			missing = append(missing, key)
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	return missing, nil
}

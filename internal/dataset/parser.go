package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vvka-141/cosmosload/pkg/cosmosload"
)

var errNotArray = errors.New("top-level JSON value must be an array")

// Parse decodes a dataset file into records, in file order.
// The whole input is validated before anything is returned: any syntax
// error, a non-array top-level value or a non-object element fails the
// entire dataset.
func Parse(data []byte) ([]cosmosload.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input: %w", errNotArray)
	}
	if trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, fmt.Errorf("invalid JSON: %w", syntaxError(trimmed))
		}
		return nil, errNotArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	records := make([]cosmosload.Record, 0, len(elements))
	for i, raw := range elements {
		fields, err := decodeObject(raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		records = append(records, cosmosload.NewRecord(i, raw, fields))
	}

	return records, nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %s", describe(raw))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func describe(raw json.RawMessage) string {
	switch {
	case len(raw) == 0:
		return "nothing"
	case raw[0] == '[':
		return "an array"
	case raw[0] == '"':
		return "a string"
	case bytes.Equal(raw, []byte("null")):
		return "null"
	case bytes.Equal(raw, []byte("true")), bytes.Equal(raw, []byte("false")):
		return "a boolean"
	default:
		return "a number"
	}
}

func syntaxError(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return errors.New("malformed JSON")
}

package caption

import (
	"encoding/json"
	"fmt"
)

// EncodeJSON serializes the result in the interchange shape:
// captions.{format}.{track} event lists plus the metadata block.
func (r *Result) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return data, nil
}

// DecodeJSON reconstructs a result from its serialized form. Re-parsing
// emitted JSON yields an equal result.
func DecodeJSON(data []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	if result.Captions == nil {
		result.Captions = make(map[string]map[string][]Event)
	}
	for _, format := range Formats {
		if result.Captions[format] == nil {
			result.Captions[format] = make(map[string][]Event)
		}
	}
	return &result, nil
}

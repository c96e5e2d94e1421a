package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFences removes a surrounding ```json ... ``` block, if any.
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the language tag line
		if tag := strings.TrimSpace(s[:nl]); !strings.ContainsAny(tag, "{[") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeJSON strips code fences and unmarshals the model output into v.
func DecodeJSON(text string, v interface{}) error {
	return json.Unmarshal([]byte(StripCodeFences(text)), v)
}

// ExtractArray returns the JSON array in text. Models sometimes wrap the
// array in an object ({"scripts": [...]}); the first array-valued member
// in document order is used then.
func ExtractArray(text string) (json.RawMessage, error) {
	raw := bytes.TrimSpace([]byte(StripCodeFences(text)))
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrLLMResponseInvalid)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrLLMResponseInvalid)
	}

	switch raw[0] {
	case '[':
		return raw, nil
	case '{':
		dec := json.NewDecoder(bytes.NewReader(raw))
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLLMResponseInvalid, err)
		}
		for dec.More() {
			if _, err := dec.Token(); err != nil { // key
				return nil, fmt.Errorf("%w: %v", ErrLLMResponseInvalid, err)
			}
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrLLMResponseInvalid, err)
			}
			if v := bytes.TrimSpace(value); len(v) > 0 && v[0] == '[' {
				return v, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no JSON array found", ErrLLMResponseInvalid)
}

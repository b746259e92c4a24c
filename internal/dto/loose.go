package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Model replies are valid JSON but not always the declared types. The Loose
// types coerce the common drifts instead of failing the whole reply.

// LooseString accepts a string, number or boolean. Anything else reads as "".
type LooseString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(b []byte) error {
	v, err := decodeAny(b)
	if err != nil {
		return err
	}
	*s = LooseString(scalarText(v))
	return nil
}

// LooseNumber accepts a number or a numeric string. Anything else reads as 0.
type LooseNumber float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *LooseNumber) UnmarshalJSON(b []byte) error {
	v, err := decodeAny(b)
	if err != nil {
		return err
	}
	*n = 0
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			*n = LooseNumber(f)
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			*n = LooseNumber(f)
		}
	}
	return nil
}

// LooseStrings accepts a list whose items are strings, numbers or objects
// carrying a "name" field. A value that is not a list reads as empty.
type LooseStrings []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *LooseStrings) UnmarshalJSON(b []byte) error {
	v, err := decodeAny(b)
	if err != nil {
		return err
	}
	*l = nil
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make(LooseStrings, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			item = obj["name"]
		}
		if text := scalarText(item); text != "" {
			out = append(out, text)
		}
	}
	*l = out
	return nil
}

func decodeAny(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

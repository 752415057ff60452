package blocklist

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Entry is the canonical in-memory shape of a blocked address. Address is the
// identity when ID is absent.
type Entry struct {
	ID      *string `json:"id"`
	Address string  `json:"address"`
}

// NewEntry builds an entry without a server identifier.
func NewEntry(address string) Entry {
	return Entry{Address: address}
}

// shape is the detected wire shape of a single list element. The backend is
// not consistent: the same endpoint has been observed returning bare strings,
// flat objects, and objects nested under a "blocked" field.
type shape int

const (
	shapeString shape = iota
	shapeFlat         // {id?, address}
	shapeNested       // {blocked: {id?, address}}
	shapeOpaque       // anything else: stringified fallback
)

func detectShape(elem any) shape {
	switch v := elem.(type) {
	case string:
		return shapeString
	case map[string]any:
		if truthy(v["address"]) {
			return shapeFlat
		}
		if truthy(v["blocked"]) {
			return shapeNested
		}
	}
	return shapeOpaque
}

// Normalize converts a raw list response body into canonical entries, in
// order. The top-level payload may be a bare array or wrapped in a
// "blockedAddresses" field; null and falsy elements are dropped; a non-array
// payload yields an empty list.
func Normalize(raw []byte) ([]Entry, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode blocklist response: %w", err)
	}

	if wrapper, ok := payload.(map[string]any); ok {
		if wrapped, ok := wrapper["blockedAddresses"]; ok {
			payload = wrapped
		}
	}

	elements, ok := payload.([]any)
	if !ok {
		return []Entry{}, nil
	}

	entries := make([]Entry, 0, len(elements))
	for _, elem := range elements {
		if entry, ok := normalizeElement(elem); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// normalizeElement applies the shape cases in order of specificity. The second
// return value is false for dropped (null or falsy) elements.
func normalizeElement(elem any) (Entry, bool) {
	if !truthy(elem) {
		return Entry{}, false
	}

	switch detectShape(elem) {
	case shapeString:
		return Entry{Address: elem.(string)}, true
	case shapeFlat:
		obj := elem.(map[string]any)
		return Entry{ID: identifier(obj["id"]), Address: stringify(obj["address"])}, true
	case shapeNested:
		obj := elem.(map[string]any)
		nested, ok := obj["blocked"].(map[string]any)
		if !ok {
			return Entry{ID: identifier(obj["id"]), Address: stringify(elem)}, true
		}
		return Entry{ID: identifier(nested["id"]), Address: stringify(nested["address"])}, true
	default:
		var id *string
		if obj, ok := elem.(map[string]any); ok {
			id = identifier(obj["id"])
		}
		return Entry{ID: id, Address: stringify(elem)}, true
	}
}

// NormalizeCreated maps a create response onto an entry: a nested "blocked"
// record wins, then the body itself, then the submitted address as fallback.
func NormalizeCreated(raw []byte, submitted string) Entry {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return NewEntry(submitted)
	}

	record := payload
	if nested, ok := payload["blocked"].(map[string]any); ok {
		record = nested
	}

	address := submitted
	if truthy(record["address"]) {
		address = stringify(record["address"])
	}
	return Entry{ID: identifier(record["id"]), Address: address}
}

// identifier coerces a wire id (string or number) into its canonical string
// form; null and absent ids map to nil.
func identifier(v any) *string {
	switch id := v.(type) {
	case string:
		return &id
	case float64:
		s := formatNumber(id)
		return &s
	default:
		return nil
	}
}

// truthy mirrors the loose element filtering of the list contract: null,
// false, zero and the empty string are dropped, everything else is kept.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}

// stringify renders a non-string wire value as its compact JSON form, which
// keeps the fallback case total without inventing structure.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if encoded, err := json.Marshal(v); err == nil {
		return string(encoded)
	}
	return fmt.Sprintf("%v", v)
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

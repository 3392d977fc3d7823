package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/riftgate/boost/internal/boost"
)

// Canonical JSON for the opaque record fields: object keys sorted, strings
// NFC-normalized, HTML escaping disabled. Two writers serializing the same
// value must produce identical bytes, so stored rows and golden traces stay
// byte-stable.

// appendJSONString writes a JSON string literal without HTML escaping,
// normalizing the text to NFC first.
func appendJSONString(buf *bytes.Buffer, s string) error {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false) // <, > and & must not be escaped
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return fmt.Errorf("encode string: %w", err)
	}
	buf.Write(bytes.TrimRight(b.Bytes(), "\n"))
	return nil
}

// marshalContext serializes a context map with sorted keys.
// Returns "" for an empty map (stored as NULL).
func marshalContext(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendJSONString(&buf, k); err != nil {
			return "", err
		}
		buf.WriteByte(':')
		if err := appendJSONString(&buf, m[k]); err != nil {
			return "", err
		}
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

func unmarshalContext(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("decode context: %w", err)
	}
	return m, nil
}

// marshalRefs serializes presentation refs as a JSON array.
// Returns "" for an empty slice (stored as NULL).
func marshalRefs(refs []string) (string, error) {
	if len(refs) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, ref := range refs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendJSONString(&buf, ref); err != nil {
			return "", err
		}
	}
	buf.WriteByte(']')
	return buf.String(), nil
}

func unmarshalRefs(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var refs []string
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		return nil, fmt.Errorf("decode presentation refs: %w", err)
	}
	return refs, nil
}

// marshalEffect serializes an effect snapshot with a fixed field order.
// Returns "" for a nil effect (stored as NULL).
func marshalEffect(e *boost.Effect) (string, error) {
	if e == nil {
		return "", nil
	}

	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	if err := appendJSONString(&buf, e.Name); err != nil {
		return "", err
	}
	buf.WriteString(`,"description":`)
	if err := appendJSONString(&buf, e.Description); err != nil {
		return "", err
	}
	if e.Passive {
		buf.WriteString(`,"passive":true`)
	}
	if e.RequiresTarget {
		buf.WriteString(`,"requires_target":true`)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

func unmarshalEffect(raw string) (*boost.Effect, error) {
	if raw == "" {
		return nil, nil
	}
	var e boost.Effect
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return nil, fmt.Errorf("decode effect: %w", err)
	}
	return &e, nil
}

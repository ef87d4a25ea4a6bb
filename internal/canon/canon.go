// Package canon renders values as canonical JSON for diagnostics.
//
// Failure messages and golden snapshots embed printed values; the printing
// must therefore be deterministic across runs and platforms. Canonical form:
// object keys sorted lexicographically, no HTML escaping, strings NFC
// normalized. Unlike hashing-grade canonical JSON, floats and nulls are
// permitted — this output is read by humans, not fed to a digest.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Sprint renders v as canonical JSON. Values that cannot be serialized
// (channels, funcs, cycles) fall back to fmt's Go-syntax representation.
func Sprint(v any) string {
	b, err := Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}

// Marshal produces canonical JSON bytes for v.
//
// v is first round-tripped through encoding/json to reduce arbitrary Go
// values (structs, maps, slices) to JSON primitives, then re-emitted in
// canonical order. Numbers survive the round trip verbatim via json.Number.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("reduce to JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var reduced any
	if err := dec.Decode(&reduced); err != nil {
		return nil, fmt.Errorf("decode reduced JSON: %w", err)
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, reduced); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case json.Number:
		buf.WriteString(val.String())
		return nil
	case string:
		return writeCanonicalString(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalString(buf, k); err != nil {
				return fmt.Errorf("object key %q: %w", k, err)
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("object[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("unsupported reduced type %T", v)
	}
}

// writeCanonicalString emits a JSON string with NFC normalization and HTML
// escaping disabled (<, > and & stay literal).
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)

	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return err
	}

	// json.Encoder appends a trailing newline.
	buf.WriteString(strings.TrimSuffix(tmp.String(), "\n"))
	return nil
}

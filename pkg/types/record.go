package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Record is a single politician entry from the records file.
// Name is required. Aliases are alternate names, tried in their given
// order when the primary name has no matching image. Image holds the
// assigned portrait filename and is overwritten on a successful match.
//
// Fields this tool does not understand (party, bio, ...) are carried
// through unmarshal/marshal untouched so a rewrite never drops data.
type Record struct {
	Name    string
	Aliases []string
	Image   string

	extra map[string]json.RawMessage
}

// UnmarshalJSON decodes the known fields and stashes everything else.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &r.Name); err != nil {
			return fmt.Errorf("record name: %w", err)
		}
		delete(fields, "name")
	}
	if raw, ok := fields["aliases"]; ok {
		if err := json.Unmarshal(raw, &r.Aliases); err != nil {
			return fmt.Errorf("record aliases: %w", err)
		}
		// Distinguish "aliases": [] (kept) from "aliases": null (dropped).
		if r.Aliases == nil && !bytes.Equal(raw, []byte("null")) {
			r.Aliases = []string{}
		}
		delete(fields, "aliases")
	}
	if raw, ok := fields["image"]; ok {
		if err := json.Unmarshal(raw, &r.Image); err != nil {
			return fmt.Errorf("record image: %w", err)
		}
		delete(fields, "image")
	}

	if len(fields) > 0 {
		r.extra = fields
	}
	return nil
}

// MarshalJSON emits name, aliases, image in a stable order, then any
// preserved unknown fields sorted by key.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writeMember(&buf, "name", r.Name); err != nil {
		return nil, err
	}
	if r.Aliases != nil {
		buf.WriteByte(',')
		if err := writeMember(&buf, "aliases", r.Aliases); err != nil {
			return nil, err
		}
	}
	if r.Image != "" {
		buf.WriteByte(',')
		if err := writeMember(&buf, "image", r.Image); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(r.extra))
	for k := range r.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteByte(',')
		if err := writeMember(&buf, k, r.extra[k]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeMember appends a `"key": value` object member to buf.
func writeMember(buf *bytes.Buffer, key string, value interface{}) error {
	if err := writeValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeValue(buf, value)
}

// writeValue encodes value without HTML escaping so names like
// "Smith & Jones" and non-ASCII text survive byte-for-byte.
func writeValue(buf *bytes.Buffer, value interface{}) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	// Encoder.Encode appends a newline; drop it.
	buf.Truncate(buf.Len() - 1)
	return nil
}

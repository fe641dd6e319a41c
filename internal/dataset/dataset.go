// Package dataset holds the static domain records handed to every role call.
// A Dataset is built once per run and only ever read by the loop; the
// refiner may suggest changes to it, but nothing applies them.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidDataset = errors.New("invalid dataset")

// Record is one flat row of scalar fields (amounts, rates, dates as strings).
type Record map[string]any

type Category struct {
	Name string
	// Fields is the declared key order of its records. Keys missing from
	// Fields are written after it in sorted order.
	Fields  []string
	Records []Record
}

type Dataset struct {
	Name       string
	Attributes map[string]any
	Categories []Category
}

// Section is the serialized form of a single category.
type Section struct {
	Title string
	JSON  string
}

// Category returns the named category and whether it exists.
func (d *Dataset) Category(name string) (Category, bool) {
	if d == nil {
		return Category{}, false
	}
	for _, c := range d.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Len is the total number of records across all categories.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, c := range d.Categories {
		n += len(c.Records)
	}
	return n
}

// Clone returns a deep copy so callers never share the built-in records.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{Name: d.Name}
	if d.Attributes != nil {
		out.Attributes = make(map[string]any, len(d.Attributes))
		for k, v := range d.Attributes {
			out.Attributes[k] = v
		}
	}
	out.Categories = make([]Category, len(d.Categories))
	for i, c := range d.Categories {
		recs := make([]Record, len(c.Records))
		for j, r := range c.Records {
			cp := make(Record, len(r))
			for k, v := range r {
				cp[k] = v
			}
			recs[j] = cp
		}
		out.Categories[i] = Category{Name: c.Name, Fields: append([]string(nil), c.Fields...), Records: recs}
	}
	return out
}

// Validate checks that every category is named and every field is a scalar.
func (d *Dataset) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: dataset is nil", ErrInvalidDataset)
	}
	for k, v := range d.Attributes {
		if !isScalar(v) {
			return fmt.Errorf("%w: attribute %q is not a scalar (%T)", ErrInvalidDataset, k, v)
		}
	}
	for i, c := range d.Categories {
		if c.Name == "" {
			return fmt.Errorf("%w: category %d has no name", ErrInvalidDataset, i)
		}
		for j, r := range c.Records {
			for k, v := range r {
				if !isScalar(v) {
					return fmt.Errorf("%w: %s[%d].%s is not a scalar (%T)", ErrInvalidDataset, c.Name, j, k, v)
				}
			}
		}
	}
	return nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// Snapshot serializes the whole dataset as one JSON object using ", " and
// ": " separators. Attributes come first in key order, then categories in
// declared order.
func (d *Dataset) Snapshot() (string, error) {
	if d == nil {
		return "{}", nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeKey := func(k string) {
		if !first {
			buf.WriteString(", ")
		}
		first = false
		_ = writeJSON(&buf, k)
		buf.WriteString(": ")
	}

	keys := make([]string, 0, len(d.Attributes))
	for k := range d.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var vb bytes.Buffer
		if err := writeJSON(&vb, d.Attributes[k]); err != nil {
			return "", fmt.Errorf("encode attribute %q: %w", k, err)
		}
		writeKey(k)
		buf.Write(vb.Bytes())
	}
	for _, c := range d.Categories {
		cb, err := encodeRecords(c)
		if err != nil {
			return "", fmt.Errorf("encode category %q: %w", c.Name, err)
		}
		writeKey(c.Name)
		buf.WriteString(cb)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// Sections serializes each category separately, in declared order.
func (d *Dataset) Sections() ([]Section, error) {
	if d == nil {
		return nil, nil
	}
	out := make([]Section, 0, len(d.Categories))
	for _, c := range d.Categories {
		js, err := encodeRecords(c)
		if err != nil {
			return nil, fmt.Errorf("encode category %q: %w", c.Name, err)
		}
		out = append(out, Section{Title: Title(c.Name), JSON: js})
	}
	return out, nil
}

func encodeRecords(c Category) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range c.Records {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteByte('{')
		for j, k := range c.keyOrder(r) {
			if j > 0 {
				buf.WriteString(", ")
			}
			_ = writeJSON(&buf, k)
			buf.WriteString(": ")
			if err := writeJSON(&buf, r[k]); err != nil {
				return "", fmt.Errorf("record %d field %q: %w", i, k, err)
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.String(), nil
}

func (c Category) keyOrder(r Record) []string {
	keys := make([]string, 0, len(r))
	seen := make(map[string]bool, len(r))
	for _, k := range c.Fields {
		if _, ok := r[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(r)-len(keys))
	for k := range r {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// writeJSON appends v without the encoder's trailing newline and without
// HTML escaping.
func writeJSON(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// Title turns a category key such as "bank_accounts" into "Bank Accounts".
func Title(name string) string {
	out := []byte(name)
	upper := true
	for i, ch := range out {
		switch {
		case ch == '_' || ch == '-':
			out[i] = ' '
			upper = true
		case upper && ch >= 'a' && ch <= 'z':
			out[i] = ch - ('a' - 'A')
			upper = false
		default:
			upper = false
		}
	}
	return string(out)
}

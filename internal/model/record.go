package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrNotRowArray is returned by RowKeys for input that is not a JSON array of objects.
var ErrNotRowArray = errors.New("expected a JSON array of row objects")

// Record is one row of tabular input data, mapping a column name to its cell value.
// Values are inserted into the document verbatim, so inline HTML such as
// <strong> or <em> spans is allowed and passes through unmodified.
type Record map[string]string

// UnmarshalJSON decodes a JSON object into a Record.
// Non-string scalars are stringified so that hand-edited data files with bare
// numbers or booleans still render: numbers keep their literal text, booleans
// become "true"/"false" and null becomes the empty string.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	out := make(Record, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			out[key] = ""
		case string:
			out[key] = v
		case json.Number:
			out[key] = v.String()
		case bool:
			if v {
				out[key] = "true"
			} else {
				out[key] = "false"
			}
		default:
			return fmt.Errorf("column %q: nested values are not supported", key)
		}
	}
	*r = out
	return nil
}

// Get returns the value of the given column, or the empty string if missing.
func (r Record) Get(column string) string {
	return r[column]
}

// Columns returns the record's column names in sorted order.
// A Record does not remember the order of its JSON keys; use RowKeys on the
// raw input to keep it.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// RowKeys returns the keys of the first object in a JSON array of rows, in the
// order they appear in data. An empty array yields no keys.
func RowKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	if !dec.More() {
		return nil, nil
	}
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ErrNotRowArray
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return ErrNotRowArray
	}
	return nil
}

package model

import (
	"encoding/json"
	"slices"
	"testing"
)

// TestRecordUnmarshalJSON tests that scalar values are stringified.
func TestRecordUnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Record
		wantErr bool
	}{
		{
			name:  "string values are kept verbatim",
			input: `{"date":"12月1日","region":"<strong>美国</strong>"}`,
			want:  Record{"date": "12月1日", "region": "<strong>美国</strong>"},
		},
		{
			name:  "numbers keep their literal text",
			input: `{"amount":12.50,"count":3}`,
			want:  Record{"amount": "12.50", "count": "3"},
		},
		{
			name:  "booleans and null are stringified",
			input: `{"done":true,"late":false,"note":null}`,
			want:  Record{"done": "true", "late": "false", "note": ""},
		},
		{
			name:    "nested objects are rejected",
			input:   `{"impact":{"level":"high"}}`,
			wantErr: true,
		},
		{
			name:    "non-object input is rejected",
			input:   `["a","b"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got Record
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d columns, got %d (%v)", len(tt.want), len(got), got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("column %q: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestRecordGet(t *testing.T) {
	t.Parallel()

	r := Record{"date": "12月1日"}
	if r.Get("date") != "12月1日" {
		t.Errorf("unexpected value: %q", r.Get("date"))
	}
	if r.Get("missing") != "" {
		t.Errorf("expected empty string for missing column, got %q", r.Get("missing"))
	}
}

func TestRecordColumns(t *testing.T) {
	t.Parallel()

	r := Record{"impact": "x", "date": "y", "region": "z"}
	cols := r.Columns()
	want := []string{"date", "impact", "region"}
	if len(cols) != len(want) {
		t.Fatalf("expected %v, got %v", want, cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], cols[i])
		}
	}
}

func TestRowKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    []string
		wantErr bool
	}{
		{name: "document order", data: `[{"region": "a", "date": "b", "cost": 3}]`, want: []string{"region", "date", "cost"}},
		{name: "only the first row counts", data: `[{"b": "1"}, {"a": "2", "b": "3"}]`, want: []string{"b"}},
		{name: "nested values are skipped", data: `[{"z": {"x": 1}, "y": [1, 2]}]`, want: []string{"z", "y"}},
		{name: "duplicate keys once", data: `[{"a": "1", "b": "2", "a": "3"}]`, want: []string{"a", "b"}},
		{name: "empty array", data: `[]`, want: nil},
		{name: "object instead of array", data: `{"a": "1"}`, wantErr: true},
		{name: "array of strings", data: `["a"]`, wantErr: true},
		{name: "malformed", data: `[{"a": `, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RowKeys([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got keys %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("RowKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

package todo

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeTodosEmpty(t *testing.T) {
	for _, input := range [][]Todo{nil, {}} {
		data, err := EncodeTodos(input)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if string(data) != "[]" {
			t.Fatalf("expected [], got %s", data)
		}
	}
}

func TestEncodeTodosFieldNames(t *testing.T) {
	data, err := EncodeTodos([]Todo{{ID: 1, Title: "a", Completed: true}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `[{"id":1,"title":"a","completed":true,"deleted":false}]`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}

func TestDecodeTodos(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    []Todo
		wantErr string
	}{
		{
			name:  "empty",
			input: `[]`,
			want:  []Todo{},
		},
		{
			name:  "flags default to false",
			input: `[{"id":2,"title":"b"},{"id":1,"title":"a","completed":true,"deleted":true}]`,
			want:  []Todo{{ID: 2, Title: "b"}, {ID: 1, Title: "a", Completed: true, Deleted: true}},
		},
		{
			name:  "unknown properties are ignored",
			input: `[{"id":1,"title":"a","color":"red"}]`,
			want:  []Todo{{ID: 1, Title: "a"}},
		},
		{name: "null", input: `null`, wantErr: "validate todos"},
		{name: "object", input: `{"id":1}`, wantErr: "validate todos"},
		{name: "missing title", input: `[{"id":1}]`, wantErr: "validate todos"},
		{name: "fractional id", input: `[{"id":1.5,"title":"a"}]`, wantErr: "validate todos"},
		{name: "zero id", input: `[{"id":0,"title":"a"}]`, wantErr: "validate todos"},
		{name: "string flag", input: `[{"id":1,"title":"a","deleted":"yes"}]`, wantErr: "validate todos"},
		{name: "truncated", input: `[{"id":1`, wantErr: "parse todos"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeTodos([]byte(tc.input))
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestDecodeTodosRejectsDuplicateIDs(t *testing.T) {
	_, err := DecodeTodos([]byte(`[{"id":3,"title":"a"},{"id":3,"title":"b"}]`))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

package main

import (
	"bytes"
	"testing"

	"github.com/amonks/tasklist/todo"
)

func TestResolveTitleFromStdin(t *testing.T) {
	cases := []struct {
		name  string
		title string
		in    string
		want  string
	}{
		{name: "stdin with newline", title: "-", in: "Buy milk\n", want: "Buy milk"},
		{name: "stdin with crlf", title: "-", in: "Buy milk\r\n", want: "Buy milk"},
		{name: "stdin without newline", title: "-", in: "No newline", want: "No newline"},
		{name: "only the first line", title: "-", in: "first\nsecond\n", want: "first"},
		{name: "literal title", title: "Already set", in: "ignored", want: "Already set"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveTitleFromStdin(tc.title, bytes.NewBufferString(tc.in))
			if err != nil {
				t.Fatalf("resolveTitleFromStdin failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatTodoTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	todos := []todo.Todo{
		{ID: 3, Title: "walk\nthe dog"},
		{ID: 2, Title: "buy milk", Completed: true},
		{ID: 1, Title: "old", Deleted: true},
	}

	tests := []struct {
		name    string
		version todo.Version
		want    string
	}{
		{
			name:    "without flags",
			version: todo.Version1,
			want:    "ID  TITLE\n3   walk the dog\n2   buy milk\n1   old\n",
		},
		{
			name:    "with flags",
			version: todo.Version3,
			want: "ID  DONE  STATE    TITLE\n" +
				"3   [ ]   current  walk the dog\n" +
				"2   [x]   current  buy milk\n" +
				"1   [ ]   trash    old\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatTodoTable(todos, tt.version); got != tt.want {
				t.Fatalf("formatTodoTable() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "todo", "todos"); got != "todo" {
		t.Fatalf("expected singular, got %q", got)
	}
	if got := plural(0, "todo", "todos"); got != "todos" {
		t.Fatalf("expected plural, got %q", got)
	}
}

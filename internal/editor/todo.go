package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/amonks/tasklist/todo"
)

// TodoData represents the data used to render the TOML template.
type TodoData struct {
	ID        int
	Title     string
	Completed bool
	Deleted   bool

	// HasFlags is false at version 1, where only the title is editable.
	HasFlags bool
}

// DataFromTodo creates TodoData from an existing todo for editing.
func DataFromTodo(t todo.Todo, version todo.Version) TodoData {
	return TodoData{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		Deleted:   t.Deleted,
		HasFlags:  version.HasFlags(),
	}
}

var todoTemplate = template.Must(template.New("todo").Parse(`# todo {{ .ID }}
title = {{ printf "%q" .Title }}
{{- if .HasFlags }}
completed = {{ .Completed }}
deleted = {{ .Deleted }} # deleted todos move to the trash
{{- end }}
`))

// RenderTodoTOML renders the todo data as a TOML string for editing.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo represents the parsed result from the TOML editor output.
// Nil flags were left out of the file and stay unchanged.
type ParsedTodo struct {
	Title     string `toml:"title"`
	Completed *bool  `toml:"completed"`
	Deleted   *bool  `toml:"deleted"`
}

// ParseTodoTOML parses the TOML content from the editor.
func ParseTodoTOML(content string) (*ParsedTodo, error) {
	var parsed ParsedTodo
	meta, err := toml.Decode(content, &parsed)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if !meta.IsDefined("title") {
		return nil, fmt.Errorf("missing title")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return &parsed, nil
}

// ApplyTo replays the edit through e as individual gestures, in an order
// that lets a title change land on a todo that is being un-completed or
// restored in the same edit. It reports whether anything changed.
func (p *ParsedTodo) ApplyTo(e *todo.Editor, existing todo.Todo) bool {
	changed := false
	current := existing

	if p.Deleted != nil && !*p.Deleted && current.Deleted {
		changed = e.ToggleDeleted(current.ID) || changed
		current.Deleted = false
	}
	if p.Completed != nil && !*p.Completed && current.Completed {
		changed = e.ToggleCompleted(current.ID) || changed
		current.Completed = false
	}
	if p.Title != current.Title {
		changed = e.Edit(current.ID, p.Title) || changed
	}
	if p.Completed != nil && *p.Completed && !current.Completed {
		changed = e.ToggleCompleted(current.ID) || changed
	}
	if p.Deleted != nil && *p.Deleted && !current.Deleted {
		changed = e.ToggleDeleted(current.ID) || changed
	}
	return changed
}

func createTodoTempFile() (*os.File, error) {
	return os.CreateTemp("", "tasks-todo-*.toml")
}

// EditTodo opens the editor for a todo and returns the parsed result.
func EditTodo(existing todo.Todo, version todo.Version) (*ParsedTodo, error) {
	return EditTodoWithData(DataFromTodo(existing, version))
}

// EditTodoWithData opens the editor with pre-populated data and returns the parsed result.
func EditTodoWithData(data TodoData) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTodoTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTodoTOML(string(edited))
}

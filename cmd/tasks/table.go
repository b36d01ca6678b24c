package main

import (
	"strconv"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/todo"
)

// formatTodoTable renders todos as a table. The DONE and STATE columns
// only appear once the version has flags.
func formatTodoTable(todos []todo.Todo, version todo.Version) string {
	headers := []string{"ID", "TITLE"}
	if version.HasFlags() {
		headers = []string{"ID", "DONE", "STATE", "TITLE"}
	}
	for i, header := range headers {
		headers[i] = ui.Bold(header)
	}

	builder := ui.NewTableBuilder(headers, len(todos))
	for _, t := range todos {
		title := ui.TruncateTableCell(internalstrings.OneLine(t.Title))
		if !version.HasFlags() {
			builder.AddRow([]string{strconv.Itoa(t.ID), title})
			continue
		}

		done := "[ ]"
		if t.Completed {
			done = "[x]"
			title = ui.Strike(title)
		}
		state := "current"
		if t.Deleted {
			state = "trash"
			title = ui.Dim(title)
		}
		builder.AddRow([]string{strconv.Itoa(t.ID), done, state, title})
	}
	return builder.String()
}

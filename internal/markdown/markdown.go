// Package markdown renders todo checklists for the terminal.
package markdown

import (
	"fmt"
	"strings"
	"sync"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/todo"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Checklist returns the markdown source of a task checklist headed by the
// filter label. Titles are escaped so they render literally.
func Checklist(todos []todo.Todo, filter todo.Filter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", filter.Label())
	if len(todos) == 0 {
		b.WriteString("_No tasks._\n")
		return b.String()
	}
	for _, t := range todos {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		title := internalstrings.EscapeMarkdownInline(internalstrings.OneLine(t.Title))
		if title == "" {
			title = "_(untitled)_"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", mark, title)
	}
	return b.String()
}

// Render formats markdown text for terminal output.
func Render(width, indent int, input []byte) []byte {
	return SafeRender(width, indent, input)
}

// SafeRender is Render that falls back to the unformatted input when the
// renderer fails or panics.
func SafeRender(width, indent int, input []byte) []byte {
	if len(input) == 0 {
		return nil
	}
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if width < 1 {
		width = 1
	}
	if indent < 0 {
		indent = 0
	}
	renderWidth := width - indent
	if renderWidth < 1 {
		renderWidth = 1
	}

	rendered := value
	if formatted, ok := renderWith(markdownRenderer(renderWidth), value); ok {
		rendered = formatted
	}
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if strings.TrimSpace(rendered) == "" {
		return nil
	}
	if indent <= 0 {
		return []byte(rendered)
	}
	return []byte(indentBlock(rendered, indent))
}

func renderWith(r renderer, value string) (out string, ok bool) {
	if r == nil {
		return "", false
	}
	defer func() {
		if recover() != nil {
			out, ok = "", false
		}
	}()
	formatted, err := r.Render(value)
	if err != nil {
		return "", false
	}
	return formatted, true
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

func indentBlock(value string, spaces int) string {
	if spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Package tasktui is the terminal interface for a todo list.
package tasktui

import (
	"context"
	"fmt"
	"strings"

	internalstrings "github.com/amonks/tasklist/internal/strings"
	"github.com/amonks/tasklist/todo"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

type inputMode int

const (
	modeList inputMode = iota
	modeCreate
	modeEdit
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type model struct {
	editor *todo.Editor
	width  int
	height int

	mode      inputMode
	cursor    int
	newTodo   textinput.Model
	title     textinput.Model
	editingID int

	status      string
	statusLevel statusLevel
}

// Run shows the terminal UI until the user quits or ctx is done.
func Run(ctx context.Context, editor *todo.Editor) error {
	if editor == nil {
		return fmt.Errorf("todo editor is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(editor), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(editor *todo.Editor) model {
	newTodo := textinput.New()
	newTodo.Prompt = "+ "
	newTodo.Placeholder = "What needs doing?"
	newTodo.SetValue(editor.Input())

	title := textinput.New()
	title.Prompt = ""

	return model{
		editor:  editor,
		newTodo: newTodo,
		title:   title,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.newTodo.Width = max(msg.Width-4, 1)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeCreate:
			return m.updateCreate(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.cycleFilter(1)
	case "shift+tab":
		m.cycleFilter(-1)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.editor.Rows())-1 {
			m.cursor++
		}
	case "a":
		if !m.editor.FormVisible() {
			m.setStatus("Switch to all or current tasks to add one", statusError)
			return m, nil
		}
		m.mode = modeCreate
		return m, m.newTodo.Focus()
	case " ", "space":
		if row, ok := m.selectedRow(); ok && !m.editor.ToggleCompleted(row.Todo.ID) && m.editor.Version().HasFlags() {
			m.setStatus("Restore the task before completing it", statusError)
		}
	case "d":
		if row, ok := m.selectedRow(); ok && m.editor.ToggleDeleted(row.Todo.ID) {
			if row.Todo.Deleted {
				m.setStatus("Restored task", statusInfo)
			} else {
				m.setStatus("Moved task to trash", statusInfo)
			}
		}
	case "e":
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		if !row.CanEdit {
			m.setStatus("Completed and deleted tasks are read-only", statusError)
			return m, nil
		}
		m.mode = modeEdit
		m.editingID = row.Todo.ID
		m.title.SetValue(row.Todo.Title)
		m.title.CursorEnd()
		return m, m.title.Focus()
	case "X":
		if !m.editor.TrashVisible() {
			m.setStatus("Open the trash to empty it", statusError)
			return m, nil
		}
		removed := m.editor.EmptyTrash()
		m.setStatus(fmt.Sprintf("Removed %d %s", removed, plural(removed, "task", "tasks")), statusInfo)
	}
	m.clampCursor()
	return m, nil
}

func (m model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.newTodo.Blur()
		return m, nil
	case "enter":
		m.editor.SetInput(m.newTodo.Value())
		if created, ok := m.editor.Submit(); ok {
			m.setStatus(fmt.Sprintf("Added task %d", created.ID), statusInfo)
			m.cursor = 0
		}
		m.newTodo.SetValue(m.editor.Input())
		return m, nil
	}
	var cmd tea.Cmd
	m.newTodo, cmd = m.newTodo.Update(msg)
	m.editor.SetInput(m.newTodo.Value())
	return m, cmd
}

func (m model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.mode = modeList
		m.title.Blur()
		m.editingID = 0
		m.clampCursor()
		return m, nil
	}
	before := m.title.Value()
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	if after := m.title.Value(); after != before {
		m.editor.Edit(m.editingID, after)
	}
	return m, cmd
}

func (m *model) cycleFilter(delta int) {
	if !m.editor.Version().HasFlags() {
		return
	}
	filters := todo.ValidFilters()
	current := 0
	for i, f := range filters {
		if f == m.editor.Filter() {
			current = i
			break
		}
	}
	next := (current + delta + len(filters)) % len(filters)
	m.editor.SelectFilter(filters[next])
	m.cursor = 0
}

func (m model) selectedRow() (todo.Row, bool) {
	rows := m.editor.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return todo.Row{}, false
	}
	return rows[m.cursor], true
}

func (m *model) clampCursor() {
	count := len(m.editor.Rows())
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) setStatus(message string, level statusLevel) {
	m.status = message
	m.statusLevel = level
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	if m.editor.FormVisible() {
		b.WriteString(m.newTodo.View())
		b.WriteString("\n\n")
	}
	if m.editor.TrashVisible() {
		b.WriteString(valueMuted.Render("Press X to empty the trash"))
		b.WriteString("\n\n")
	}

	rows := m.editor.Rows()
	if len(rows) == 0 {
		b.WriteString(valueMuted.Render("No tasks."))
		b.WriteString("\n")
	}
	for i, row := range rows {
		b.WriteString(m.renderRow(i, row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())
	if status := m.renderStatusLine(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}
	return b.String()
}

func (m model) renderFilters() string {
	if !m.editor.Version().HasFlags() {
		return titleStyle.Render("Tasks")
	}
	tabs := make([]string, 0, len(todo.ValidFilters()))
	for _, f := range todo.ValidFilters() {
		style := tabInactiveStyle
		if f == m.editor.Filter() {
			style = tabActiveStyle
		}
		tabs = append(tabs, style.Render(f.Label()))
	}
	return tabBarStyle.Render(strings.Join(tabs, " "))
}

func (m model) renderRow(index int, row todo.Row) string {
	marker := "  "
	if index == m.cursor {
		marker = selectedStyle.Render("> ")
	}
	prefix := marker
	if m.editor.Version().HasFlags() {
		check := "[ ] "
		if row.Todo.Completed {
			check = "[x] "
		}
		prefix += check
	}

	if m.mode == modeEdit && row.Todo.ID == m.editingID {
		return prefix + m.title.View()
	}

	title := internalstrings.OneLine(row.Todo.Title)
	if title == "" {
		title = valueMuted.Render("(untitled)")
	}
	prefixWidth := 2
	if m.editor.Version().HasFlags() {
		prefixWidth = 6
	}
	if wrapWidth := m.width - prefixWidth; wrapWidth > 10 {
		title = strings.ReplaceAll(wordwrap.String(title, wrapWidth), "\n", "\n"+strings.Repeat(" ", prefixWidth))
	}
	if row.Todo.Completed {
		title = completedStyle.Render(title)
	}
	line := prefix + title
	if row.CanToggleDeleted {
		line += "  " + valueMuted.Render("("+row.DeleteLabel+")")
	}
	return line
}

func (m model) renderHelpLine() string {
	var parts []string
	switch m.mode {
	case modeCreate:
		parts = []string{"enter add", "esc done"}
	case modeEdit:
		parts = []string{"type to edit", "enter/esc done"}
	default:
		if m.editor.Version().HasFlags() {
			parts = append(parts, "tab filter")
		}
		if m.editor.FormVisible() {
			parts = append(parts, "a add")
		}
		parts = append(parts, "e edit")
		if m.editor.Version().HasFlags() {
			parts = append(parts, "space done", "d delete/restore")
		}
		if m.editor.TrashVisible() {
			parts = append(parts, "X empty trash")
		}
		parts = append(parts, "q quit")
	}
	return valueMuted.Render(strings.Join(parts, " · "))
}

func (m model) renderStatusLine() string {
	if m.status == "" {
		return ""
	}
	switch m.statusLevel {
	case statusError:
		return statusErrorStyle.Render(m.status)
	case statusInfo:
		return statusSuccessStyle.Render(m.status)
	}
	return m.status
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

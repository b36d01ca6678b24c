package markdown

import (
	"errors"
	"strings"
	"testing"

	"github.com/amonks/tasklist/todo"
)

type panicRenderer struct{}

func (panicRenderer) Render(string) (string, error) {
	panic("boom")
}

type failingRenderer struct{}

func (failingRenderer) Render(string) (string, error) {
	return "", errors.New("nope")
}

func withRenderer(t *testing.T, width int, r renderer) {
	t.Helper()
	rendererMu.Lock()
	prev, hadPrev := renderers[width]
	renderers[width] = r
	rendererMu.Unlock()

	t.Cleanup(func() {
		rendererMu.Lock()
		if hadPrev {
			renderers[width] = prev
		} else {
			delete(renderers, width)
		}
		rendererMu.Unlock()
	})
}

func TestSafeRender_RecoversFromRendererPanic(t *testing.T) {
	withRenderer(t, 20, panicRenderer{})

	out := SafeRender(20, 0, []byte("hello\n"))
	if string(out) != "hello" {
		t.Fatalf("expected fallback to original markdown, got %q", string(out))
	}
}

func TestSafeRender_FallsBackOnError(t *testing.T) {
	withRenderer(t, 21, failingRenderer{})

	out := SafeRender(21, 2, []byte("a\nb"))
	if string(out) != "  a\n  b" {
		t.Fatalf("expected indented fallback, got %q", string(out))
	}
}

func TestSafeRender_Empty(t *testing.T) {
	if out := SafeRender(80, 0, []byte(" \n\n")); out != nil {
		t.Fatalf("expected nil for blank input, got %q", out)
	}
}

func TestChecklist(t *testing.T) {
	todos := []todo.Todo{
		{ID: 2, Title: "b *bold*", Completed: true},
		{ID: 1, Title: "a\nline"},
		{ID: 3, Title: ""},
	}

	got := Checklist(todos, todo.FilterAll)
	want := "## All tasks\n\n" +
		"- [x] b \\*bold\\*\n" +
		"- [ ] a line\n" +
		"- [ ] _(untitled)_\n"
	if got != want {
		t.Fatalf("unexpected checklist:\n%s\nwant:\n%s", got, want)
	}
}

func TestChecklist_Empty(t *testing.T) {
	got := Checklist(nil, todo.FilterDeleted)
	if !strings.HasPrefix(got, "## Trash\n") || !strings.Contains(got, "No tasks.") {
		t.Fatalf("unexpected empty checklist %q", got)
	}
}

func TestRenderChecklist(t *testing.T) {
	out := string(Render(80, 0, []byte(Checklist([]todo.Todo{{ID: 1, Title: "buy milk"}}, todo.FilterAll))))
	if !strings.Contains(out, "buy milk") || !strings.Contains(out, "All tasks") {
		t.Fatalf("expected rendered checklist to mention title and heading, got %q", out)
	}
}

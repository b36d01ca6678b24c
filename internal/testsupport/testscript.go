package testsupport

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/amonks/tasklist/internal/kv"
	"github.com/amonks/tasklist/internal/todoenv"
	"github.com/amonks/tasklist/todo"
	"github.com/rogpeppe/go-internal/testscript"
)

// SetupScriptEnv gives each script its own HOME, so the file backend writes
// under $WORK/home/.local/state/tasklist, and clears every setting that
// would leak in from the developer's environment.
func SetupScriptEnv(env *testscript.Env) error {
	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("STATE", filepath.Join(homeDir, ".local", "state", "tasklist"))
	env.Setenv("EDITOR", "")
	env.Setenv("VISUAL", "")
	env.Setenv("NO_COLOR", "1")
	env.Setenv(todoenv.KeyEnvVar, "")
	env.Setenv(todoenv.BackendEnvVar, "")
	return nil
}

// ScriptCmds returns the custom commands available to tasks scripts.
func ScriptCmds() map[string]func(ts *testscript.TestScript, neg bool, args []string) {
	return map[string]func(ts *testscript.TestScript, neg bool, args []string){
		"todoid": CmdTodoID,
		"stored": CmdStored,
	}
}

// CmdTodoID finds a todo by title in a `tasks list --json` dump and stores
// its ID in an env var.
func CmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todoid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todoid FILE TITLE VAR")
	}

	items, err := todo.DecodeTodos([]byte(ts.ReadFile(args[0])))
	if err != nil {
		ts.Fatalf("parse todo list: %v", err)
	}
	for _, item := range items {
		if item.Title == args[1] {
			ts.Setenv(args[2], strconv.Itoa(item.ID))
			return
		}
	}
	ts.Fatalf("todo with title %q not found", args[1])
}

// CmdStored reads the collection the file backend in DIR keeps under KEY
// and compares its titles, newest first, with the remaining arguments.
// Negated, it checks that KEY holds nothing.
func CmdStored(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 2 {
		ts.Fatalf("usage: stored DIR KEY [TITLE...]")
	}

	data, found, err := kv.NewFile(ts.MkAbs(args[0])).Get(context.Background(), args[1])
	if err != nil {
		ts.Fatalf("read %s: %v", args[1], err)
	}
	if neg {
		if found {
			ts.Fatalf("expected nothing stored under %s, got %s", args[1], data)
		}
		return
	}
	if !found {
		ts.Fatalf("nothing stored under %s", args[1])
	}

	items, err := todo.DecodeTodos(data)
	if err != nil {
		ts.Fatalf("decode %s: %v", args[1], err)
	}
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.Title
	}
	got, want := strings.Join(titles, ", "), strings.Join(args[2:], ", ")
	if got != want {
		ts.Fatalf("stored titles under %s: got [%s], want [%s]", args[1], got, want)
	}
}

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amonks/tasklist/internal/editor"
	"github.com/amonks/tasklist/internal/listflags"
	"github.com/amonks/tasklist/internal/markdown"
	"github.com/amonks/tasklist/todo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// add
var addCmd = &cobra.Command{
	Use:   "add <title>...",
	Short: "Add a todo (use - to read the title from stdin)",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

// list
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listFilter   filterFlag
	listAll      bool
	listJSON     bool
	listMarkdown bool
)

// edit
var editCmd = &cobra.Command{
	Use:   "edit <id> [title]...",
	Short: "Change a todo's title, or open it in $EDITOR",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEdit,
}

// set
var setCmd = &cobra.Command{
	Use:   "set <id> <field> <value>",
	Short: "Set one field of a todo (title, completed, deleted)",
	Args:  cobra.ExactArgs(3),
	RunE:  runSet,
}

// check
var checkCmd = &cobra.Command{
	Use:     "check <id>",
	Aliases: []string{"uncheck", "toggle"},
	Short:   "Toggle whether a todo is completed",
	Args:    cobra.ExactArgs(1),
	RunE:    runCheck,
}

// trash
var trashCmd = &cobra.Command{
	Use:     "trash <id>",
	Aliases: []string{"delete", "restore"},
	Short:   "Move a todo to the trash, or restore it",
	Args:    cobra.ExactArgs(1),
	RunE:    runTrash,
}

// empty-trash
var emptyTrashCmd = &cobra.Command{
	Use:   "empty-trash",
	Short: "Permanently remove every todo in the trash",
	Args:  cobra.NoArgs,
	RunE:  runEmptyTrash,
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, editCmd, setCmd, checkCmd, trashCmd, emptyTrashCmd)

	listCmd.Flags().Var(&listFilter, "filter", "Filter (all, completed, unchecked, deleted)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listMarkdown, "markdown", false, "Output as a rendered markdown checklist")
	listflags.AddAllFlag(listCmd, &listAll)
	listCmd.MarkFlagsMutuallyExclusive("json", "markdown")
	listCmd.MarkFlagsMutuallyExclusive("all", "filter")
	setFlagAliases(listCmd.Flags(), listFlagAliases)
}

// withSession opens a session, runs fn and closes the session, flushing
// every change fn made.
func withSession(cmd *cobra.Command, opts sessionOptions, fn func(*session) error) (err error) {
	s, err := openSession(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn(s)
}

var mutating = sessionOptions{requirePersistence: true}

func runAdd(cmd *cobra.Command, args []string) error {
	title, err := resolveTitleFromStdin(strings.Join(args, " "), cmd.InOrStdin())
	if err != nil {
		return err
	}
	return withSession(cmd, mutating, func(s *session) error {
		s.editor.SetInput(title)
		created, ok := s.editor.Submit()
		if !ok {
			log.Debug("empty title, nothing added")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), created.ID)
		return nil
	})
}

// resolveTitleFromStdin reads the title from stdin when it is "-".
func resolveTitleFromStdin(title string, stdin io.Reader) (string, error) {
	if title != "-" {
		return title, nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read title from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runList(cmd *cobra.Command, args []string) error {
	return withSession(cmd, sessionOptions{}, func(s *session) error {
		if hasChangedFlags(cmd, "filter") && !s.version.HasFlags() {
			return fmt.Errorf("%w: filters need version 2 or later", todo.ErrInvalidFilter)
		}
		s.editor.SelectFilter(listFilter.Filter())
		visible := s.editor.Visible()
		if listAll {
			visible = s.store.Todos()
		}
		out := cmd.OutOrStdout()

		switch {
		case listJSON:
			if visible == nil {
				visible = []todo.Todo{}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(visible)
		case listMarkdown:
			rendered := markdown.Render(terminalWidth(), 0, []byte(markdown.Checklist(visible, s.editor.Filter())))
			_, err := fmt.Fprintln(out, string(rendered))
			return err
		}

		if len(visible) == 0 {
			fmt.Fprintln(out, "No tasks.")
			return nil
		}
		fmt.Fprint(out, formatTodoTable(visible, s.version))
		return nil
	})
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := todo.ParseID(args[0])
	if err != nil {
		return err
	}
	return withSession(cmd, mutating, func(s *session) error {
		existing, ok := s.store.Get(id)
		if !ok {
			log.WithField("id", id).Warn("no such todo")
			return nil
		}

		if len(args) > 1 {
			title := strings.Join(args[1:], " ")
			if !s.editor.Edit(id, title) && title != existing.Title {
				log.WithField("id", id).Warn("completed and deleted todos are read-only")
			}
			return nil
		}

		if !editor.IsInteractive() {
			return fmt.Errorf("a title is required when not running interactively")
		}
		parsed, err := editor.EditTodo(existing, s.version)
		if err != nil {
			return err
		}
		if !parsed.ApplyTo(s.editor, existing) {
			log.WithField("id", id).Info("todo unchanged")
		}
		return nil
	})
}

func runSet(cmd *cobra.Command, args []string) error {
	id, err := todo.ParseID(args[0])
	if err != nil {
		return err
	}
	field, err := todo.ParseField(args[1])
	if err != nil {
		return err
	}
	return withSession(cmd, mutating, func(s *session) error {
		applied, err := s.editor.UpdateField(id, field, args[2])
		if err != nil {
			return err
		}
		if applied {
			return nil
		}
		if _, ok := s.store.Get(id); !ok {
			log.WithField("id", id).Warn("no such todo")
			return nil
		}
		log.WithFields(log.Fields{"id": id, "field": field}).Warn("field is read-only for this todo")
		return nil
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	id, err := todo.ParseID(args[0])
	if err != nil {
		return err
	}
	return withSession(cmd, mutating, func(s *session) error {
		if !s.editor.ToggleCompleted(id) {
			log.WithField("id", id).Warn("todo not found or in the trash")
		}
		return nil
	})
}

func runTrash(cmd *cobra.Command, args []string) error {
	id, err := todo.ParseID(args[0])
	if err != nil {
		return err
	}
	return withSession(cmd, mutating, func(s *session) error {
		existing, ok := s.store.Get(id)
		if !ok {
			log.WithField("id", id).Warn("no such todo")
			return nil
		}
		// "restore" only restores and "delete"/"trash" only delete, so
		// repeating a command never flips a todo back.
		wantDeleted := cmd.CalledAs() != "restore"
		if existing.Deleted == wantDeleted {
			return nil
		}
		s.editor.ToggleDeleted(id)
		return nil
	})
}

func runEmptyTrash(cmd *cobra.Command, args []string) error {
	return withSession(cmd, mutating, func(s *session) error {
		s.editor.SelectFilter(todo.FilterDeleted)
		removed := s.editor.EmptyTrash()
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s\n", removed, plural(removed, "todo", "todos"))
		return nil
	})
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

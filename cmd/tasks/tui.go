package main

import (
	"errors"
	"fmt"

	"github.com/amonks/tasklist/internal/editor"
	"github.com/amonks/tasklist/internal/tasktui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Edit the todo list in a terminal UI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !editor.IsInteractive() {
		return fmt.Errorf("tui requires an interactive terminal")
	}
	return withSession(cmd, sessionOptions{}, func(s *session) error {
		err := tasktui.Run(cmd.Context(), s.editor)
		if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			return nil
		}
		return err
	})
}

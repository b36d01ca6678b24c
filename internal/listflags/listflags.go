// Package listflags holds flags shared by commands that print todos.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag that includes todos in the trash.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("all", false, "Include todos in the trash")
		return
	}

	cmd.Flags().BoolVar(target, "all", false, "Include todos in the trash")
}

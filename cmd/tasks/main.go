// Package main implements the tasks CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tasks",
	Short: "A small todo list with a trash, for the terminal and the browser",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configureLogging(globalLogLevel)
	},
	SilenceUsage: true,
}

var (
	globalBackend  string
	globalKey      string
	globalDir      string
	globalVersion  versionFlag
	globalLogLevel string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalBackend, "backend", "", "Storage backend (memory, file, redis, mysql)")
	flags.StringVar(&globalKey, "key", "", "Key the list is stored under")
	flags.StringVar(&globalDir, "dir", "", "Directory for the file backend")
	flags.Var(&globalVersion, "version-level", "Capability level (1, 2 or 3)")
	flags.StringVar(&globalLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// configureLogging sends logs to stderr so stdout stays parseable. An empty
// level leaves the decision to the config file, which is read later.
func configureLogging(level string) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if strings.TrimSpace(level) == "" {
		return nil
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(parsed)
	return nil
}

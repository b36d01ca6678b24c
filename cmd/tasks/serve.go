package main

import (
	"fmt"
	"net"

	"github.com/amonks/tasklist/web"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the todo list in the browser",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	return withSession(cmd, sessionOptions{}, func(s *session) error {
		addr := serveAddr
		if addr == "" {
			addr = s.cfg.Web.Addr
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}

		logger := log.WithField("component", "server")
		handler := web.NewHandler(web.Options{Editor: s.editor, Logger: log.StandardLogger()})
		fmt.Fprintf(cmd.OutOrStdout(), "Serving tasks at http://%s\n", ln.Addr())
		return web.Serve(cmd.Context(), ln, handler, logger)
	})
}

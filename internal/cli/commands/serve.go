package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/jobdeck/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var (
		port     int
		dataPath string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the mock API server",
		Long: `Run a local HTTP server exposing the portal API: paginated,
searchable, sortable list endpoints plus a full-dataset export.

By default it serves the embedded fixtures. Point --data at a YAML dataset to
serve your own; with --watch the server reloads the file on change and pings
connected SSE clients.`,
		Example: `  # Serve the embedded fixtures on the default port
  jobdeck serve

  # Serve a custom dataset and reload it on edit
  jobdeck serve --data ./team-dataset.yaml --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			if port == 0 {
				port = cc.Cfg.ServePort
			}

			srv, err := server.New(server.Config{
				Port:     port,
				DataPath: dataPath,
				Watch:    watch,
				Logger:   cc.Logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Serve(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVar(&dataPath, "data", "", "YAML dataset to serve instead of the embedded fixtures")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload --data on change and notify SSE clients")

	return cmd
}

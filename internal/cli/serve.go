package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string

	// Ready, if set, receives the bound address once listening (for testing).
	Ready chan<- string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the question API over HTTP",
		Long: `Serve answers questions over HTTP until interrupted.

Endpoints:
  POST /ask      {"question": "..."}
  GET  /healthz
  GET  /metrics

Examples:
  airq serve
  airq serve --addr 127.0.0.1:9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	return withApp(cmd, opts.RootOptions, func(app *App) error {
		addr := app.Config.ListenAddr
		if opts.Addr != "" {
			addr = opts.Addr
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to listen", err)
		}

		srv := &http.Server{
			Handler:           NewRouter(app.Service, app.Store, app.Registry, app.Logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		app.Logger.Info("server starting", "addr", ln.Addr().String(), "data_dir", app.Config.DataDir)
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", ln.Addr())
		if opts.Ready != nil {
			opts.Ready <- ln.Addr().String()
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Serve(ln)
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return WrapExitError(ExitFailure, "server failed", err)
			}
			return nil
		case <-cmd.Context().Done():
		}

		app.Logger.Info("server stopping")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return WrapExitError(ExitFailure, "shutdown failed", err)
		}
		return nil
	})
}

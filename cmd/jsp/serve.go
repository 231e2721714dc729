package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jacksparrot/jsp/internal/messages"
	"github.com/jacksparrot/jsp/internal/server"
)

// signalContext is a test seam.
var signalContext = func(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   messages.ServeUse,
		Short: messages.ServeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, flags, func(a *app) error {
				if addr == "" {
					addr = a.cfg.Serve.Addr
				}
				ctx, stop := signalContext(cmd.Context())
				defer stop()
				srv := server.New(a.session, a.cfg.Manifest.URL, a.log)
				return srv.ListenAndServe(ctx, addr, func(bound net.Addr) {
					a.infof(messages.ServeListeningFmt, bound.String())
				})
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", messages.FlagAddr)
	return cmd
}

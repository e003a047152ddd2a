package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"remi/internal/logging"
	"remi/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		Long: `Serve exposes the assistant over HTTP: POST /api/owners/:id/messages for
turns, GET /ws/:id for the notification socket, plus task, habit, and
scheduler status reads.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
	cmd.Flags().String("host", "", "listen host (overrides config)")
	cmd.Flags().Int("port", 0, "listen port (overrides config)")
	_ = viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func runServe() error {
	hub := server.NewHub(logging.NewComponentLogger("hub"))

	rt, err := buildRuntime(hub)
	if err != nil {
		return err
	}
	defer rt.shutdown()

	if host := viper.GetString("server.host"); host != "" {
		rt.cfg.Server.Host = host
	}
	if port := viper.GetInt("server.port"); port != 0 {
		rt.cfg.Server.Port = port
	}

	srv := server.New(rt.cfg.Server, rt.engine, hub, rt.store, rt.registry, logging.NewComponentLogger("server"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	fmt.Printf("remi serving on %s:%d\n", rt.cfg.Server.Host, rt.cfg.Server.Port)
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

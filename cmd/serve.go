package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cloudchase/sampling-visualizer/api"
	"github.com/cloudchase/sampling-visualizer/engine"
)

type serveCommander struct {
	g    *globalFlags
	addr string
}

func newServeCmd(g *globalFlags) *cobra.Command {
	cmder := &serveCommander{g: g}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the sampling-visualizer HTTP API server for distribution and scenario requests.",
		Args:  cobra.NoArgs,
		RunE:  cmder.run,
	}

	cmd.Flags().StringVar(&cmder.addr, "addr", "", "Address to listen on (default from config, :7860)")

	return cmd
}

func (c *serveCommander) run(cmd *cobra.Command, _ []string) error {
	e, err := c.g.load(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.log.Sync() }()

	addr := e.cfg.Server.Addr
	if c.addr != "" {
		addr = c.addr
	}

	srv := api.NewServer(engine.New(), e.manager, e.cfg.Defaults, addr, e.log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		e.log.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			e.log.Error("shutdown failed", zap.Error(err))
		}
	}()

	return srv.Start()
}

package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/artifact-tracker/internal/errors"
	v1 "github.com/KirkDiggler/artifact-tracker/internal/handlers/tracker/v1"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(o *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker over gRPC",
		Long:  `Serve starts the tracker gRPC service along with the health and reflection services.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				o.cfg.GRPCPort = port
			}
			return runServer(cmd.Context(), o)
		},
	}
	cmd.Flags().IntVar(&port, "port", 50051, "gRPC server port")
	return cmd
}

func runServer(parent context.Context, o *rootOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := o.logger
	a, err := openApp(ctx, o.cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	handler, err := v1.NewHandler(&v1.HandlerConfig{
		TrackerService: a.tracker,
		Logger:         logger.Named("grpc"),
	})
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", o.cfg.GRPCPort))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to listen").
			WithMeta("port", o.cfg.GRPCPort)
	}

	srv, healthServer := v1.NewServer(handler, logger.Named("grpc"))

	errChan := make(chan error, 1)
	go func() {
		logger.Info("gRPC server starting", zap.Int("port", o.cfg.GRPCPort))
		if err := srv.Serve(lis); err != nil {
			errChan <- errors.Wrap(err, "failed to serve")
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down gRPC server")
		healthServer.Shutdown()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(shutdownTimeout):
			logger.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			logger.Info("server stopped gracefully")
		}
		return nil
	case err := <-errChan:
		return err
	}
}

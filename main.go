package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dealerdesk/dealerdesk/pkg/config"
	"github.com/dealerdesk/dealerdesk/pkg/utils"
)

func main() {
	// Initialize logging system
	utils.InitLogger()
	logger := utils.GetLogger()

	if path, err := config.EnsureDefaultConfig(); err != nil {
		logger.Warn("could not write default config", "error", err)
	} else {
		logger.Info("using config", "path", path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := NewServer()
	if err != nil {
		logger.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	if err := server.Start(ctx); err != nil {
		logger.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	// Block until shutdown is requested.
	<-ctx.Done()
	logger.Info("shutting down")
}

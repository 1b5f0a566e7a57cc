package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tunedeck.org/tunedeck/internal/api"
	"tunedeck.org/tunedeck/internal/backup"
	"tunedeck.org/tunedeck/internal/store"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long:  `Start the HTTP API server with Echo framework`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	st, err := store.New(cfg.Store.ContentRoot)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}

	server := api.New(cfg, st)

	var scheduler *backup.Scheduler
	if cfg.Backup.AutoEnabled {
		scheduler = backup.NewScheduler(server.Backups(), cfg.Backup.Interval)
		scheduler.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("\nShutdown signal received")

		if scheduler != nil {
			scheduler.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

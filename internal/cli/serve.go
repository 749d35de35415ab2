package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paperdeck/paperdeck/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8750", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	eng, st, cfgMgr, err := openEngine()
	if err != nil {
		return err
	}

	// Take a scheduled backup when one is overdue.
	cfg, err := cfgMgr.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.BackupDue(time.Now()) {
		if path, err := st.CreateBackup(""); err != nil {
			fmt.Fprintf(os.Stderr, "warning: scheduled backup failed: %v\n", err)
		} else {
			if err := cfgMgr.MarkBackup(time.Now()); err != nil {
				fmt.Fprintf(os.Stderr, "warning: record backup time: %v\n", err)
			}
			fmt.Fprintf(os.Stderr, "  backup: %s\n", path)
		}
	}

	srv := server.New(st, eng, cfgMgr, VersionString())

	httpServer := &http.Server{
		Addr:    serveAddr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "paperdeck serving on %s\n", serveAddr)
		fmt.Fprintf(os.Stderr, "  store: %s\n", st.Path)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}

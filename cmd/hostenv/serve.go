package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/streamingfast/hostenv"
	"go.uber.org/zap"
)

// serveE runs the HTTP server until interrupted
func serveE(cmd *cobra.Command, args []string) error {
	config, err := hostenv.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	addr, err := cmd.Flags().GetString("listen-addr")
	if err != nil {
		return fmt.Errorf("failed to get listen-addr flag: %w", err)
	}
	if addr == "" {
		addr = config.ListenAddr
	}

	classifier, err := newClassifier(cmd, config)
	if err != nil {
		return err
	}

	server := hostenv.NewServer(addr, classifier)
	if err := server.Listen(); err != nil {
		return err
	}
	server.Serve()
	cmd.Printf("Listening on %s\n", server.Addr())

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		zlog.Info("received signal, stopping", zap.Stringer("signal", sig))
		server.Shutdown(nil)
		<-server.Terminated()
	case <-server.Terminated():
	}

	return server.Err()
}

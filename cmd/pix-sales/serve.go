package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/peterbourgon/ff/v4"

	"github.com/zombor/pix-sales/internal/sales"
	"github.com/zombor/pix-sales/internal/server"
)

func newServeCommand(parent *ff.FlagSet, global *globalFlags) *ff.Command {
	fs := ff.NewFlagSet("serve").SetParent(parent)
	var (
		port     = fs.IntLong("port", 8080, "HTTP server port")
		authUser = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
	)

	return &ff.Command{
		Name:      "serve",
		Usage:     "pix-sales serve [FLAGS]",
		ShortHelp: "Serve the extraction API over HTTP",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			if err := setupLogging(*global.logLevel, *global.logJSON); err != nil {
				return err
			}
			return runServe(ctx, global, *port, server.BasicAuth{Username: *authUser, Password: *authPass})
		},
	}
}

func runServe(ctx context.Context, global *globalFlags, port int, auth server.BasicAuth) error {
	recognizer, status, err := newRecognizer(global)
	if err != nil {
		return err
	}
	defer recognizer.Close()

	if !status.Available {
		// Keep serving: /healthz reports the problem and text extraction still works
		slog.Error("Recognizer unavailable, image uploads will fail", "scanner", status.Backend, "error", status.Detail)
	}

	service := sales.NewService(recognizer, *global.concurrency)
	srv := server.NewServer(service, status, auth)

	addr := fmt.Sprintf(":%d", port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if auth.Username != "" || auth.Password != "" {
		slog.Info("Basic auth enabled", "user", auth.Username)
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("Shutting down...")
		return nil
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for folioadmin, the portfolio content
// administration tool. It serves the HTTP admin API, runs the interactive
// terminal shell and manages the database schema.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"folioadmin/internal/database"
	"folioadmin/internal/handlers"
	"folioadmin/internal/router"
	"folioadmin/internal/shell"
)

var (
	configPath string
	devSeed    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogger installs the default structured logger. Logs go to stderr so
// they never mix with the shell's output.
func setupLogger(dev bool) {
	level := slog.LevelInfo
	if dev {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

var rootCmd = &cobra.Command{
	Use:          "folioadmin",
	Short:        "Portfolio content administration",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the admin API and the public portfolio snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		s := a.services
		adminHandlers := handlers.NewAdmin(s.Projects, s.Experience, s.About, s.Contacts, s.Overview)
		authHandlers := handlers.NewAuth(a.sessions, s.Auth)
		publicHandlers := handlers.NewPublic(s.Overview, a.snapshots)

		r := router.New(a.sessions, adminHandlers, authHandlers, publicHandlers, router.Options{
			CORSOrigins:   a.cfg.CORSOrigins,
			SecureCookies: !a.cfg.IsDev(),
			ImageDir:      a.localImageDir(),
			OnWrite:       a.invalidate,
		})

		srv := &http.Server{
			Addr:         a.cfg.Addr(),
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			slog.Info("server starting", "addr", a.cfg.Addr(), "env", a.cfg.Env, "db", a.cfg.DBDriver)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}
		slog.Info("shutdown signal received")

		// Give active requests up to 30 seconds to complete.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		slog.Info("server stopped")
		return nil
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Manage the portfolio from an interactive terminal session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		sh := shell.New(os.Stdin, os.Stdout, a.services, shell.WithTerminal(int(os.Stdin.Fd())))
		err = sh.Run(ctx)
		// A running server may hold a stale copy of the public snapshot.
		a.invalidate(context.Background())
		return err
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("database schema up to date", "driver", cfg.DBDriver)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default development admin account on an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.Env == "production" {
			return errors.New("refusing to seed the default admin account in production")
		}
		if err := database.Seed(db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file (default $FOLIO_CONFIG)")

	serveCmd.Flags().BoolVar(&devSeed, "dev-seed", false, "Create the default admin account when no users exist")
	shellCmd.Flags().BoolVar(&devSeed, "dev-seed", false, "Create the default admin account when no users exist")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

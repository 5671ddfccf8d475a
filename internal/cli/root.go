// Package cli implements the attendance command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/atempo/attendance-tracker/internal/credential"
	"github.com/atempo/attendance-tracker/internal/model"
	"github.com/atempo/attendance-tracker/internal/remote"
	"github.com/atempo/attendance-tracker/internal/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Local-first time-and-attendance tracking",
	Long: `attendance records check-in/check-out shifts and daily notes in a
local database and reconciles them with the remote store in the
background, so it keeps working offline.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "Config file path")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(shiftCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(signatureCmd)
	rootCmd.AddCommand(logoCmd)
}

// env composes the pieces every command needs: config, local store, and
// an authenticated gateway.
type env struct {
	cfg    *model.AppConfig
	store  *store.SQLiteStore
	client *remote.Client
}

func (e *env) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			log.Warn("closing local store", "err", err)
		}
	}
}

// setup loads config, opens the local database, and builds the gateway
// with any stored session token installed.
func setup() (*env, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}

	s, err := store.NewSQLiteStore(filepath.Join(cfg.DataDir, "attendance.db"))
	if err != nil {
		return nil, err
	}

	client := remote.NewClient(
		cfg.Remote.BaseURL,
		cfg.Remote.AnonKey,
		time.Duration(cfg.Remote.TimeoutSec)*time.Second,
	)
	if token, err := credential.Get(credential.KeyAccessToken); err == nil && token != "" {
		client.SetSession(token)
	}

	return &env{cfg: cfg, store: s, client: client}, nil
}

// requireUser returns the configured user id or an instruction to log in.
func (e *env) requireUser() (string, error) {
	if e.cfg.UserID == "" {
		return "", fmt.Errorf("no user configured; run 'attendance login <email>' first")
	}
	return e.cfg.UserID, nil
}

// Package cmd provides the CLI commands for the CoffreFort client.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	coffrefort "github.com/Azizsaidi66/CoffreFort"
	"github.com/Azizsaidi66/CoffreFort/access"
	"github.com/Azizsaidi66/CoffreFort/accesswindow"
	"github.com/Azizsaidi66/CoffreFort/audit"
	"github.com/Azizsaidi66/CoffreFort/bootstrap"
	"github.com/Azizsaidi66/CoffreFort/config"
	"github.com/Azizsaidi66/CoffreFort/documents"
	"github.com/Azizsaidi66/CoffreFort/gateway"
	"github.com/Azizsaidi66/CoffreFort/metrics"
	"github.com/Azizsaidi66/CoffreFort/session"
	"github.com/Azizsaidi66/CoffreFort/users"
)

var (
	apiURL      string
	sessionFile string
)

var rootCmd = &cobra.Command{
	Use:   "coffrefort",
	Short: "CoffreFort - document vault client",
	Long: `CoffreFort is a client for the CoffreFort document-vault service.

It manages a bearer-token session shared by every invocation and talks
to the remote service for document listing/upload, AI-generated
summaries, user administration, and time-bounded access-window grants.

Configuration:
  Settings come from environment variables with the COFFREFORT_ prefix
  (a .env file in the working directory is honored).
  Example: COFFREFORT_API_URL=http://localhost:8001/api

Commands:
  login       Authenticate and persist the session
  logout      Clear the session
  whoami      Show the current session identity
  docs        List, upload, analyze and summarize documents
  users       Manage accounts (admin)
  access      Check access and grant access windows (admin)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", coffrefort.Reason(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "service base URL (default: COFFREFORT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "session file path (default: COFFREFORT_SESSION_FILE)")
}

// app holds the wired client stack for one command invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *session.FileStore
	ctrl     *access.Controller
	docs     *documents.Service
	users    *users.Service
	windows  *accesswindow.Service
	boot     *bootstrap.Bootstrapper
	auditLog *audit.Logger
}

// newApp composes the SDK from configuration and flags.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}
	if sessionFile != "" {
		cfg.SessionPath = sessionFile
	}

	logger := config.NewLogger(cfg.LogLevel)
	m := metrics.New(cfg.MetricsEnabled)

	auditOpts := []audit.Option{}
	if cfg.AuditStdout {
		auditOpts = append(auditOpts, audit.WithStdoutHandler())
	}
	auditLog := audit.New(0, auditOpts...)

	store := session.NewFileStore(cfg.SessionPath, session.WithLogger(logger))
	gw := gateway.New(cfg.BaseURL, store,
		gateway.WithTimeout(cfg.Timeout),
		gateway.WithLogger(logger),
		gateway.WithMetrics(m),
		gateway.WithAudit(auditLog),
	)

	nav := coffrefort.NavigatorFunc(func(route coffrefort.Route) {
		logger.Debug("navigate", "route", route)
	})

	ctrl := access.New(gw, store,
		access.WithLogger(logger),
		access.WithNavigator(nav),
		access.WithMetrics(m),
		access.WithAudit(auditLog),
		access.WithCheckTTL(cfg.CheckTTL),
	)

	docSvc := documents.New(gw, documents.WithAudit(auditLog))
	userSvc := users.New(gw, users.WithAudit(auditLog))
	windowSvc := accesswindow.New(gw, accesswindow.WithAudit(auditLog))

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		ctrl:     ctrl,
		docs:     docSvc,
		users:    userSvc,
		windows:  windowSvc,
		boot:     bootstrap.New(ctrl, docSvc, userSvc, bootstrap.WithLogger(logger)),
		auditLog: auditLog,
	}, nil
}

// Close flushes pending audit events.
func (a *app) Close() {
	_ = a.auditLog.Close()
}

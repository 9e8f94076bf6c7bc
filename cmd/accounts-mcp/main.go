// accounts-mcp serves the personal accounts search tools over the Model
// Context Protocol.
//
// By default it speaks MCP on stdin/stdout, the way desktop agent runtimes
// launch local tool servers. With --transport=http it serves the streamable
// HTTP transport at /mcp, plus a /healthz probe.
//
// Configuration comes from the environment (or a .env file); see
// internal/config. Logs go to stderr so they never mix with the stdio channel.
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

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/hamzaessahbaoui/accounts-toolkit/internal/config"
	"github.com/hamzaessahbaoui/accounts-toolkit/pkg/tools/accounts"
	"github.com/hamzaessahbaoui/accounts-toolkit/toolkit"
)

const (
	serverName    = "G4 Data Model Server"
	serverVersion = "1.0.0"
	toolkitName   = "accounts_toolkit"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var transport, addr, logLevel string

	flagSet := pflag.NewFlagSet("accounts-mcp", pflag.ContinueOnError)
	flagSet.StringVar(&transport, "transport", "", "MCP transport: stdio or http (overrides MCP_TRANSPORT)")
	flagSet.StringVar(&addr, "addr", "", "listen address for the http transport (overrides MCP_ADDR)")
	flagSet.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
	flagSet.Bool("version", false, "print the version and exit")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if v, _ := flagSet.GetBool("version"); v {
		fmt.Printf("%s %s\n", serverName, serverVersion)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	applyFlags(cfg, transport, addr, logLevel)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.String("transport", cfg.Server.Transport),
		slog.String("api_base_url", cfg.API.BaseURL))

	client := accounts.NewClient(cfg.API.BaseURL, cfg.API.Token,
		accounts.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		accounts.WithLogger(logger),
	)
	svc := accounts.NewService(client, logger)
	mcpServer := newMCPServer(toolkit.New(toolkitName, svc.Parent()))

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serveHTTP(ctx, cfg.Server.Addr, mcpServer, logger)
	default:
		logger.Info("serving MCP on stdio")
		return server.ServeStdio(mcpServer)
	}
}

func applyFlags(cfg *config.Config, transport, addr, logLevel string) {
	if transport != "" {
		cfg.Server.Transport = transport
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newMCPServer builds an MCP server exposing every toolkit child as a tool.
func newMCPServer(tk *toolkit.Toolkit) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	tk.RegisterMCP(s)
	return s
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mark3labs/listwiz/internal/mcpserver"
)

var mcpFlags struct {
	http bool
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the wizard commands as MCP tools",
	Long: `Serve one MCP tool per wizard command for a single listing session.

By default the server speaks MCP over stdin/stdout. With --http it listens
on a random loopback port instead and prints the endpoint URL.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpFlags.http, "http", false, "Serve streamable HTTP on a loopback port instead of stdio")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := newDispatcher(cfg)
	if err != nil {
		return err
	}
	store := d.Controller().Store()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	j, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	if j != nil {
		defer closeJournal(j)
		detach := j.Attach(store)
		defer detach()
	}

	runner, err := startHooks(ctx)
	if err != nil {
		return err
	}
	defer runner.Wait()
	detachHooks := runner.Attach(store)
	defer detachHooks()

	// Runs before the journal and hooks detach so they see the close event.
	defer func() {
		store.TeardownGallery()
		d.Controller().Close()
		store.Close()
	}()

	srv := mcpserver.New(d)
	if !mcpFlags.http {
		if err := srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("mcp server failed: %w", err)
		}
		return nil
	}

	if _, err := srv.Start(ctx); err != nil {
		return fmt.Errorf("failed to start mcp server: %w", err)
	}
	defer func() { _ = srv.Stop() }()
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", srv.URL())

	<-ctx.Done()
	return nil
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnana997/propdoc/pkg/catalog"
	mcpserver "github.com/gnana997/propdoc/pkg/mcp"
	"github.com/gnana997/propdoc/pkg/mcplog"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var logPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated API pages over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := g.logger(cmd)
			cfg, err := loadConfig(g)
			if err != nil {
				return err
			}
			dir := cfg.OutputDir
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(cfg.Root, dir)
			}
			qs, err := catalog.LoadAndQuery(dir)
			if err != nil {
				return fmt.Errorf("load API pages: %w", err)
			}
			logger.Info("serving API pages", "dir", dir, "components", len(qs.Catalog.Components))

			callLog, err := mcplog.NewLogger(logPath)
			if err != nil {
				return err
			}
			if callLog != nil {
				defer callLog.Close()
			}
			srv := mcpserver.NewServer(qs, callLog, version)
			return srv.ServeStdio()
		},
	}
	cmd.Flags().StringVar(&logPath, "log-file", "", "append a JSONL record of every tool call to this file")
	return cmd
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gnana997/propdoc/pkg/util"
)

const version = "0.1.0-dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	root       string
	outputDir  string
	logLevel   string
	logFormat  string
}

func (o *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	cfg := util.DefaultLoggerConfig()
	cfg.Level = util.ParseLogLevel(o.logLevel)
	if o.logFormat == string(util.FormatJSON) {
		cfg.Format = util.FormatJSON
	}
	cfg.Output = cmd.ErrOrStderr()
	return util.NewLogger(cfg)
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "propdoc",
		Short: "Generate API reference pages for React components",
		Long: `propdoc reads component sources, declaration files, conformance tests
and markdown demo pages, and writes prop, class and slot tables with their
translation bundles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default propdoc.yaml, then .propdoc/config.yaml)")
	flags.StringVar(&opts.root, "root", "", "workspace root, overrides the config file")
	flags.StringVar(&opts.outputDir, "out", "", "output directory, overrides the config file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newBuildCmd(opts),
		newCheckCmd(opts),
		newWatchCmd(opts),
		newInspectCmd(opts),
		newServeCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the propdoc version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "propdoc %s\n", version)
			},
		},
	)
	return root
}

// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/golangee/bonsai/config"
	"github.com/golangee/bonsai/logging"
	"github.com/golangee/bonsai/parser"
	"github.com/golangee/bonsai/source"
	"github.com/golangee/bonsai/tree"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	cfgPath string
	verbose bool
	strict  bool

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "bonsai",
		Short: "bonsai - parse line oriented markup into a tree",
		Long: `bonsai reads documents where every element sits on its own line:

  <Parent name="John">
      <Child>Child 1</Child>
  </Parent>

Print a document:       bonsai parse doc.xml --format yaml
Read a single value:    bonsai get doc.xml Child[2]
Configuration:          bonsai config show`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "config file path (default ~/.config/bonsai/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&a.strict, "strict", false, "report unclosed elements and unsupported versions")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bonsai %s\n", version)
		},
	})

	rootCmd.AddCommand(a.parseCmd())
	rootCmd.AddCommand(a.getCmd())
	rootCmd.AddCommand(a.configCmd())

	return rootCmd
}

// init loads the configuration and creates the logger. Flags given on the command
// line win over the configuration.
func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("strict") {
		cfg.Parser.Strict = a.strict
	}

	logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr(), a.verbose)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

func (a *app) loader(cmd *cobra.Command) (*source.Loader, error) {
	return source.NewLoader(
		source.WithTimeout(time.Duration(a.cfg.Source.TimeoutSec)*time.Second),
		source.WithUserAgent(a.cfg.Source.UserAgent),
		source.WithMaxBytes(a.cfg.Source.MaxBytes),
		source.WithBaseDir(a.cfg.Source.BaseDir),
		source.WithLogger(a.logger),
		source.WithStdin(cmd.InOrStdin()),
	)
}

// load fetches and parses location. A malformed document is explained on the
// error stream of cmd before the error is returned.
func (a *app) load(cmd *cobra.Command, location string) (*tree.Document, error) {
	loader, err := a.loader(cmd)
	if err != nil {
		return nil, err
	}

	src, err := loader.Load(cmd.Context(), location)
	if err != nil {
		return nil, err
	}

	p := parser.New(parser.WithStrict(a.cfg.Parser.Strict), parser.WithLogger(a.logger))

	doc, err := p.Parse(src.Location, src.Text)
	if err != nil {
		var malformed *parser.MalformedError
		if errors.As(err, &malformed) {
			fmt.Fprint(cmd.ErrOrStderr(), malformed.Explain(src.Text))
		}

		return nil, err
	}

	a.logger.Debug().
		Str("location", src.Location).
		Int("elements", doc.Len()).
		Msg("parsed document")

	return doc, nil
}

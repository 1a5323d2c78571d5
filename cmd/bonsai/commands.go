// SPDX-FileCopyrightText: © 2026 The bonsai authors <https://github.com/golangee/bonsai/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/golangee/bonsai/config"
	"github.com/golangee/bonsai/encoder"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) parseCmd() *cobra.Command {
	var (
		format    string
		indent    int
		highlight bool
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "parse <location>",
		Short: "Parse a document and print it",
		Long: `Parse a document and print it as markup, XML, YAML or JSON.

The location is a path, a file, http or https URL, or - for stdin.

Examples:
  bonsai parse doc.xml
  bonsai parse https://example.com/doc.xml --format json
  bonsai parse doc.xml --watch --highlight
  cat doc.xml | bonsai parse - --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				a.cfg.Output.Format = format
			}

			if cmd.Flags().Changed("indent") {
				a.cfg.Output.Indent = indent
			}

			if cmd.Flags().Changed("highlight") {
				a.cfg.Output.Highlight = highlight
			}

			if err := a.cfg.Validate(); err != nil {
				return err
			}

			location := args[0]
			if watch && (location == "-" || strings.Contains(location, "://")) {
				return fmt.Errorf("--watch needs a local file, not %q", location)
			}

			if err := a.print(cmd, location); err != nil {
				return err
			}

			if !watch {
				return nil
			}

			loader, err := a.loader(cmd)
			if err != nil {
				return err
			}

			// errors are logged, the watch goes on
			return loader.Watch(cmd.Context(), location, func() {
				if err := a.print(cmd, location); err != nil {
					a.logger.Error().Err(err).Str("location", location).Msg("cannot print document")
				}
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markup", "output format: markup, xml, yaml or json")
	cmd.Flags().IntVar(&indent, "indent", 4, "indent width of markup output")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "color the output for a terminal")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "print the document again whenever the file changes")

	return cmd
}

// print loads location and writes it in the configured output format.
func (a *app) print(cmd *cobra.Command, location string) error {
	doc, err := a.load(cmd, location)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	var buf bytes.Buffer
	if a.cfg.Output.Highlight {
		out = &buf
	}

	switch a.cfg.Output.Format {
	case "xml":
		err = encoder.NewXMLEncoder(out).Encode(doc)
	case "yaml":
		err = encoder.EncodeYAML(out, doc)
	case "json":
		err = encoder.EncodeJSON(out, doc)
	default:
		err = encoder.NewMarkupEncoder(out, encoder.WithIndent(a.cfg.Output.Indent)).Encode(doc)
	}

	if err != nil || !a.cfg.Output.Highlight {
		return err
	}

	return encoder.Highlight(cmd.OutOrStdout(), buf.String(), a.cfg.Output.Format, a.cfg.Output.Style)
}

func (a *app) getCmd() *cobra.Command {
	var attr string

	cmd := &cobra.Command{
		Use:   "get <location> <path>",
		Short: "Print the value or an attribute of a single element",
		Long: `Print the value or an attribute of a single element.

The path is a list of tags separated by slashes, relative to the root element.
A segment like Child[2] selects the second child with that tag, an empty path
the root element itself.

Examples:
  bonsai get doc.xml Child[2]
  bonsai get doc.xml "" --attr name`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			c, ok := doc.Root().Find(args[1])
			if !ok {
				return fmt.Errorf("no element at %q", args[1])
			}

			if attr == "" {
				fmt.Fprintln(cmd.OutOrStdout(), c.Value())
				return nil
			}

			value, ok := c.Attribute(attr)
			if !ok {
				return fmt.Errorf("<%s> has no attribute %q", c.Tag(), attr)
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)

			return nil
		},
	}

	cmd.Flags().StringVar(&attr, "attr", "", "print this attribute instead of the value")

	return cmd
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	})

	var force bool

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists, use --force to overwrite", path)
			}

			if err := config.Default().SaveToPath(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)

			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

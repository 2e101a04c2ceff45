// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package cli defines the command-line interface for paasinfra.
package cli

import (
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/spf13/cobra"

	"github.com/clco-group6/paasinfra/internal/config"
)

// defaultConfigPath is the default path to the deployment configuration.
const defaultConfigPath = "paasinfra.yaml"

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// Execute builds the root command and runs it with the provided args.
func Execute(args []string) error {
	opts := &Options{ConfigPath: defaultConfigPath}
	root := newRootCommand(opts)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paasinfra",
		Short: "paasinfra declares and applies an Azure PaaS resource topology",
		Long: "paasinfra declares a fixed PaaS resource topology (network, private " +
			"connectivity to a Cognitive Services account, web application and " +
			"cost budget) and realises it through Azure Resource Manager.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			spec := "<root>=INFO"
			if opts.Verbose {
				spec = "<root>=DEBUG"
			}
			return errors.Trace(loggo.ConfigureLoggers(spec))
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "path to the deployment configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newValidateCommand(opts),
		newGraphCommand(opts),
		newApplyCommand(opts),
	)
	return cmd
}

func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Read(opts.ConfigPath)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

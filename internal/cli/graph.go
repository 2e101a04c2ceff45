// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cli

import (
	"fmt"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/clco-group6/paasinfra/internal/provider/azure"
)

func newGraphCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print the resource dependency graph in Graphviz DOT format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return errors.Trace(err)
			}
			deployer, err := azure.NewDeployer(azure.DeployerConfig{
				Config: cfg,
				Clock:  clock.WallClock,
			})
			if err != nil {
				return errors.Trace(err)
			}
			t := deployer.Topology()
			if err := t.Validate(); err != nil {
				return errors.Annotate(err, "topology not valid")
			}
			fmt.Fprint(cmd.OutOrStdout(), t.DOT())
			return nil
		},
	}
}

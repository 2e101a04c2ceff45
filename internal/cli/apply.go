// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cli

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/juju/clock"
	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/clco-group6/paasinfra/internal/provider/azure"
)

func newApplyCommand(opts *Options) *cobra.Command {
	var showSecrets bool
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Realise the topology through Azure Resource Manager",
		Long: "apply submits every resource descriptor to Azure Resource Manager " +
			"in dependency order. ARM diffs desired against actual state, so " +
			"re-applying an unchanged configuration converges without changes.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return errors.Trace(err)
			}
			credential, err := azidentity.NewDefaultAzureCredential(nil)
			if err != nil {
				return errors.Annotate(err, "building Azure credential")
			}
			deployer, err := azure.NewDeployer(azure.DeployerConfig{
				Config:     cfg,
				Credential: credential,
				Clock:      clock.WallClock,
			})
			if err != nil {
				return errors.Trace(err)
			}
			exports, err := deployer.Apply(cmd.Context())
			if err != nil {
				return errors.Trace(err)
			}

			names := set.NewStrings()
			for name := range exports {
				names.Add(name)
			}
			out := cmd.OutOrStdout()
			for _, name := range names.SortedValues() {
				value := exports[name]
				rendered := value.String()
				if showSecrets {
					rendered = value.Reveal()
				}
				fmt.Fprintf(out, "%s = %s\n", name, rendered)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print secret outputs in the clear")
	return cmd
}

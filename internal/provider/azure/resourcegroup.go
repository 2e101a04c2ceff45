// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/juju/errors"

	"github.com/clco-group6/paasinfra/internal/topology"
)

func (d *Deployer) ensureResourceGroup(ctx context.Context, _ *topology.Outputs) (topology.Attrs, error) {
	groups, err := d.resourceGroupsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	resp, err := groups.CreateOrUpdate(ctx, d.cfg.ResourceGroup, armresources.ResourceGroup{
		Location: to.Ptr(d.cfg.Location),
	}, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "creating resource group %q", d.cfg.ResourceGroup)
	}
	return topology.Attrs{
		"name": topology.StringValue(toValue(resp.Name)),
		"id":   topology.StringValue(toValue(resp.ID)),
	}, nil
}

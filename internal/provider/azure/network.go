// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/juju/errors"

	"github.com/clco-group6/paasinfra/internal/topology"
)

// appSubnetDelegation is the service the app subnet must be delegated
// to for App Service regional VNet integration.
const appSubnetDelegation = "Microsoft.Web/serverFarms"

func (d *Deployer) ensureVirtualNetwork(ctx context.Context, _ *topology.Outputs) (topology.Attrs, error) {
	vnets, err := d.virtualNetworksClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	poller, err := vnets.BeginCreateOrUpdate(ctx, d.cfg.ResourceGroup, d.cfg.VirtualNetwork, armnetwork.VirtualNetwork{
		Location: to.Ptr(d.cfg.Location),
		Properties: &armnetwork.VirtualNetworkPropertiesFormat{
			AddressSpace: &armnetwork.AddressSpace{
				AddressPrefixes: []*string{to.Ptr(d.cfg.AddressSpace)},
			},
		},
	}, nil)
	if err == nil {
		var resp armnetwork.VirtualNetworksClientCreateOrUpdateResponse
		resp, err = poller.PollUntilDone(ctx, nil)
		if err == nil {
			return topology.Attrs{
				"name": topology.StringValue(toValue(resp.Name)),
				"id":   topology.StringValue(toValue(resp.ID)),
			}, nil
		}
	}
	return nil, errors.Annotatef(err, "creating virtual network %q", d.cfg.VirtualNetwork)
}

func (d *Deployer) ensureAppSubnet(ctx context.Context, deps *topology.Outputs) (topology.Attrs, error) {
	vnetName, err := deps.Get("vnet", "name")
	if err != nil {
		return nil, errors.Trace(err)
	}
	// The subnet is delegated so that App Service can join it.
	subnet := armnetwork.Subnet{
		Properties: &armnetwork.SubnetPropertiesFormat{
			AddressPrefix: to.Ptr(d.cfg.AppSubnet.Prefix),
			Delegations: []*armnetwork.Delegation{{
				Name: to.Ptr("appDelegation"),
				Properties: &armnetwork.ServiceDelegationPropertiesFormat{
					ServiceName: to.Ptr(appSubnetDelegation),
				},
			}},
		},
	}
	return d.ensureSubnet(ctx, vnetName, d.cfg.AppSubnet.Name, subnet)
}

func (d *Deployer) ensureEndpointSubnet(ctx context.Context, deps *topology.Outputs) (topology.Attrs, error) {
	vnetName, err := deps.Get("vnet", "name")
	if err != nil {
		return nil, errors.Trace(err)
	}
	// Network policies must be off or ARM refuses to place a private
	// endpoint in the subnet.
	subnet := armnetwork.Subnet{
		Properties: &armnetwork.SubnetPropertiesFormat{
			AddressPrefix:                  to.Ptr(d.cfg.EndpointSubnet.Prefix),
			PrivateEndpointNetworkPolicies: to.Ptr(armnetwork.VirtualNetworkPrivateEndpointNetworkPoliciesDisabled),
		},
	}
	return d.ensureSubnet(ctx, vnetName, d.cfg.EndpointSubnet.Name, subnet)
}

func (d *Deployer) ensureSubnet(ctx context.Context, vnetName, name string, subnet armnetwork.Subnet) (topology.Attrs, error) {
	subnets, err := d.subnetsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	poller, err := subnets.BeginCreateOrUpdate(ctx, d.cfg.ResourceGroup, vnetName, name, subnet, nil)
	if err == nil {
		var resp armnetwork.SubnetsClientCreateOrUpdateResponse
		resp, err = poller.PollUntilDone(ctx, nil)
		if err == nil {
			return topology.Attrs{
				"name": topology.StringValue(toValue(resp.Name)),
				"id":   topology.StringValue(toValue(resp.ID)),
			}, nil
		}
	}
	return nil, errors.Annotatef(err, "creating subnet %q in virtual network %q", name, vnetName)
}

func (d *Deployer) ensurePrivateEndpoint(ctx context.Context, deps *topology.Outputs) (topology.Attrs, error) {
	subnetID, err := deps.Get("endpoint-subnet", "id")
	if err != nil {
		return nil, errors.Trace(err)
	}
	accountID, err := deps.Get("cognitive-account", "id")
	if err != nil {
		return nil, errors.Trace(err)
	}
	endpoints, err := d.privateEndpointsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	poller, err := endpoints.BeginCreateOrUpdate(ctx, d.cfg.ResourceGroup, d.cfg.PrivateEndpointName, armnetwork.PrivateEndpoint{
		Location: to.Ptr(d.cfg.Location),
		Properties: &armnetwork.PrivateEndpointProperties{
			Subnet: &armnetwork.Subnet{
				ID: to.Ptr(subnetID),
			},
			PrivateLinkServiceConnections: []*armnetwork.PrivateLinkServiceConnection{{
				Name: to.Ptr("cogConnection"),
				Properties: &armnetwork.PrivateLinkServiceConnectionProperties{
					PrivateLinkServiceID: to.Ptr(accountID),
					GroupIDs:             []*string{to.Ptr("account")},
				},
			}},
		},
	}, nil)
	if err == nil {
		var resp armnetwork.PrivateEndpointsClientCreateOrUpdateResponse
		resp, err = poller.PollUntilDone(ctx, nil)
		if err == nil {
			return topology.Attrs{
				"name": topology.StringValue(toValue(resp.Name)),
				"id":   topology.StringValue(toValue(resp.ID)),
			}, nil
		}
	}
	return nil, errors.Annotatef(err, "creating private endpoint %q", d.cfg.PrivateEndpointName)
}

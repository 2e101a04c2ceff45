// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/privatedns/armprivatedns"
	"github.com/juju/errors"

	"github.com/clco-group6/paasinfra/internal/topology"
)

// privateZoneName is the reserved private-link zone for Cognitive
// Services. With any other zone name the web app silently resolves the
// service through public DNS instead of the private endpoint, so it is
// deliberately not configurable.
const privateZoneName = "privatelink.cognitiveservices.azure.com"

// Private DNS zones and their links are global resources; ARM rejects a
// regional location for them.
const globalLocation = "global"

func (d *Deployer) ensurePrivateZone(ctx context.Context, _ *topology.Outputs) (topology.Attrs, error) {
	zones, err := d.privateZonesClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	poller, err := zones.BeginCreateOrUpdate(ctx, d.cfg.ResourceGroup, privateZoneName, armprivatedns.PrivateZone{
		Location: to.Ptr(globalLocation),
	}, nil)
	if err == nil {
		var resp armprivatedns.PrivateZonesClientCreateOrUpdateResponse
		resp, err = poller.PollUntilDone(ctx, nil)
		if err == nil {
			return topology.Attrs{
				"name": topology.StringValue(toValue(resp.Name)),
				"id":   topology.StringValue(toValue(resp.ID)),
			}, nil
		}
	}
	return nil, errors.Annotatef(err, "creating private DNS zone %q", privateZoneName)
}

func (d *Deployer) ensureVirtualNetworkLink(ctx context.Context, deps *topology.Outputs) (topology.Attrs, error) {
	zoneName, err := deps.Get("private-dns-zone", "name")
	if err != nil {
		return nil, errors.Trace(err)
	}
	vnetID, err := deps.Get("vnet", "id")
	if err != nil {
		return nil, errors.Trace(err)
	}
	links, err := d.virtualNetworkLinksClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	linkName := d.cfg.VirtualNetwork + "-dns-link"
	poller, err := links.BeginCreateOrUpdate(ctx, d.cfg.ResourceGroup, zoneName, linkName, armprivatedns.VirtualNetworkLink{
		Location: to.Ptr(globalLocation),
		Properties: &armprivatedns.VirtualNetworkLinkProperties{
			VirtualNetwork: &armprivatedns.SubResource{
				ID: to.Ptr(vnetID),
			},
			// The zone only resolves the private endpoint's record;
			// machines in the network do not register themselves.
			RegistrationEnabled: to.Ptr(false),
		},
	}, nil)
	if err == nil {
		var resp armprivatedns.VirtualNetworkLinksClientCreateOrUpdateResponse
		resp, err = poller.PollUntilDone(ctx, nil)
		if err == nil {
			return topology.Attrs{
				"name": topology.StringValue(toValue(resp.Name)),
				"id":   topology.StringValue(toValue(resp.ID)),
			}, nil
		}
	}
	return nil, errors.Annotatef(err, "linking virtual network to private DNS zone %q", zoneName)
}

func (d *Deployer) ensurePrivateDNSZoneGroup(ctx context.Context, deps *topology.Outputs) (topology.Attrs, error) {
	endpointName, err := deps.Get("private-endpoint", "name")
	if err != nil {
		return nil, errors.Trace(err)
	}
	zoneID, err := deps.Get("private-dns-zone", "id")
	if err != nil {
		return nil, errors.Trace(err)
	}
	groups, err := d.privateDNSZoneGroupsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	poller, err := groups.BeginCreateOrUpdate(ctx, d.cfg.ResourceGroup, endpointName, "cogZoneGroup", armnetwork.PrivateDNSZoneGroup{
		Properties: &armnetwork.PrivateDNSZoneGroupPropertiesFormat{
			PrivateDNSZoneConfigs: []*armnetwork.PrivateDNSZoneConfig{{
				Name: to.Ptr("cogDnsConfig"),
				Properties: &armnetwork.PrivateDNSZonePropertiesFormat{
					PrivateDNSZoneID: to.Ptr(zoneID),
				},
			}},
		},
	}, nil)
	if err == nil {
		var resp armnetwork.PrivateDNSZoneGroupsClientCreateOrUpdateResponse
		resp, err = poller.PollUntilDone(ctx, nil)
		if err == nil {
			return topology.Attrs{
				"name": topology.StringValue(toValue(resp.Name)),
				"id":   topology.StringValue(toValue(resp.ID)),
			}, nil
		}
	}
	return nil, errors.Annotatef(err, "associating private endpoint %q with DNS zone", endpointName)
}

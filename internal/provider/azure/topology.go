// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"github.com/clco-group6/paasinfra/internal/topology"
)

// Topology returns the full PaaS resource topology for the configured
// deployment: networking, private connectivity to the Cognitive
// Services account, the web application and its CD hook, and the
// subscription budget. Reference edges carry realisation order; the
// budget is only related to the rest through the subscription.
func (d *Deployer) Topology() *topology.Topology {
	t := topology.New()

	t.Add(&topology.Descriptor{
		Name:    "resource-group",
		Type:    "Microsoft.Resources/resourceGroups",
		Realize: d.ensureResourceGroup,
	})
	t.Add(&topology.Descriptor{
		Name:      "vnet",
		Type:      "Microsoft.Network/virtualNetworks",
		DependsOn: []string{"resource-group"},
		Realize:   d.ensureVirtualNetwork,
	})
	t.Add(&topology.Descriptor{
		Name:    "app-subnet",
		Type:    "Microsoft.Network/virtualNetworks/subnets",
		Refs:    []topology.Reference{topology.Ref("vnet", "name")},
		Realize: d.ensureAppSubnet,
	})
	t.Add(&topology.Descriptor{
		Name: "endpoint-subnet",
		Type: "Microsoft.Network/virtualNetworks/subnets",
		Refs: []topology.Reference{topology.Ref("vnet", "name")},
		// Subnet writes against one virtual network must not overlap.
		DependsOn: []string{"app-subnet"},
		Realize:   d.ensureEndpointSubnet,
	})
	t.Add(&topology.Descriptor{
		Name:      "private-dns-zone",
		Type:      "Microsoft.Network/privateDnsZones",
		DependsOn: []string{"resource-group"},
		Realize:   d.ensurePrivateZone,
	})
	t.Add(&topology.Descriptor{
		Name: "vnet-dns-link",
		Type: "Microsoft.Network/privateDnsZones/virtualNetworkLinks",
		Refs: []topology.Reference{
			topology.Ref("private-dns-zone", "name"),
			topology.Ref("vnet", "id"),
		},
		Realize: d.ensureVirtualNetworkLink,
	})
	t.Add(&topology.Descriptor{
		Name:      "cognitive-account",
		Type:      "Microsoft.CognitiveServices/accounts",
		DependsOn: []string{"resource-group"},
		Realize:   d.readCognitiveAccount,
	})
	t.Add(&topology.Descriptor{
		Name: "private-endpoint",
		Type: "Microsoft.Network/privateEndpoints",
		Refs: []topology.Reference{
			topology.Ref("endpoint-subnet", "id"),
			topology.Ref("cognitive-account", "id"),
		},
		Realize: d.ensurePrivateEndpoint,
	})
	t.Add(&topology.Descriptor{
		Name: "private-dns-zone-group",
		Type: "Microsoft.Network/privateEndpoints/privateDnsZoneGroups",
		Refs: []topology.Reference{
			topology.Ref("private-endpoint", "name"),
			topology.Ref("private-dns-zone", "id"),
		},
		Realize: d.ensurePrivateDNSZoneGroup,
	})
	t.Add(&topology.Descriptor{
		Name:      "app-service-plan",
		Type:      "Microsoft.Web/serverfarms",
		DependsOn: []string{"resource-group"},
		Realize:   d.ensureAppServicePlan,
	})
	t.Add(&topology.Descriptor{
		Name:    "web-app",
		Type:    "Microsoft.Web/sites",
		Refs:    []topology.Reference{topology.Ref("app-service-plan", "id")},
		Realize: d.ensureWebApp,
	})
	t.Add(&topology.Descriptor{
		Name: "vnet-integration",
		Type: "Microsoft.Web/sites/virtualNetworkConnections",
		Refs: []topology.Reference{
			topology.Ref("web-app", "name"),
			topology.Ref("app-subnet", "id"),
		},
		Realize: d.ensureVNetIntegration,
	})
	t.Add(&topology.Descriptor{
		Name: "app-settings",
		Type: "Microsoft.Web/sites/config",
		Refs: []topology.Reference{
			topology.Ref("web-app", "name"),
			topology.Ref("cognitive-account", "endpoint"),
			topology.Ref("cognitive-account", "key1"),
		},
		Realize: d.ensureAppSettings,
	})
	t.Add(&topology.Descriptor{
		Name:      "source-control",
		Type:      "Microsoft.Web/sites/sourcecontrols",
		Refs:      []topology.Reference{topology.Ref("web-app", "name")},
		DependsOn: []string{"app-settings"},
		Realize:   d.ensureSourceControl,
	})
	t.Add(&topology.Descriptor{
		Name:    "budget",
		Type:    "Microsoft.Consumption/budgets",
		Realize: d.ensureBudget,
	})

	t.Export("resource_group_name", topology.Ref("resource-group", "name"))
	t.Export("vnet_name", topology.Ref("vnet", "name"))
	t.Export("app_subnet_name", topology.Ref("app-subnet", "name"))
	t.Export("endpoint_subnet_name", topology.Ref("endpoint-subnet", "name"))
	t.Export("private_dns_zone_name", topology.Ref("private-dns-zone", "name"))
	t.Export("cognitive_service_name", topology.Ref("cognitive-account", "name"))
	t.Export("cognitive_endpoint", topology.Ref("cognitive-account", "endpoint"))
	t.Export("cognitive_key", topology.Ref("cognitive-account", "key1"))
	t.Export("web_app_url", topology.Ref("web-app", "url"))

	return t
}

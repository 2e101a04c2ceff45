// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/juju/errors"

	"github.com/clco-group6/paasinfra/internal/topology"
)

func (d *Deployer) ensureAppServicePlan(ctx context.Context, _ *topology.Outputs) (topology.Attrs, error) {
	plans, err := d.plansClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	poller, err := plans.BeginCreateOrUpdate(ctx, d.cfg.ResourceGroup, d.cfg.AppServicePlan, armappservice.Plan{
		Location: to.Ptr(d.cfg.Location),
		Kind:     to.Ptr("linux"),
		SKU: &armappservice.SKUDescription{
			Name:     to.Ptr(d.cfg.PlanSKU),
			Tier:     to.Ptr(d.cfg.PlanTier),
			Capacity: to.Ptr(int32(d.cfg.PlanCapacity)),
		},
		Properties: &armappservice.PlanProperties{
			// Linux plans must be marked reserved.
			Reserved: to.Ptr(true),
		},
	}, nil)
	if err == nil {
		var resp armappservice.PlansClientCreateOrUpdateResponse
		resp, err = poller.PollUntilDone(ctx, nil)
		if err == nil {
			return topology.Attrs{
				"name": topology.StringValue(toValue(resp.Name)),
				"id":   topology.StringValue(toValue(resp.ID)),
			}, nil
		}
	}
	return nil, errors.Annotatef(err, "creating app service plan %q", d.cfg.AppServicePlan)
}

func (d *Deployer) ensureWebApp(ctx context.Context, deps *topology.Outputs) (topology.Attrs, error) {
	serverFarmID, err := deps.Get("app-service-plan", "id")
	if err != nil {
		return nil, errors.Trace(err)
	}
	webApps, err := d.webAppsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	poller, err := webApps.BeginCreateOrUpdate(ctx, d.cfg.ResourceGroup, d.cfg.WebAppName, armappservice.Site{
		Location: to.Ptr(d.cfg.Location),
		Kind:     to.Ptr("app,linux"),
		Properties: &armappservice.SiteProperties{
			ServerFarmID: to.Ptr(serverFarmID),
			HTTPSOnly:    to.Ptr(true),
			SiteConfig: &armappservice.SiteConfig{
				LinuxFxVersion: to.Ptr(d.cfg.Runtime),
				AlwaysOn:       to.Ptr(true),
				FtpsState:      to.Ptr(armappservice.FtpsStateDisabled),
			},
		},
	}, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "creating web app %q", d.cfg.WebAppName)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "creating web app %q", d.cfg.WebAppName)
	}

	hostName := ""
	if resp.Properties != nil {
		hostName = toValue(resp.Properties.DefaultHostName)
	}
	if hostName == "" {
		return nil, errors.NotFoundf("default host name of web app %q", d.cfg.WebAppName)
	}
	return topology.Attrs{
		"name":             topology.StringValue(toValue(resp.Name)),
		"id":               topology.StringValue(toValue(resp.ID)),
		"default_hostname": topology.StringValue(hostName),
		"url":              topology.StringValue("https://" + hostName),
	}, nil
}

func (d *Deployer) ensureVNetIntegration(ctx context.Context, deps *topology.Outputs) (topology.Attrs, error) {
	appName, err := deps.Get("web-app", "name")
	if err != nil {
		return nil, errors.Trace(err)
	}
	subnetID, err := deps.Get("app-subnet", "id")
	if err != nil {
		return nil, errors.Trace(err)
	}
	webApps, err := d.webAppsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	_, err = webApps.CreateOrUpdateSwiftVirtualNetworkConnectionWithCheck(ctx, d.cfg.ResourceGroup, appName, armappservice.SwiftVirtualNetwork{
		Properties: &armappservice.SwiftVirtualNetworkProperties{
			SubnetResourceID: to.Ptr(subnetID),
		},
	}, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "integrating web app %q with subnet", appName)
	}
	return nil, nil
}

func (d *Deployer) ensureAppSettings(ctx context.Context, deps *topology.Outputs) (topology.Attrs, error) {
	appName, err := deps.Get("web-app", "name")
	if err != nil {
		return nil, errors.Trace(err)
	}
	endpoint, err := deps.Get("cognitive-account", "endpoint")
	if err != nil {
		return nil, errors.Trace(err)
	}
	// Resolves a secret output; the key only ever lands in the site's
	// provider-managed configuration, never in logs or exports.
	key, err := deps.Get("cognitive-account", "key1")
	if err != nil {
		return nil, errors.Trace(err)
	}
	webApps, err := d.webAppsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	_, err = webApps.UpdateApplicationSettings(ctx, d.cfg.ResourceGroup, appName, armappservice.StringDictionary{
		Properties: map[string]*string{
			"COG_SERVICES_ENDPOINT":    to.Ptr(endpoint),
			"COG_SERVICES_KEY":         to.Ptr(key),
			"WEBSITE_RUN_FROM_PACKAGE": to.Ptr("0"),
		},
	}, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "updating application settings of web app %q", appName)
	}
	return nil, nil
}

func (d *Deployer) ensureSourceControl(ctx context.Context, deps *topology.Outputs) (topology.Attrs, error) {
	appName, err := deps.Get("web-app", "name")
	if err != nil {
		return nil, errors.Trace(err)
	}
	webApps, err := d.webAppsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	poller, err := webApps.BeginCreateOrUpdateSourceControl(ctx, d.cfg.ResourceGroup, appName, armappservice.SiteSourceControl{
		Properties: &armappservice.SiteSourceControlProperties{
			RepoURL: to.Ptr(d.cfg.RepoURL),
			Branch:  to.Ptr(d.cfg.Branch),
			// Deployment is pulled from the repository on demand
			// rather than pushed by a workflow.
			IsGitHubAction:            to.Ptr(false),
			IsManualIntegration:       to.Ptr(true),
			DeploymentRollbackEnabled: to.Ptr(false),
		},
	}, nil)
	if err == nil {
		_, err = poller.PollUntilDone(ctx, nil)
		if err == nil {
			return topology.Attrs{
				"repo":   topology.StringValue(d.cfg.RepoURL),
				"branch": topology.StringValue(d.cfg.Branch),
			}, nil
		}
	}
	return nil, errors.Annotatef(err, "configuring source control of web app %q", appName)
}

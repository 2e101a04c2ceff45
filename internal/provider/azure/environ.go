// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package azure declares the PaaS resource topology and realises it
// through Azure Resource Manager. ARM owns desired-vs-actual diffing,
// long-running-operation handling and throttling; every realisation
// here is one idempotent CreateOrUpdate, so repeat applies converge
// without local state.
package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/consumption/armconsumption"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/privatedns/armprivatedns"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/clco-group6/paasinfra/internal/config"
	"github.com/clco-group6/paasinfra/internal/topology"
)

var logger = loggo.GetLogger("paasinfra.provider.azure")

// DeployerConfig contains the collaborators of a Deployer.
type DeployerConfig struct {
	// Config is the validated deployment configuration.
	Config *config.Config

	// Credential authenticates ARM clients. It may be nil for offline
	// use (topology validation and graph export); Apply requires it.
	Credential azcore.TokenCredential

	// Clock supplies the current time for the budget window.
	Clock clock.Clock

	// Transport overrides the HTTP transport used by ARM clients.
	// Tests use this to substitute canned senders.
	Transport policy.Transporter

	// NewUUID generates the random suffix of the budget name. Defaults
	// to uuid.New.
	NewUUID func() uuid.UUID
}

// Validate checks the deployer configuration.
func (c DeployerConfig) Validate() error {
	if c.Config == nil {
		return errors.NotValidf("nil Config")
	}
	if c.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	return nil
}

// Deployer builds the resource topology for one PaaS deployment and
// realises it against ARM.
type Deployer struct {
	cfg        *config.Config
	credential azcore.TokenCredential
	clock      clock.Clock
	transport  policy.Transporter
	newUUID    func() uuid.UUID
}

// NewDeployer returns a Deployer for the given configuration.
func NewDeployer(c DeployerConfig) (*Deployer, error) {
	if err := c.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	newUUID := c.NewUUID
	if newUUID == nil {
		newUUID = uuid.New
	}
	return &Deployer{
		cfg:        c.Config,
		credential: c.Credential,
		clock:      c.Clock,
		transport:  c.Transport,
		newUUID:    newUUID,
	}, nil
}

// Apply realises the full topology and returns the published outputs.
func (d *Deployer) Apply(ctx context.Context) (map[string]topology.Value, error) {
	if d.credential == nil {
		return nil, errors.New("cannot apply topology without a credential")
	}
	exports, err := d.Topology().Apply(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return exports, nil
}

func (d *Deployer) armClientOptions() *arm.ClientOptions {
	opts := &arm.ClientOptions{}
	if d.transport != nil {
		opts.Transport = d.transport
	}
	return opts
}

func (d *Deployer) resourceGroupsClient() (*armresources.ResourceGroupsClient, error) {
	client, err := armresources.NewResourceGroupsClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) virtualNetworksClient() (*armnetwork.VirtualNetworksClient, error) {
	client, err := armnetwork.NewVirtualNetworksClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) subnetsClient() (*armnetwork.SubnetsClient, error) {
	client, err := armnetwork.NewSubnetsClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) privateEndpointsClient() (*armnetwork.PrivateEndpointsClient, error) {
	client, err := armnetwork.NewPrivateEndpointsClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) privateDNSZoneGroupsClient() (*armnetwork.PrivateDNSZoneGroupsClient, error) {
	client, err := armnetwork.NewPrivateDNSZoneGroupsClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) privateZonesClient() (*armprivatedns.PrivateZonesClient, error) {
	client, err := armprivatedns.NewPrivateZonesClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) virtualNetworkLinksClient() (*armprivatedns.VirtualNetworkLinksClient, error) {
	client, err := armprivatedns.NewVirtualNetworkLinksClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) accountsClient() (*armcognitiveservices.AccountsClient, error) {
	client, err := armcognitiveservices.NewAccountsClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) plansClient() (*armappservice.PlansClient, error) {
	client, err := armappservice.NewPlansClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) webAppsClient() (*armappservice.WebAppsClient, error) {
	client, err := armappservice.NewWebAppsClient(d.cfg.SubscriptionID, d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

func (d *Deployer) budgetsClient() (*armconsumption.BudgetsClient, error) {
	client, err := armconsumption.NewBudgetsClient(d.credential, d.armClientOptions())
	return client, errors.Trace(err)
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"github.com/juju/clock"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/clco-group6/paasinfra/internal/config"
	"github.com/clco-group6/paasinfra/internal/provider/azure/internal/armtesting"
	"github.com/clco-group6/paasinfra/internal/topology"
)

const (
	fakeSubscriptionID = "22222222-2222-2222-2222-222222222222"
	fakeEmail          = "ops@example.com"
)

func makeTestConfig(c *gc.C) *config.Config {
	cfg, err := config.New(map[string]any{
		"subscription-id":    fakeSubscriptionID,
		"notification-email": fakeEmail,
	})
	c.Assert(err, jc.ErrorIsNil)
	return cfg
}

type topologySuite struct {
	testing.IsolationSuite

	deployer *Deployer
}

var _ = gc.Suite(&topologySuite{})

func (s *topologySuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	deployer, err := NewDeployer(DeployerConfig{
		Config:     makeTestConfig(c),
		Credential: armtesting.FakeCredential{},
		Clock:      clock.WallClock,
	})
	c.Assert(err, jc.ErrorIsNil)
	s.deployer = deployer
}

func (s *topologySuite) TestTopologyIsValid(c *gc.C) {
	err := s.deployer.Topology().Validate()
	c.Assert(err, jc.ErrorIsNil)
}

func (s *topologySuite) TestOrderHonoursConnectivityEdges(c *gc.C) {
	order, err := s.deployer.Topology().Order()
	c.Assert(err, jc.ErrorIsNil)

	pos := make(map[string]int)
	for i, d := range order {
		pos[d.Name] = i
	}
	c.Assert(pos["resource-group"], gc.Equals, 0)
	before := func(a, b string) {
		c.Check(pos[a] < pos[b], jc.IsTrue, gc.Commentf("%q should be realised before %q", a, b))
	}
	before("resource-group", "vnet")
	before("vnet", "app-subnet")
	before("app-subnet", "endpoint-subnet")
	before("endpoint-subnet", "private-endpoint")
	before("cognitive-account", "private-endpoint")
	before("private-endpoint", "private-dns-zone-group")
	before("private-dns-zone", "private-dns-zone-group")
	before("private-dns-zone", "vnet-dns-link")
	before("app-service-plan", "web-app")
	before("web-app", "vnet-integration")
	before("app-subnet", "vnet-integration")
	before("cognitive-account", "app-settings")
	before("web-app", "app-settings")
	before("app-settings", "source-control")
}

func (s *topologySuite) TestPrivateZoneIsReservedName(c *gc.C) {
	// Anything else and resolution silently falls back to the public
	// endpoint.
	c.Assert(privateZoneName, gc.Equals, "privatelink.cognitiveservices.azure.com")

	var zone *topology.Descriptor
	order, err := s.deployer.Topology().Order()
	c.Assert(err, jc.ErrorIsNil)
	for _, d := range order {
		if d.Name == "private-dns-zone" {
			zone = d
		}
	}
	c.Assert(zone, gc.NotNil)
	c.Assert(zone.Type, gc.Equals, "Microsoft.Network/privateDnsZones")
}

func (s *topologySuite) TestBudgetIsIndependent(c *gc.C) {
	order, err := s.deployer.Topology().Order()
	c.Assert(err, jc.ErrorIsNil)
	for _, d := range order {
		if d.Name == "budget" {
			c.Assert(d.DependsOn, gc.HasLen, 0)
			c.Assert(d.Refs, gc.HasLen, 0)
			return
		}
	}
	c.Fatal("budget descriptor missing")
}

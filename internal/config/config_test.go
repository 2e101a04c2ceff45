// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config_test

import (
	"os"
	"path/filepath"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/clco-group6/paasinfra/internal/config"
)

const (
	fakeSubscriptionID = "22222222-2222-2222-2222-222222222222"
	fakeEmail          = "ops@example.com"
)

type configSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&configSuite{})

func minimalAttrs(extra map[string]any) map[string]any {
	attrs := map[string]any{
		"subscription-id":    fakeSubscriptionID,
		"notification-email": fakeEmail,
	}
	for k, v := range extra {
		attrs[k] = v
	}
	return attrs
}

func (s *configSuite) assertInvalid(c *gc.C, extra map[string]any, expect string) {
	_, err := config.New(minimalAttrs(extra))
	c.Assert(err, gc.ErrorMatches, expect)
}

func (s *configSuite) TestDefaults(c *gc.C) {
	cfg, err := config.New(minimalAttrs(nil))
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cfg.Location, gc.Equals, "westeurope")
	c.Check(cfg.ResourceGroup, gc.Equals, "paas-rg")
	c.Check(cfg.VirtualNetwork, gc.Equals, "paas-vnet")
	c.Check(cfg.AddressSpace, gc.Equals, "10.10.0.0/16")
	c.Check(cfg.AppSubnet, gc.Equals, config.SubnetSpec{Name: "app-subnet", Prefix: "10.10.1.0/24"})
	c.Check(cfg.EndpointSubnet, gc.Equals, config.SubnetSpec{Name: "endpoint-subnet", Prefix: "10.10.2.0/24"})
	c.Check(cfg.CognitiveAccount, gc.Equals, "ass7")
	c.Check(cfg.PlanSKU, gc.Equals, "P1v2")
	c.Check(cfg.PlanCapacity, gc.Equals, 3)
	c.Check(cfg.WebAppName, gc.Equals, "paas-webapp-demo-group-6")
	c.Check(cfg.Runtime, gc.Equals, "PYTHON|3.9")
	c.Check(cfg.BudgetAmount, gc.Equals, 10)
	c.Check(cfg.BudgetActualThreshold, gc.Equals, 80)
	c.Check(cfg.BudgetForecastThreshold, gc.Equals, 100)
}

func (s *configSuite) TestLocationCanonicalised(c *gc.C) {
	cfg, err := config.New(minimalAttrs(map[string]any{"location": "West Europe"}))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(cfg.Location, gc.Equals, "westeurope")
}

func (s *configSuite) TestMissingSubscriptionID(c *gc.C) {
	_, err := config.New(map[string]any{"notification-email": fakeEmail})
	c.Assert(err, gc.ErrorMatches, `subscription-id: expected string, got nothing`)
}

func (s *configSuite) TestMalformedSubscriptionID(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"subscription-id": "not-a-uuid"},
		`subscription-id "not-a-uuid" not valid`,
	)
}

func (s *configSuite) TestMalformedEmail(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"notification-email": "nobody"},
		`notification-email "nobody" not valid`,
	)
}

func (s *configSuite) TestMalformedAddressSpace(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"address-space": "10.10.0.0"},
		`address-space "10.10.0.0" not valid`,
	)
}

func (s *configSuite) TestSubnetOutsideAddressSpace(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"app-subnet-prefix": "10.20.1.0/24"},
		`subnet prefix "10.20.1.0/24" is not contained in address space "10.10.0.0/16"`,
	)
}

func (s *configSuite) TestSubnetWiderThanAddressSpace(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"endpoint-subnet-prefix": "10.0.0.0/8"},
		`subnet prefix "10.0.0.0/8" is not contained in address space "10.10.0.0/16"`,
	)
}

func (s *configSuite) TestSubnetNameClash(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"endpoint-subnet-name": "app-subnet"},
		`app and endpoint subnets share the name "app-subnet"`,
	)
}

func (s *configSuite) TestZeroPlanCapacity(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"plan-capacity": 0},
		`plan-capacity 0 not valid`,
	)
}

func (s *configSuite) TestMalformedRuntime(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"runtime": "python39"},
		`runtime "python39" not valid`,
	)
}

func (s *configSuite) TestMalformedRepoURL(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"repo-url": "git@github.com:foo/bar.git"},
		`repo-url "git@github.com:foo/bar.git" not valid`,
	)
}

func (s *configSuite) TestBudgetAmountTooSmall(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"budget-amount": 0},
		`budget-amount 0 not valid`,
	)
}

func (s *configSuite) TestActualThresholdOutOfRange(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"budget-actual-threshold": 120},
		`budget-actual-threshold 120 not valid`,
	)
}

func (s *configSuite) TestThresholdsMustBeOrdered(c *gc.C) {
	s.assertInvalid(c,
		map[string]any{"budget-forecast-threshold": 80},
		`budget-forecast-threshold 80 must exceed budget-actual-threshold 80`,
	)
}

func (s *configSuite) TestBudgetScope(c *gc.C) {
	cfg, err := config.New(minimalAttrs(nil))
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(cfg.BudgetScope(), gc.Equals, "/subscriptions/"+fakeSubscriptionID)
}

func (s *configSuite) TestReadFile(c *gc.C) {
	path := filepath.Join(c.MkDir(), "paasinfra.yaml")
	content := `
subscription-id: ` + fakeSubscriptionID + `
notification-email: ` + fakeEmail + `
location: North Europe
plan-capacity: 5
`
	err := os.WriteFile(path, []byte(content), 0o644)
	c.Assert(err, jc.ErrorIsNil)

	cfg, err := config.Read(path)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cfg.Location, gc.Equals, "northeurope")
	c.Check(cfg.PlanCapacity, gc.Equals, 5)
	// Untouched attributes still get their defaults.
	c.Check(cfg.ResourceGroup, gc.Equals, "paas-rg")
}

func (s *configSuite) TestReadMissingFile(c *gc.C) {
	_, err := config.Read(filepath.Join(c.MkDir(), "absent.yaml"))
	c.Assert(err, gc.ErrorMatches, `reading configuration from .*: .*`)
}

// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config holds the deployment parameters for the PaaS topology.
// Everything that was once a hard-coded global lives here instead, read
// from a YAML file, coerced through a schema and validated before any
// provider client is constructed.
package config

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/yaml.v3"
)

const (
	// defaultLocation is the region used when the configuration does
	// not name one.
	defaultLocation = "westeurope"

	// resourceNameLengthMax is the maximum length of resource group
	// names in Azure.
	resourceNameLengthMax = 80
)

var configChecker = schema.FieldMap(schema.Fields{
	"location":                  schema.String(),
	"subscription-id":           schema.String(),
	"notification-email":        schema.String(),
	"resource-group":            schema.String(),
	"vnet-name":                 schema.String(),
	"address-space":             schema.String(),
	"app-subnet-name":           schema.String(),
	"app-subnet-prefix":         schema.String(),
	"endpoint-subnet-name":      schema.String(),
	"endpoint-subnet-prefix":    schema.String(),
	"cognitive-account":         schema.String(),
	"private-endpoint-name":     schema.String(),
	"app-service-plan":          schema.String(),
	"plan-sku":                  schema.String(),
	"plan-tier":                 schema.String(),
	"plan-capacity":             schema.ForceInt(),
	"web-app-name":              schema.String(),
	"runtime":                   schema.String(),
	"repo-url":                  schema.String(),
	"branch":                    schema.String(),
	"budget-amount":             schema.ForceInt(),
	"budget-actual-threshold":   schema.ForceInt(),
	"budget-forecast-threshold": schema.ForceInt(),
}, schema.Defaults{
	"location":                  defaultLocation,
	"resource-group":            "paas-rg",
	"vnet-name":                 "paas-vnet",
	"address-space":             "10.10.0.0/16",
	"app-subnet-name":           "app-subnet",
	"app-subnet-prefix":         "10.10.1.0/24",
	"endpoint-subnet-name":      "endpoint-subnet",
	"endpoint-subnet-prefix":    "10.10.2.0/24",
	"cognitive-account":         "ass7",
	"private-endpoint-name":     "cog-pe",
	"app-service-plan":          "paas-asp",
	"plan-sku":                  "P1v2",
	"plan-tier":                 "Premium",
	"plan-capacity":             3,
	"web-app-name":              "paas-webapp-demo-group-6",
	"runtime":                   "PYTHON|3.9",
	"repo-url":                  "https://github.com/StefanFHtechnikum/clco-demo",
	"branch":                    "main",
	"budget-amount":             10,
	"budget-actual-threshold":   80,
	"budget-forecast-threshold": 100,
})

// SubnetSpec names one subnet and its address prefix.
type SubnetSpec struct {
	Name   string
	Prefix string
}

// Config is the validated set of deployment parameters.
type Config struct {
	// Location is the canonicalised Azure region.
	Location string

	// SubscriptionID is the subscription all resources deploy into.
	SubscriptionID string

	// NotificationEmail receives budget alerts.
	NotificationEmail string

	ResourceGroup  string
	VirtualNetwork string
	AddressSpace   string
	AppSubnet      SubnetSpec
	EndpointSubnet SubnetSpec

	// CognitiveAccount is the name of a pre-existing Cognitive
	// Services account. The topology reads its keys; it never creates
	// or modifies the account.
	CognitiveAccount string

	PrivateEndpointName string

	AppServicePlan string
	PlanSKU        string
	PlanTier       string
	PlanCapacity   int
	WebAppName     string
	Runtime        string

	RepoURL string
	Branch  string

	BudgetAmount            int
	BudgetActualThreshold   int
	BudgetForecastThreshold int
}

// Read loads, coerces and validates configuration from a YAML file.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading configuration from %q", path)
	}
	var attrs map[string]any
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Annotatef(err, "parsing configuration from %q", path)
	}
	cfg, err := New(attrs)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid configuration in %q", path)
	}
	return cfg, nil
}

// New coerces the given attributes against the configuration schema,
// applies defaults and validates the result.
func New(attrs map[string]any) (*Config, error) {
	coerced, err := configChecker.Coerce(attrs, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	m := coerced.(map[string]any)
	cfg := &Config{
		Location:          canonicalLocation(m["location"].(string)),
		SubscriptionID:    m["subscription-id"].(string),
		NotificationEmail: m["notification-email"].(string),
		ResourceGroup:     m["resource-group"].(string),
		VirtualNetwork:    m["vnet-name"].(string),
		AddressSpace:      m["address-space"].(string),
		AppSubnet: SubnetSpec{
			Name:   m["app-subnet-name"].(string),
			Prefix: m["app-subnet-prefix"].(string),
		},
		EndpointSubnet: SubnetSpec{
			Name:   m["endpoint-subnet-name"].(string),
			Prefix: m["endpoint-subnet-prefix"].(string),
		},
		CognitiveAccount:        m["cognitive-account"].(string),
		PrivateEndpointName:     m["private-endpoint-name"].(string),
		AppServicePlan:          m["app-service-plan"].(string),
		PlanSKU:                 m["plan-sku"].(string),
		PlanTier:                m["plan-tier"].(string),
		PlanCapacity:            m["plan-capacity"].(int),
		WebAppName:              m["web-app-name"].(string),
		Runtime:                 m["runtime"].(string),
		RepoURL:                 m["repo-url"].(string),
		Branch:                  m["branch"].(string),
		BudgetAmount:            m["budget-amount"].(int),
		BudgetActualThreshold:   m["budget-actual-threshold"].(int),
		BudgetForecastThreshold: m["budget-forecast-threshold"].(int),
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Location == "" {
		return errors.NotValidf("empty location")
	}
	if _, err := uuid.Parse(cfg.SubscriptionID); err != nil {
		return errors.NotValidf("subscription-id %q", cfg.SubscriptionID)
	}
	if _, err := mail.ParseAddress(cfg.NotificationEmail); err != nil {
		return errors.NotValidf("notification-email %q", cfg.NotificationEmail)
	}
	if len(cfg.ResourceGroup) > resourceNameLengthMax {
		return errors.Errorf(
			"resource group name %q is too long, maximum is %d characters",
			cfg.ResourceGroup, resourceNameLengthMax,
		)
	}

	_, vnet, err := net.ParseCIDR(cfg.AddressSpace)
	if err != nil {
		return errors.NotValidf("address-space %q", cfg.AddressSpace)
	}
	for _, subnet := range []SubnetSpec{cfg.AppSubnet, cfg.EndpointSubnet} {
		if subnet.Name == "" {
			return errors.NotValidf("subnet with empty name")
		}
		ip, sub, err := net.ParseCIDR(subnet.Prefix)
		if err != nil {
			return errors.NotValidf("subnet prefix %q", subnet.Prefix)
		}
		ones, _ := sub.Mask.Size()
		vnetOnes, _ := vnet.Mask.Size()
		if !vnet.Contains(ip) || ones < vnetOnes {
			return errors.Errorf(
				"subnet prefix %q is not contained in address space %q",
				subnet.Prefix, cfg.AddressSpace,
			)
		}
	}
	if cfg.AppSubnet.Name == cfg.EndpointSubnet.Name {
		return errors.Errorf("app and endpoint subnets share the name %q", cfg.AppSubnet.Name)
	}

	if cfg.PlanCapacity < 1 {
		return errors.NotValidf("plan-capacity %d", cfg.PlanCapacity)
	}
	if !strings.Contains(cfg.Runtime, "|") {
		return errors.NotValidf("runtime %q", cfg.Runtime)
	}
	repo, err := url.Parse(cfg.RepoURL)
	if err != nil || repo.Host == "" || (repo.Scheme != "https" && repo.Scheme != "http") {
		return errors.NotValidf("repo-url %q", cfg.RepoURL)
	}
	if cfg.Branch == "" {
		return errors.NotValidf("empty branch")
	}

	if cfg.BudgetAmount < 1 {
		return errors.NotValidf("budget-amount %d", cfg.BudgetAmount)
	}
	// Thresholds must be distinct and ordered: the actual-spend alert
	// fires before the forecast alert does.
	if cfg.BudgetActualThreshold <= 0 || cfg.BudgetActualThreshold > 100 {
		return errors.NotValidf("budget-actual-threshold %d", cfg.BudgetActualThreshold)
	}
	if cfg.BudgetForecastThreshold <= cfg.BudgetActualThreshold {
		return errors.Errorf(
			"budget-forecast-threshold %d must exceed budget-actual-threshold %d",
			cfg.BudgetForecastThreshold, cfg.BudgetActualThreshold,
		)
	}
	return nil
}

// BudgetScope returns the subscription scope the budget is declared at.
func (cfg *Config) BudgetScope() string {
	return fmt.Sprintf("/subscriptions/%s", cfg.SubscriptionID)
}

// canonicalLocation strips whitespace and lowercases a region name. ARM
// rejects embedded whitespace; the portal displays regions with it.
func canonicalLocation(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

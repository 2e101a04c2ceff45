// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/consumption/armconsumption"
	"github.com/juju/errors"

	"github.com/clco-group6/paasinfra/internal/topology"
)

// budgetWindow returns the budget's time period. ARM rejects windows
// starting in the past, so the window opens on the first day of the
// current month relative to the deployer's clock and runs for a year.
func (d *Deployer) budgetWindow() (start, end time.Time) {
	now := d.clock.Now().UTC()
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

func (d *Deployer) ensureBudget(ctx context.Context, _ *topology.Outputs) (topology.Attrs, error) {
	budgets, err := d.budgetsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	cfg := d.cfg
	// The random suffix keeps repeat deployments into a shared
	// subscription from fighting over one budget resource.
	name := fmt.Sprintf("paas-budget-%.8s", d.newUUID().String())
	start, end := d.budgetWindow()
	email := []*string{to.Ptr(cfg.NotificationEmail)}

	resp, err := budgets.CreateOrUpdate(ctx, cfg.BudgetScope(), name, armconsumption.Budget{
		Properties: &armconsumption.BudgetProperties{
			Amount:    to.Ptr(float64(cfg.BudgetAmount)),
			Category:  to.Ptr(armconsumption.CategoryTypeCost),
			TimeGrain: to.Ptr(armconsumption.TimeGrainTypeMonthly),
			TimePeriod: &armconsumption.BudgetTimePeriod{
				StartDate: to.Ptr(start),
				EndDate:   to.Ptr(end),
			},
			Notifications: map[string]*armconsumption.Notification{
				fmt.Sprintf("Actual_GreaterThan_%d_Percent", cfg.BudgetActualThreshold): {
					Enabled:       to.Ptr(true),
					Operator:      to.Ptr(armconsumption.OperatorTypeGreaterThan),
					Threshold:     to.Ptr(float64(cfg.BudgetActualThreshold)),
					ThresholdType: to.Ptr(armconsumption.ThresholdTypeActual),
					ContactEmails: email,
				},
				fmt.Sprintf("Forecasted_GreaterThan_%d_Percent", cfg.BudgetForecastThreshold): {
					Enabled:       to.Ptr(true),
					Operator:      to.Ptr(armconsumption.OperatorTypeGreaterThan),
					Threshold:     to.Ptr(float64(cfg.BudgetForecastThreshold)),
					ThresholdType: to.Ptr(armconsumption.ThresholdTypeForecasted),
					ContactEmails: email,
				},
			},
		},
	}, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "creating budget %q", name)
	}
	budgetName := toValue(resp.Name)
	if budgetName == "" {
		budgetName = name
	}
	return topology.Attrs{
		"name": topology.StringValue(budgetName),
	}, nil
}

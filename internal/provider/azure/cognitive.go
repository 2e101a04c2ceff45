// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"

	"github.com/juju/errors"

	"github.com/clco-group6/paasinfra/internal/topology"
)

// readCognitiveAccount resolves the pre-existing Cognitive Services
// account and retrieves its access keys. The account is not managed by
// this topology: realisation is read-only and fails if the account does
// not exist or the caller may not list its keys. The key is published
// as a secret output and must never be logged.
func (d *Deployer) readCognitiveAccount(ctx context.Context, _ *topology.Outputs) (topology.Attrs, error) {
	accounts, err := d.accountsClient()
	if err != nil {
		return nil, errors.Trace(err)
	}
	name := d.cfg.CognitiveAccount
	account, err := accounts.Get(ctx, d.cfg.ResourceGroup, name, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "looking up cognitive services account %q", name)
	}

	endpoint := ""
	if account.Properties != nil {
		endpoint = toValue(account.Properties.Endpoint)
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.cognitiveservices.azure.com/", name)
	}
	id := toValue(account.ID)
	if id == "" {
		id = fmt.Sprintf(
			"/subscriptions/%s/resourceGroups/%s/providers/Microsoft.CognitiveServices/accounts/%s",
			d.cfg.SubscriptionID, d.cfg.ResourceGroup, name,
		)
	}

	keys, err := accounts.ListKeys(ctx, d.cfg.ResourceGroup, name, nil)
	if err != nil {
		return nil, errors.Annotatef(err, "listing keys of cognitive services account %q", name)
	}
	key1 := toValue(keys.Key1)
	if key1 == "" {
		return nil, errors.NotFoundf("access key for cognitive services account %q", name)
	}

	return topology.Attrs{
		"name":     topology.StringValue(name),
		"id":       topology.StringValue(id),
		"endpoint": topology.StringValue(endpoint),
		"key1":     topology.SecretValue(key1),
	}, nil
}

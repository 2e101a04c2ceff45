// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package topology models a deployment as an ordered set of resource
// descriptors with explicit and implicit dependency edges. A descriptor
// declares the desired state of exactly one cloud resource; realising a
// descriptor hands it to the provider's resource manager, which diffs
// desired against actual state. The package owns ordering and reference
// resolution only: retries, partial-failure recovery and state live with
// the resource manager.
package topology

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("paasinfra.topology")

// Reference names an output attribute of another descriptor, for example
// the generated identifier of a virtual network consumed by its subnets.
type Reference struct {
	Resource  string
	Attribute string
}

// Ref is shorthand for constructing a Reference.
func Ref(resource, attribute string) Reference {
	return Reference{Resource: resource, Attribute: attribute}
}

func (r Reference) String() string {
	return r.Resource + "." + r.Attribute
}

// Descriptor is the declared desired state of one cloud resource.
type Descriptor struct {
	// Name is the logical name of the resource, unique within a topology.
	Name string

	// Type is the provider resource type, such as
	// "Microsoft.Network/virtualNetworks".
	Type string

	// DependsOn lists explicit dependencies by logical name, for edges
	// that are not carried by an output reference.
	DependsOn []string

	// Refs lists the output attributes this descriptor consumes. Every
	// reference adds an implicit dependency edge on the referenced
	// resource.
	Refs []Reference

	// Realize creates or updates the resource and returns its output
	// attributes. Outputs of dependencies are resolved through deps.
	// Realisation must be idempotent: the resource manager is expected
	// to treat repeat submission of identical desired state as a no-op.
	Realize func(ctx context.Context, deps *Outputs) (Attrs, error)
}

// dependencies returns the resource names this descriptor must be
// realised after, explicit edges first.
func (d *Descriptor) dependencies() []string {
	seen := make(map[string]bool)
	var deps []string
	add := func(name string) {
		if name == d.Name || seen[name] {
			return
		}
		seen[name] = true
		deps = append(deps, name)
	}
	for _, name := range d.DependsOn {
		add(name)
	}
	for _, ref := range d.Refs {
		add(ref.Resource)
	}
	return deps
}

type export struct {
	name string
	ref  Reference
}

// Topology is an ordered set of descriptors plus the outputs published
// once the whole set has been realised.
type Topology struct {
	descriptors []*Descriptor
	exports     []export
}

// New returns an empty topology.
func New() *Topology {
	return &Topology{}
}

// Add declares a descriptor. Declaration order is preserved and used to
// break ties between otherwise unrelated descriptors.
func (t *Topology) Add(d *Descriptor) {
	t.descriptors = append(t.descriptors, d)
}

// Export publishes the referenced output attribute under the given name
// once the topology has been applied.
func (t *Topology) Export(name string, ref Reference) {
	t.exports = append(t.exports, export{name: name, ref: ref})
}

// Validate checks the declared set for structural problems: duplicate
// logical names, references to resources not present in the topology,
// and dependency cycles. It does not talk to the provider.
func (t *Topology) Validate() error {
	seen := make(map[string]bool)
	for _, d := range t.descriptors {
		if d.Name == "" {
			return errors.NotValidf("descriptor of type %q with empty name", d.Type)
		}
		if d.Realize == nil {
			return errors.NotValidf("descriptor %q without realise function", d.Name)
		}
		if seen[d.Name] {
			return errors.Errorf("duplicate descriptor name %q", d.Name)
		}
		seen[d.Name] = true
	}
	for _, d := range t.descriptors {
		for _, dep := range d.DependsOn {
			if !seen[dep] {
				return errors.Errorf("descriptor %q depends on undeclared resource %q", d.Name, dep)
			}
		}
		for _, ref := range d.Refs {
			if !seen[ref.Resource] {
				return errors.Errorf("descriptor %q references undeclared resource %q", d.Name, ref.Resource)
			}
		}
	}
	for _, e := range t.exports {
		if !seen[e.ref.Resource] {
			return errors.Errorf("export %q references undeclared resource %q", e.name, e.ref.Resource)
		}
	}
	if _, err := t.Order(); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// Order returns the descriptors in creation order: every descriptor
// appears after all of its dependencies. Descriptors with no relation
// keep their declaration order. An error is returned if the dependency
// edges form a cycle.
func (t *Topology) Order() ([]*Descriptor, error) {
	indegree := make(map[string]int, len(t.descriptors))
	dependents := make(map[string][]string, len(t.descriptors))
	for _, d := range t.descriptors {
		deps := d.dependencies()
		indegree[d.Name] = len(deps)
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], d.Name)
		}
	}

	// Kahn's algorithm, scanning in declaration order so that the
	// result is deterministic.
	var order []*Descriptor
	done := make(map[string]bool, len(t.descriptors))
	for len(order) < len(t.descriptors) {
		progress := false
		for _, d := range t.descriptors {
			if done[d.Name] || indegree[d.Name] > 0 {
				continue
			}
			done[d.Name] = true
			order = append(order, d)
			for _, name := range dependents[d.Name] {
				indegree[name]--
			}
			progress = true
		}
		if !progress {
			var stuck []string
			for _, d := range t.descriptors {
				if !done[d.Name] {
					stuck = append(stuck, d.Name)
				}
			}
			return nil, errors.Errorf("dependency cycle detected involving %q", stuck)
		}
	}
	return order, nil
}

// Apply realises every descriptor in dependency order, threading outputs
// from dependencies into their dependents, and returns the resolved
// exports. Realisation stops at the first failure; recovery of partially
// applied topologies is left to the resource manager, which will
// converge the remainder on the next apply.
func (t *Topology) Apply(ctx context.Context) (map[string]Value, error) {
	if err := t.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	order, err := t.Order()
	if err != nil {
		return nil, errors.Trace(err)
	}

	outputs := newOutputs()
	for _, d := range order {
		logger.Debugf("realising %q (%s)", d.Name, d.Type)
		attrs, err := d.Realize(ctx, outputs)
		if err != nil {
			return nil, errors.Annotatef(err, "realising %q", d.Name)
		}
		if attrs == nil {
			attrs = Attrs{}
		}
		outputs.put(d.Name, attrs)
	}

	exports := make(map[string]Value, len(t.exports))
	for _, e := range t.exports {
		v, err := outputs.lookup(e.ref)
		if err != nil {
			return nil, errors.Annotatef(err, "resolving export %q", e.name)
		}
		exports[e.name] = v
	}
	return exports, nil
}

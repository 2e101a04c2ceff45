// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package topology

import (
	"github.com/juju/errors"
)

// secretMask is what secret values render as anywhere a value may end up
// in a log line or on a terminal.
const secretMask = "*****"

// Value is one output attribute of a realised descriptor. Values marked
// secret resolve normally through references but render masked; they
// must never reach logs or persisted output in the clear.
type Value struct {
	value  string
	secret bool
}

// StringValue returns a plain output value.
func StringValue(s string) Value {
	return Value{value: s}
}

// SecretValue returns an output value that renders masked.
func SecretValue(s string) Value {
	return Value{value: s, secret: true}
}

// Reveal returns the underlying value, secret or not. Callers own the
// responsibility of keeping revealed secrets out of logs.
func (v Value) Reveal() string {
	return v.value
}

// IsSecret reports whether the value is masked when rendered.
func (v Value) IsSecret() bool {
	return v.secret
}

// String implements fmt.Stringer, masking secret values.
func (v Value) String() string {
	if v.secret {
		return secretMask
	}
	return v.value
}

// Attrs holds the output attributes published by one realised descriptor.
type Attrs map[string]Value

// Outputs resolves references against descriptors realised so far.
type Outputs struct {
	attrs map[string]Attrs
}

func newOutputs() *Outputs {
	return &Outputs{attrs: make(map[string]Attrs)}
}

func (o *Outputs) put(resource string, attrs Attrs) {
	o.attrs[resource] = attrs
}

func (o *Outputs) lookup(ref Reference) (Value, error) {
	attrs, ok := o.attrs[ref.Resource]
	if !ok {
		return Value{}, errors.NotFoundf("outputs of resource %q", ref.Resource)
	}
	v, ok := attrs[ref.Attribute]
	if !ok {
		return Value{}, errors.NotFoundf("output %q", ref.String())
	}
	return v, nil
}

// Get resolves the named output attribute of an already realised
// descriptor and reveals its value. Realisation order guarantees that
// dependencies are realised first, so a missing resource here means the
// caller omitted the corresponding reference from its descriptor.
func (o *Outputs) Get(resource, attribute string) (string, error) {
	v, err := o.lookup(Ref(resource, attribute))
	if err != nil {
		return "", errors.Trace(err)
	}
	return v.Reveal(), nil
}

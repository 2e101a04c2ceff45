// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

// toValue returns the value of a pointer or the zero value if the
// pointer is nil. ARM response models are all-pointer structs.
func toValue[T any](v *T) T {
	if v == nil {
		var result T
		return result
	}
	return *v
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks control requests before they reach the request
// queue. Install, restore and conduit requests name a pilot and an optional
// expiry; cradle requests name a cradle and, for a user info write, the
// identity to store. Every failure is one of the exported Err values so the
// HTTP layer can answer with 400.
package validators

import "context"

// Validator checks obj. When fields are given only those fields are
// checked; an unknown name yields ErrUnknownField.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

// Package utils provides general-purpose helpers shared by the daemon and
// the control client: context keys, JSON responses, the resty client and
// control token signing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// SubjectCtxKey stores the "sub" claim of an authenticated control token.
var SubjectCtxKey = contextKey("subject")

// GetSubjectFromContext returns the authenticated token subject, if any.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(SubjectCtxKey).(string)
	return sub, ok
}

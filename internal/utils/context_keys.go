package utils

// contextKey is a type used for context keys to avoid conflicts with other
// packages' context keys.
type contextKey struct {
	name string
}

// String returns the string representation of the context key.
func (c *contextKey) String() string {
	return c.name
}

// UserKey is the gin context key holding the cached session user after the
// auth middleware has run.
var UserKey = &contextKey{"sessionUser"}

// TraceIdKey is the gin context key holding the per-request trace id.
var TraceIdKey = &contextKey{"traceId"}

// SanitizedPayloadKey is the gin context key holding the decoded, sanitized
// and validated request body.
var SanitizedPayloadKey = &contextKey{"sanitizedPayload"}

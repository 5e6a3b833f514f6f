// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// ActorKey is the context key for actor ID.
// Exported so it can be used consistently across packages.
type ActorKey struct{}

// ProvenanceKey is the context key for request provenance.
type ProvenanceKey struct{}

// Provenance identifies where a request came from. It is written onto audit
// rows when they are created.
type Provenance struct {
	IPAddress string
	UserAgent string
}

// WithActorID returns a context with the actor ID embedded.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, ActorKey{}, actorID)
}

// ActorFromContext returns the actor ID from context, or empty string if not set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ActorKey{}).(string); ok {
		return v
	}
	return ""
}

// WithProvenance returns a context carrying the request's origin.
func WithProvenance(ctx context.Context, p Provenance) context.Context {
	return context.WithValue(ctx, ProvenanceKey{}, p)
}

// ProvenanceFromContext returns the request's origin, or the zero value.
func ProvenanceFromContext(ctx context.Context) Provenance {
	if v, ok := ctx.Value(ProvenanceKey{}).(Provenance); ok {
		return v
	}
	return Provenance{}
}

package domain

import (
	"context"

	"donormatch/internal/core/contact"
)

// ExpanderPort turns an under-specified contact into geography-complete
// variants. Zero variants means "no usable identity", not an error
type ExpanderPort interface {
	Expand(ctx context.Context, c contact.Contact) ([]contact.Contact, error)
}

// ResolverPort resolves contacts against the contribution warehouse
type ResolverPort interface {
	Resolve(ctx context.Context, c contact.Contact) (Resolution, error)
	ResolveBatch(ctx context.Context, contacts []contact.Contact) (BatchResult, error)
}

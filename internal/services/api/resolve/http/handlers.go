// Package http provides http transport for resolve
package http

import (
	stdhttp "net/http"

	"donormatch/internal/core/contact"
	"donormatch/internal/modkit/httpkit"
	"donormatch/internal/services/api/resolve/domain"
	resolvedom "donormatch/internal/services/resolve/domain"
)

// Register mounts the router
func Register(r httpkit.Router, resolver resolvedom.ResolverPort) {
	h := &handlers{resolver: resolver}
	httpkit.PostJSON[domain.ResolveInput](r, "/", h.resolve)
	httpkit.PostJSON[domain.BatchInput](r, "/batch", h.batch)
}

type handlers struct {
	resolver resolvedom.ResolverPort
}

func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveInput) (any, error) {
	return h.resolver.Resolve(r.Context(), in.Contact())
}

func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	contacts := make([]contact.Contact, 0, len(in.Contacts))
	for _, c := range in.Contacts {
		contacts = append(contacts, c.Contact())
	}
	return h.resolver.ResolveBatch(r.Context(), contacts)
}

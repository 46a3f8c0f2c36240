// Package module wires resolution into the API using modkit
package module

import (
	"fmt"
	"net/http"
	"os"

	"donormatch/internal/core/nickname"
	modkit "donormatch/internal/modkit"
	"donormatch/internal/modkit/httpkit"

	rhttp "donormatch/internal/services/api/resolve/http"
	contribrepo "donormatch/internal/services/contrib/repo"
	contribsvc "donormatch/internal/services/contrib/service"
	georepo "donormatch/internal/services/geo/repo"
	geosvc "donormatch/internal/services/geo/service"
	resolvedom "donormatch/internal/services/resolve/domain"
	resolvesvc "donormatch/internal/services/resolve/service"
)

// Module implements the resolve API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	resolver resolvedom.ResolverPort
}

// Ports exposes the resolver for cross-module use
type Ports struct {
	Resolver resolvedom.ResolverPort
}

// New constructs the resolve module. Requires both stores on deps
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("resolve"),
		modkit.WithPrefix("/resolve"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	if deps.PG == nil {
		panic("resolve module requires postgres on deps")
	}
	if deps.CH == nil {
		panic("resolve module requires clickhouse on deps")
	}

	names := loadNames(cfg.NicknamesPath)

	geo := geosvc.New(deps.PG, georepo.NewPG())
	expander := resolvesvc.NewExpander(geo)
	selector := contribsvc.New(contribrepo.NewCH(deps.CH), names, cfg.QueryTimeout)
	resolver := resolvesvc.New(expander, selector, cfg.Workers)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		resolver:  resolver,
	}
	m.ports = Ports{Resolver: resolver}

	external := b.Register
	m.register = func(r httpkit.Router) {
		rhttp.Register(r, m.resolver)
		if external != nil {
			external(r)
		}
	}
	return m
}

// loadNames reads the nickname cluster file, or returns an empty index when
// no path is configured. A configured but unreadable file is fatal
func loadNames(path string) *nickname.Index {
	if path == "" {
		idx, err := nickname.NewIndex(nil)
		if err != nil {
			panic(fmt.Sprintf("resolve module: empty nickname index: %v", err))
		}
		return idx
	}
	f, err := os.Open(path)
	if err != nil {
		panic(fmt.Sprintf("resolve module: open nicknames %q: %v", path, err))
	}
	defer f.Close()

	idx, err := nickname.ReadJSONL(f)
	if err != nil {
		panic(fmt.Sprintf("resolve module: load nicknames %q: %v", path, err))
	}
	return idx
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }

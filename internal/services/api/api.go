// Package api provides the HTTP API for the application
package api

import (
	"donormatch/internal/platform/config"
	"donormatch/internal/platform/logger"
	phttp "donormatch/internal/platform/net/http"
	"donormatch/internal/platform/store"

	"donormatch/internal/modkit"
	"donormatch/internal/modkit/httpkit"
	"donormatch/internal/modkit/module"

	metamod "donormatch/internal/services/api/meta/module"
	resolvemod "donormatch/internal/services/api/resolve/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	mods := []module.Module{
		metamod.New(deps),
		resolvemod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

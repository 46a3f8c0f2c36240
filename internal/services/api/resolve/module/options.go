package module

import (
	"time"

	"donormatch/internal/platform/config"
)

// Options controls resolution behavior
type Options struct {
	// Workers sizes the batch matching pool
	Workers int

	// QueryTimeout bounds each warehouse query, 0 disables the bound
	QueryTimeout time.Duration

	// NicknamesPath points at the nickname cluster JSONL, empty means no
	// nickname expansion (literal first names only)
	NicknamesPath string
}

// FromConfig reads RESOLVE_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("RESOLVE_")
	return Options{
		Workers:       rc.MayInt("WORKERS", 8),
		QueryTimeout:  rc.MayDuration("QUERY_TIMEOUT", 15*time.Second),
		NicknamesPath: rc.MayString("NICKNAMES_PATH", ""),
	}
}

// Command donormatch-resolve resolves a contacts export against the
// contribution warehouse and writes one resolution per line as JSON
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"donormatch/internal/adapters/contacts"
	"donormatch/internal/core/nickname"
	"donormatch/internal/modkit/repokit"
	"donormatch/internal/platform/config"
	"donormatch/internal/platform/logger"
	"donormatch/internal/platform/store"

	contribrepo "donormatch/internal/services/contrib/repo"
	contribsvc "donormatch/internal/services/contrib/service"
	georepo "donormatch/internal/services/geo/repo"
	geosvc "donormatch/internal/services/geo/service"
	resolvesvc "donormatch/internal/services/resolve/service"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	resolveCfg := root.Prefix("CORE_RESOLVE_")

	l := logger.Get()

	var (
		fContacts  = flag.String("contacts", "", "path to the contacts export")
		fFormat    = flag.String("format", "google", "contacts format: google | jsonl")
		fNicknames = flag.String("nicknames", "", "path to the nickname cluster JSONL (optional)")
		fWorkers   = flag.Int("workers", resolveCfg.MayInt("WORKERS", 8), "matching pool size")
		fOut       = flag.String("out", "", "output path, default stdout")
	)
	flag.Parse()

	if *fContacts == "" {
		l.Panic().Msg("must provide -contacts")
	}

	var provider contacts.Provider
	switch *fFormat {
	case "google":
		provider = contacts.NewGoogleCSV(*fContacts)
	case "jsonl":
		provider = contacts.NewJSONL(*fContacts)
	default:
		l.Panic().Str("format", *fFormat).Msg("unknown contacts format")
	}

	names := loadNames(l, *fNicknames)

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "donormatch",
			ClientTag:  "resolve",
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	ctx := context.Background()

	// fail fast if either store is unreachable
	repokit.MustGuard(ctx, st)

	loaded, err := provider.Contacts(ctx)
	if err != nil {
		l.Fatal().Err(err).Msg("loading contacts failed")
	}
	for _, d := range loaded.Diagnostics {
		l.Warn().
			Int("record", d.Record).
			Str("field", d.Field).
			Str("reason", string(d.Reason)).
			Msg(d.Detail)
	}
	l.Info().
		Int("contacts", len(loaded.Contacts)).
		Int("skipped", loaded.Skipped()).
		Int("diagnostics", len(loaded.Diagnostics)).
		Msg("contacts loaded")

	geo := geosvc.New(st.PG, georepo.NewPG())
	selector := contribsvc.New(
		contribrepo.NewCH(st.CH),
		names,
		resolveCfg.MayDuration("QUERY_TIMEOUT", 0),
	)
	resolver := resolvesvc.New(resolvesvc.NewExpander(geo), selector, *fWorkers)

	result, err := resolver.ResolveBatch(ctx, loaded.Contacts)
	if err != nil {
		l.Fatal().Err(err).Msg("batch resolve failed")
	}

	out := os.Stdout
	if *fOut != "" {
		f, err := os.Create(*fOut)
		if err != nil {
			l.Fatal().Err(err).Str("path", *fOut).Msg("cannot create output")
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	for _, res := range result.Resolutions {
		if err := enc.Encode(res); err != nil {
			l.Fatal().Err(err).Msg("writing output failed")
		}
	}

	l.Info().
		Str("run_id", result.RunID).
		Int("resolved", len(result.Resolutions)).
		Int("matched", result.Matched).
		Msg("done")
}

func loadNames(l *logger.Logger, path string) *nickname.Index {
	if path == "" {
		idx, err := nickname.NewIndex(nil)
		if err != nil {
			l.Panic().Err(err).Msg("empty nickname index")
		}
		return idx
	}
	f, err := os.Open(path)
	if err != nil {
		l.Panic().Err(err).Str("path", path).Msg("cannot open nicknames")
	}
	defer f.Close()

	idx, err := nickname.ReadJSONL(f)
	if err != nil {
		l.Panic().Err(err).Str("path", path).Msg("cannot load nicknames")
	}
	return idx
}

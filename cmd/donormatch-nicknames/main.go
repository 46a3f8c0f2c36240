// Command donormatch-nicknames builds nickname clusters from messy raw
// lines and writes them as JSONL, one sorted name array per line
package main

import (
	"flag"
	"os"

	"donormatch/internal/core/nickname"
	"donormatch/internal/platform/logger"
)

func main() {
	l := logger.Get()

	var (
		fIn  = flag.String("in", "", "raw nickname lines, default stdin")
		fOut = flag.String("out", "", "cluster JSONL output, default stdout")
	)
	flag.Parse()

	in := os.Stdin
	if *fIn != "" {
		f, err := os.Open(*fIn)
		if err != nil {
			l.Panic().Err(err).Str("path", *fIn).Msg("cannot open input")
		}
		defer f.Close()
		in = f
	}

	b := nickname.NewBuilder()
	if err := b.ReadMessy(in); err != nil {
		l.Fatal().Err(err).Msg("reading raw lines failed")
	}
	idx, err := b.Build()
	if err != nil {
		l.Fatal().Err(err).Msg("building clusters failed")
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
	if err := idx.WriteJSONL(out); err != nil {
		l.Fatal().Err(err).Msg("writing clusters failed")
	}

	l.Info().Int("clusters", idx.Len()).Msg("done")
}

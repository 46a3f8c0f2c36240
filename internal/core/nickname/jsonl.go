package nickname

import (
	"bufio"
	"encoding/json"
	"io"

	perr "donormatch/internal/platform/errors"
)

// ReadJSONL loads a finalized cluster set, one JSON array of names per line.
// Line order defines cluster ids, so the file must not be reordered once
// fuzzy ids derived from those ids are in circulation
func ReadJSONL(r io.Reader) (*Index, error) {
	var clusters [][]string
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeBadData, "nickname jsonl line %d", line)
		}
		if len(names) == 0 {
			return nil, perr.BadDataf("nickname jsonl line %d: empty cluster", line)
		}
		clusters = append(clusters, names)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeBadData, "read nickname jsonl")
	}
	return NewIndex(clusters)
}

// WriteJSONL serializes the cluster set in id order, one array per line
func (x *Index) WriteJSONL(w io.Writer) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, cluster := range x.clusters {
		if err := enc.Encode(cluster); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Package repo provides ClickHouse bindings for the contribution domain.Repo
package repo

import (
	"context"
	"time"

	"donormatch/internal/core/contact"
	perr "donormatch/internal/platform/errors"
	"donormatch/internal/platform/store"
	"donormatch/internal/services/contrib/domain"
)

// CH queries the contribution warehouse
type CH struct {
	ch store.Clickhouse
}

// Compile-time assertion: CH implements domain.Repo
var _ domain.Repo = (*CH)(nil)

// NewCH wraps the clickhouse seam
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("contrib.Repo requires a non-nil Clickhouse seam")
	}
	return &CH{ch: ch}
}

// recordColumns is shared by both match queries. The IND and positive-amount
// filters and the committee join are part of every contribution select, so
// callers never see refunds, PACs, or orphaned committee ids
const recordSelect = `
	SELECT
		c.sub_id, c.name, c.city, c.state, c.zip_code, c.amount_cents, c.transaction_dt,
		cm.id, cm.name, cm.party
	FROM contributions AS c
	INNER JOIN committees AS cm ON cm.id = c.cmte_id
	WHERE c.entity_tp = 'IND'
	  AND c.amount_cents > 0
`

func scanRecords(rows store.Rows) ([]domain.Record, error) {
	defer rows.Close()
	var out []domain.Record
	for rows.Next() {
		var (
			rec domain.Record
			dt  time.Time
		)
		if err := rows.Scan(
			&rec.ID, &rec.Name, &rec.City, &rec.State, &rec.ZipCode, &rec.AmountCents, &dt,
			&rec.Committee.ID, &rec.Committee.Name, &rec.Committee.Party,
		); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan contribution")
		}
		rec.Date = dt
		out = append(out, rec)
	}
	return out, rows.Err()
}

// joinedNames composes the "LAST, FIRST" keys the warehouse indexes on
func joinedNames(last string, firsts []string) []string {
	out := make([]string, 0, len(firsts))
	for _, f := range firsts {
		out = append(out, contact.JoinName(last, f))
	}
	return out
}

// ByLastZipFirsts matches on last name, zip5, and any first-name variant
func (r *CH) ByLastZipFirsts(ctx context.Context, last, zip5 string, firsts []string) ([]domain.Record, error) {
	if len(firsts) == 0 {
		return nil, nil
	}
	rows, err := r.ch.Query(ctx, recordSelect+`
	  AND c.name IN (?)
	  AND substring(c.zip_code, 1, 5) = ?
	`, joinedNames(last, firsts), zip5)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "contributions by zip")
	}
	return scanRecords(rows)
}

// ByLastCityStateFirsts matches on last name, city, state, and any first-name variant
func (r *CH) ByLastCityStateFirsts(
	ctx context.Context,
	last, city, state string,
	firsts []string,
) ([]domain.Record, error) {
	if len(firsts) == 0 {
		return nil, nil
	}
	rows, err := r.ch.Query(ctx, recordSelect+`
	  AND c.name IN (?)
	  AND c.city = ?
	  AND c.state = ?
	`, joinedNames(last, firsts), city, state)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "contributions by city/state")
	}
	return scanRecords(rows)
}

// CommitteeByID fetches one committee row. A missing id is a nil result,
// not an error
func (r *CH) CommitteeByID(ctx context.Context, id string) (*domain.Committee, error) {
	rows, err := r.ch.Query(ctx, `
		SELECT id, name, party
		FROM committees
		WHERE id = ?
		LIMIT 1
	`, id)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "committee by id")
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	var cm domain.Committee
	if err := rows.Scan(&cm.ID, &cm.Name, &cm.Party); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan committee")
	}
	return &cm, rows.Err()
}

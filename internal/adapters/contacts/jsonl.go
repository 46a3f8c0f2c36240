package contacts

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"donormatch/internal/core/contact"
	perr "donormatch/internal/platform/errors"
)

// jsonlRecord is the wire form of one contact line
type jsonlRecord struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	Phone     string `json:"phone"`
	ImportID  string `json:"import_id"`
}

// JSONL reads contacts from a file of newline-delimited JSON objects
type JSONL struct {
	path string
}

var _ Provider = (*JSONL)(nil)

// NewJSONL builds a provider over a JSONL file at path
func NewJSONL(path string) *JSONL {
	return &JSONL{path: path}
}

// Contacts implements Provider
func (j *JSONL) Contacts(ctx context.Context) (Result, error) {
	f, err := os.Open(j.path)
	if err != nil {
		return Result{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "open contacts jsonl")
	}
	defer f.Close()
	return parseJSONL(ctx, f)
}

func parseJSONL(ctx context.Context, r io.Reader) (Result, error) {
	var out Result
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for rec := 1; sc.Scan(); rec++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		var row jsonlRecord
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				Record: rec,
				Reason: ReasonBadRecord,
				Detail: err.Error(),
			})
			continue
		}
		if strings.TrimSpace(row.FirstName) == "" || strings.TrimSpace(row.LastName) == "" {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				Record: rec,
				Field:  "first_name/last_name",
				Reason: ReasonMissingName,
				Detail: "record needs both a first and a last name",
			})
			continue
		}

		importID := row.ImportID
		if importID == "" {
			importID = fmt.Sprintf("jsonl:%d", rec)
		}
		out.Contacts = append(out.Contacts, contact.New(
			row.FirstName,
			row.LastName,
			row.City,
			row.State,
			row.ZipCode,
			row.Phone,
			importID,
		))
	}
	if err := sc.Err(); err != nil {
		return Result{}, perr.Wrap(err, perr.ErrorCodeBadData, "scan contacts jsonl")
	}
	return out, nil
}

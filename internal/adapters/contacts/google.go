package contacts

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"donormatch/internal/core/contact"
	perr "donormatch/internal/platform/errors"
)

// Column names of a Google contacts CSV export
const (
	colGivenName  = "Given Name"
	colFamilyName = "Family Name"
	colCity       = "Address 1 - City"
	colRegion     = "Address 1 - Region"
	colPostal     = "Address 1 - Postal Code"
	colPhone      = "Phone 1 - Value"
)

// GoogleCSV reads Google's contacts CSV export format
type GoogleCSV struct {
	path string
}

var _ Provider = (*GoogleCSV)(nil)

// NewGoogleCSV builds a provider over an export file at path
func NewGoogleCSV(path string) *GoogleCSV {
	return &GoogleCSV{path: path}
}

// Contacts implements Provider
func (g *GoogleCSV) Contacts(ctx context.Context) (Result, error) {
	f, err := os.Open(g.path)
	if err != nil {
		return Result{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "open contacts export")
	}
	defer f.Close()
	return parseGoogleCSV(ctx, f)
}

func parseGoogleCSV(ctx context.Context, r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Result{}, perr.Wrap(err, perr.ErrorCodeBadData, "read contacts header")
	}
	cols, err := indexColumns(header)
	if err != nil {
		return Result{}, err
	}

	var out Result
	for rec := 1; ; rec++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				Record: rec,
				Reason: ReasonBadRecord,
				Detail: err.Error(),
			})
			continue
		}

		first := strings.TrimSpace(cols.get(row, colGivenName))
		last := strings.TrimSpace(cols.get(row, colFamilyName))
		if first == "" || last == "" {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				Record: rec,
				Field:  colGivenName + "/" + colFamilyName,
				Reason: ReasonMissingName,
				Detail: "record needs both a given and a family name",
			})
			continue
		}

		zip := strings.ReplaceAll(strings.TrimSpace(cols.get(row, colPostal)), "-", "")
		if zip != "" && len(zip) != 5 && len(zip) != 9 {
			out.Diagnostics = append(out.Diagnostics, Diagnostic{
				Record: rec,
				Field:  colPostal,
				Reason: ReasonBadZip,
				Detail: fmt.Sprintf("zip %q is not 5 or 9 digits", zip),
			})
			zip = ""
		}

		phone := strings.TrimSpace(cols.get(row, colPhone))
		if phone != "" {
			e164 := contact.NormalizeE164(phone)
			if e164 == "" {
				out.Diagnostics = append(out.Diagnostics, Diagnostic{
					Record: rec,
					Field:  colPhone,
					Reason: ReasonBadPhone,
					Detail: fmt.Sprintf("phone %q is not a valid number", phone),
				})
			}
			phone = e164
		}

		out.Contacts = append(out.Contacts, contact.New(
			first,
			last,
			cols.get(row, colCity),
			cols.get(row, colRegion),
			zip,
			phone,
			fmt.Sprintf("google:%d", rec),
		))
	}
	return out, nil
}

// columnIndex maps required header names to field positions
type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, want := range []string{colGivenName, colFamilyName, colCity, colRegion, colPostal, colPhone} {
		if _, ok := idx[want]; !ok {
			return nil, perr.BadDataf("contacts export is missing column %q", want)
		}
	}
	return idx, nil
}

func (c columnIndex) get(row []string, col string) string {
	i, ok := c[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

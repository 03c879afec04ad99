// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package join

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/abstract-insight/internal/extract"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

const (
	colTitle    = "title"
	colAccepted = "accepted"
)

// LoadAcceptance reads the acceptance-outcome CSV. The header must contain
// Title and Accepted columns (case-insensitive, extra columns ignored).
// Acceptance keys are derived with the same normalization as record keys.
// Data problems are collected across the whole file and reported together:
// unknown outcome values, titles that normalize to an empty key, and keys
// appearing more than once are all load errors rather than silent labels.
func LoadAcceptance(path string) ([]types.AcceptanceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening acceptance table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading acceptance table header %s: %w", path, err)
	}

	titleIdx, acceptedIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case colTitle:
			titleIdx = i
		case colAccepted:
			acceptedIdx = i
		}
	}
	if titleIdx < 0 {
		return nil, fmt.Errorf("acceptance table %s: missing required column %q", path, "Title")
	}
	if acceptedIdx < 0 {
		return nil, fmt.Errorf("acceptance table %s: missing required column %q", path, "Accepted")
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading acceptance table %s: %w", path, err)
	}

	var (
		records  []types.AcceptanceRecord
		problems []string
		seen     = map[string]int{} // key -> first row number
	)

	for i, row := range rows {
		rowNum := i + 2 // header is row 1

		title := strings.TrimSpace(row[titleIdx])
		key := extract.TitleKey(title)
		if key == "" {
			problems = append(problems, fmt.Sprintf("row %d: title %q normalizes to an empty key", rowNum, title))
			continue
		}

		outcome := types.Outcome(strings.ToLower(strings.TrimSpace(row[acceptedIdx])))
		if !outcome.Valid() {
			problems = append(problems, fmt.Sprintf("row %d: invalid accepted value %q (want yes or no)", rowNum, row[acceptedIdx]))
			continue
		}

		if first, dup := seen[key]; dup {
			problems = append(problems, fmt.Sprintf("row %d: duplicate key %q (first seen on row %d)", rowNum, key, first))
			continue
		}
		seen[key] = rowNum

		records = append(records, types.AcceptanceRecord{TitleKey: key, Accepted: outcome})
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("acceptance table %s: %s", path, strings.Join(problems, "; "))
	}
	return records, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package join matches extracted submission records against the acceptance
// table and assigns corpus identifiers to the rows that survive.
package join

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

const recordsDir = "records"

// Result holds the outcome of a join run.
type Result struct {
	Joined            int
	DroppedIncomplete int // records with a missing field, so no usable key
	DroppedNoMatch    int // records whose key has no acceptance row
	AcceptanceRows    int
}

// Total returns the number of records considered.
func (r Result) Total() int {
	return r.Joined + r.DroppedIncomplete + r.DroppedNoMatch
}

// LoadRecords reads every record YAML under submissionsDir/records/, in
// submission order.
func LoadRecords(submissionsDir string) ([]types.AbstractRecord, error) {
	dir := filepath.Join(submissionsDir, recordsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading records directory %s: %w", dir, err)
	}

	var records []types.AbstractRecord
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading record %s: %w", path, err)
		}

		var rec types.AbstractRecord
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("parsing record %s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Join inner-joins extracted records with acceptance rows on TitleKey.
// Incomplete records and records without an acceptance match are dropped and
// counted, with a warning line per drop written to w. Surviving rows receive
// sequential IDs in submission order. Duplicate keys among the joinable
// records are an error: two submissions sharing a key could not be labeled
// unambiguously, and that is a data problem to surface, not to guess around.
func Join(records []types.AbstractRecord, acceptance []types.AcceptanceRecord, w io.Writer) ([]types.JoinedAbstract, Result, error) {
	result := Result{AcceptanceRows: len(acceptance)}

	var joinable []types.AbstractRecord
	for _, rec := range records {
		if !rec.Complete() || rec.TitleKey == "" {
			fmt.Fprintf(w, "warning: dropping %s (incomplete record)\n", rec.Submission)
			result.DroppedIncomplete++
			continue
		}
		joinable = append(joinable, rec)
	}

	if err := checkDuplicateKeys(joinable); err != nil {
		return nil, Result{}, err
	}

	outcomes := make(map[string]types.Outcome, len(acceptance))
	for _, a := range acceptance {
		outcomes[a.TitleKey] = a.Accepted
	}

	sort.Slice(joinable, func(i, j int) bool {
		return joinable[i].Submission < joinable[j].Submission
	})

	var joined []types.JoinedAbstract
	for _, rec := range joinable {
		outcome, ok := outcomes[rec.TitleKey]
		if !ok {
			fmt.Fprintf(w, "warning: dropping %s (no acceptance row for key %q)\n", rec.Submission, rec.TitleKey)
			result.DroppedNoMatch++
			continue
		}

		joined = append(joined, types.JoinedAbstract{
			ID:         len(joined) + 1,
			Submission: rec.Submission,
			Title:      rec.Title,
			TitleKey:   rec.TitleKey,
			Abstract:   rec.Abstract,
			Accepted:   outcome,
		})
	}

	result.Joined = len(joined)
	return joined, result, nil
}

// checkDuplicateKeys returns an error naming every key shared by two or more
// records.
func checkDuplicateKeys(records []types.AbstractRecord) error {
	bySubmission := map[string][]string{}
	for _, rec := range records {
		bySubmission[rec.TitleKey] = append(bySubmission[rec.TitleKey], rec.Submission)
	}

	var problems []string
	for key, subs := range bySubmission {
		if len(subs) > 1 {
			sort.Strings(subs)
			problems = append(problems, fmt.Sprintf("key %q shared by %s", key, strings.Join(subs, ", ")))
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("duplicate title keys among records: %s", strings.Join(problems, "; "))
	}
	return nil
}

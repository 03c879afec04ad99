// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"sort"

	rake "github.com/afjoseph/RAKE.Go"

	"github.com/pdiddy/abstract-insight/pkg/types"
)

// Keywords runs RAKE over each category's pooled abstract text and keeps the
// top n phrases per category. Ties break alphabetically so reruns stay
// stable.
func Keywords(pooled map[string]string, n int) []types.KeywordRow {
	categories := make([]string, 0, len(pooled))
	for c := range pooled {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var rows []types.KeywordRow
	for _, category := range categories {
		candidates := rake.RunRake(pooled[category])
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].Value != candidates[j].Value {
				return candidates[i].Value > candidates[j].Value
			}
			return candidates[i].Key < candidates[j].Key
		})

		for i, c := range candidates {
			if i >= n {
				break
			}
			rows = append(rows, types.KeywordRow{Category: category, Phrase: c.Key, Score: c.Value})
		}
	}
	return rows
}

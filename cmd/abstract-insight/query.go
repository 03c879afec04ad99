// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-insight/internal/corpus"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [terms...]",
	Short: "Search corpus abstracts with full-text search and filters",
	Long: `Query searches the stored abstracts using FTS5 full-text search over
titles and abstract bodies, optionally filtered by review outcome.
Full-text matches are ranked by relevance; filter-only queries are
sorted by submission.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("query", "", "full-text search query")
	queryCmd.Flags().String("accepted", "", "filter by outcome: yes or no")
	queryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	queryCmd.Flags().Bool("json", false, "output results as JSON")
	queryCmd.Flags().String("corpus-dir", "corpus", "base directory for the corpus database")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search terms or --accepted")
	}

	store, err := corpus.NewStore(stringSetting(cmd, "corpus-dir"))
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return corpus.FormatJSON(results, os.Stdout)
	}
	corpus.FormatTable(results, os.Stdout)
	return nil
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) (corpus.QueryOptions, error) {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	accepted, _ := cmd.Flags().GetString("accepted")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := corpus.QueryOptions{
		Query:      queryText,
		Accepted:   types.Outcome(accepted),
		MaxResults: limit,
	}
	if accepted != "" && !opts.Accepted.Valid() {
		return corpus.QueryOptions{}, fmt.Errorf("invalid --accepted value %q (want yes or no)", accepted)
	}
	return opts, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-insight/internal/corpus"
	"github.com/pdiddy/abstract-insight/internal/join"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Match extracted records with acceptance outcomes",
	Long: `Join loads the extracted records and the acceptance CSV, matches them
on the normalized title key, and rebuilds the corpus database from the
matched abstracts. Incomplete records and records without an acceptance
row are dropped with a warning; duplicate keys on either side are an
error.`,
	RunE: runJoin,
}

func init() {
	joinCmd.Flags().String("submissions-dir", "submissions", "base directory for submissions (contains records/)")
	joinCmd.Flags().String("acceptance", "acceptance.csv", "path to the acceptance-outcome CSV")
	joinCmd.Flags().String("corpus-dir", "corpus", "base directory for the corpus database")

	rootCmd.AddCommand(joinCmd)
}

func runJoin(cmd *cobra.Command, args []string) error {
	cfg := types.JoinConfig{
		SubmissionsDir: stringSetting(cmd, "submissions-dir"),
		AcceptancePath: stringSetting(cmd, "acceptance"),
		CorpusDir:      stringSetting(cmd, "corpus-dir"),
	}
	return joinStage(cfg, os.Stdout)
}

func joinStage(cfg types.JoinConfig, w io.Writer) error {
	records, err := join.LoadRecords(cfg.SubmissionsDir)
	if err != nil {
		return err
	}
	acceptance, err := join.LoadAcceptance(cfg.AcceptancePath)
	if err != nil {
		return err
	}

	joined, result, err := join.Join(records, acceptance, w)
	if err != nil {
		return err
	}

	store, err := corpus.NewStore(cfg.CorpusDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceAbstracts(context.Background(), joined); err != nil {
		return fmt.Errorf("storing joined abstracts: %w", err)
	}

	fmt.Fprintf(w, "\njoined %d of %d records against %d acceptance rows (%d incomplete, %d unmatched)\n",
		result.Joined, result.Total(), result.AcceptanceRows,
		result.DroppedIncomplete, result.DroppedNoMatch)
	return nil
}

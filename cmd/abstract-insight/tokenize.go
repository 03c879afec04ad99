package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-insight/internal/corpus"
	"github.com/pdiddy/abstract-insight/internal/tokenize"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize",
	Short: "Split corpus abstracts into cleaned word tokens",
	Long: `Tokenize splits every corpus abstract into lowercase word tokens,
removes stop words and bare numbers, and replaces the corpus token
table. The single letter "r" survives cleaning by default; use --keep
to adjust the exemption list.`,
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("corpus-dir", "corpus", "base directory for the corpus database")
	tokenizeCmd.Flags().String("stopwords", "", "newline-separated stop-word list replacing the built-in one")
	tokenizeCmd.Flags().StringSlice("keep", nil, "words exempt from stop-word removal (default: r)")

	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	keep, _ := cmd.Flags().GetStringSlice("keep")
	cfg := types.TokenizeConfig{
		CorpusDir:     stringSetting(cmd, "corpus-dir"),
		StopWordsPath: stringSetting(cmd, "stopwords"),
		KeepWords:     keep,
	}
	return tokenizeStage(cfg, os.Stdout)
}

func tokenizeStage(cfg types.TokenizeConfig, w io.Writer) error {
	var stopWords []string
	if cfg.StopWordsPath != "" {
		var err error
		stopWords, err = tokenize.LoadStopWords(cfg.StopWordsPath)
		if err != nil {
			return err
		}
	}
	tk := tokenize.New(stopWords, cfg.KeepWords)

	store, err := corpus.NewStore(cfg.CorpusDir)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := tokenize.Run(context.Background(), store, tk, w)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTokenize summary: %d abstracts, %d tokens kept (%d stop words, %d numbers removed)\n",
		summary.Abstracts, summary.Tokens, summary.StopWords, summary.Numerics)
	return nil
}

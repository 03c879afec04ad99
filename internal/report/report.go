// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report computes corpus statistics and renders them as an HTML
// chart page.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pdiddy/abstract-insight/internal/corpus"
	"github.com/pdiddy/abstract-insight/internal/stats"
	"github.com/pdiddy/abstract-insight/pkg/types"
)

const (
	reportFile    = "report.html"
	densityPoints = 128

	defaultTopWords    = 20
	defaultTopTfIdf    = 10
	defaultTopKeywords = 10
)

// Data holds the statistics the report renders.
type Data struct {
	Counts      corpus.Counts
	Lengths     []types.AbstractLength
	Frequencies []types.FrequencyRow
	Weights     []types.TfIdfRow
	Keywords    []types.KeywordRow
}

// Collect computes word statistics over the tokenized corpus, persists
// the full frequency and weight tables, and returns the top rows for
// rendering.
func Collect(ctx context.Context, store *corpus.Store, cfg types.ReportConfig) (Data, error) {
	if cfg.TopWords <= 0 {
		cfg.TopWords = defaultTopWords
	}
	if cfg.TopTfIdf <= 0 {
		cfg.TopTfIdf = defaultTopTfIdf
	}
	if cfg.TopKeywords <= 0 {
		cfg.TopKeywords = defaultTopKeywords
	}

	tokens, err := store.CategoryTokens(ctx)
	if err != nil {
		return Data{}, err
	}

	frequencies := stats.Frequencies(tokens)
	weights := stats.TfIdf(frequencies)

	if err := store.SaveFrequencies(ctx, frequencies); err != nil {
		return Data{}, fmt.Errorf("saving frequencies: %w", err)
	}
	if err := store.SaveTfIdf(ctx, weights); err != nil {
		return Data{}, fmt.Errorf("saving weights: %w", err)
	}

	abstracts, err := store.Abstracts(ctx)
	if err != nil {
		return Data{}, err
	}
	chunks := make(map[string][]string)
	for _, a := range abstracts {
		chunks[string(a.Accepted)] = append(chunks[string(a.Accepted)], a.Abstract)
	}
	pooled := make(map[string]string, len(chunks))
	for category, texts := range chunks {
		pooled[category] = strings.Join(texts, "\n\n")
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		return Data{}, err
	}

	return Data{
		Counts:      counts,
		Lengths:     stats.Lengths(tokens),
		Frequencies: stats.TopFrequencies(frequencies, cfg.TopWords),
		Weights:     stats.TopTfIdf(weights, cfg.TopTfIdf),
		Keywords:    stats.Keywords(pooled, cfg.TopKeywords),
	}, nil
}

// Build collects statistics and writes the report page to
// reportDir/report.html, logging progress to w.
func Build(ctx context.Context, store *corpus.Store, cfg types.ReportConfig, w io.Writer) error {
	data, err := Collect(ctx, store, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "corpus: %d abstracts (%d accepted, %d rejected), %d tokens\n",
		data.Counts.Abstracts, data.Counts.Accepted, data.Counts.Rejected, data.Counts.Tokens)

	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(cfg.ReportDir, reportFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Render(data, f); err != nil {
		f.Close()
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(w, "report written to %s\n", path)
	return nil
}

// Render writes the chart page to w.
func Render(data Data, w io.Writer) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)

	if len(data.Lengths) > 0 {
		page.AddCharts(densityChart(data))
	}
	for _, c := range frequencyCharts(data.Frequencies) {
		page.AddCharts(c)
	}
	for _, c := range weightCharts(data.Weights) {
		page.AddCharts(c)
	}
	for _, c := range keywordCharts(data.Keywords) {
		page.AddCharts(c)
	}

	return page.Render(w)
}

// densityChart overlays one kernel density estimate of abstract length
// per outcome, evaluated on a grid shared by all curves.
func densityChart(data Data) *charts.Line {
	byLabel := make(map[string][]float64)
	var all []float64
	for _, l := range data.Lengths {
		label := types.Outcome(l.Category).Label()
		byLabel[label] = append(byLabel[label], float64(l.Words))
		all = append(all, float64(l.Words))
	}

	xs, _ := stats.DensityCurve(all, densityPoints)
	labels := make([]string, len(xs))
	for i, x := range xs {
		labels[i] = strconv.FormatFloat(x, 'f', 0, 64)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Abstract length by outcome",
			Subtitle: fmt.Sprintf("%d abstracts: %d accepted, %d rejected",
				data.Counts.Abstracts, data.Counts.Accepted, data.Counts.Rejected),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "420px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "words"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "density"}),
	)
	line.SetXAxis(labels)

	for _, label := range sortedKeys(byLabel) {
		ys := stats.DensityOn(byLabel[label], xs)
		series := make([]opts.LineData, len(ys))
		for i, y := range ys {
			series[i] = opts.LineData{Value: y}
		}
		line.AddSeries(label, series)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{
		Smooth:     opts.Bool(true),
		ShowSymbol: opts.Bool(false),
	}))

	return line
}

func frequencyCharts(rows []types.FrequencyRow) []*charts.Bar {
	var out []*charts.Bar
	for _, category := range frequencyCategories(rows) {
		var (
			words  []string
			values []opts.BarData
		)
		for _, r := range rows {
			if r.Category != category {
				continue
			}
			words = append(words, r.Word)
			values = append(values, opts.BarData{Value: r.N})
		}

		label := types.Outcome(category).Label()
		bar := newBarChart(fmt.Sprintf("Most frequent words: %s", label))
		bar.SetXAxis(words).AddSeries(label, values)
		out = append(out, bar)
	}
	return out
}

func weightCharts(rows []types.TfIdfRow) []*charts.Bar {
	var out []*charts.Bar
	for _, category := range weightCategories(rows) {
		var (
			words  []string
			values []opts.BarData
		)
		for _, r := range rows {
			if r.Category != category {
				continue
			}
			words = append(words, r.Word)
			values = append(values, opts.BarData{Value: r.TfIdf})
		}

		label := types.Outcome(category).Label()
		bar := newBarChart(fmt.Sprintf("Highest tf-idf words: %s", label))
		bar.SetXAxis(words).AddSeries(label, values)
		out = append(out, bar)
	}
	return out
}

func keywordCharts(rows []types.KeywordRow) []*charts.Bar {
	var out []*charts.Bar
	for _, category := range keywordCategories(rows) {
		var (
			phrases []string
			values  []opts.BarData
		)
		for _, r := range rows {
			if r.Category != category {
				continue
			}
			phrases = append(phrases, r.Phrase)
			values = append(values, opts.BarData{Value: r.Score})
		}

		label := types.Outcome(category).Label()
		bar := newBarChart(fmt.Sprintf("Keyword phrases: %s", label))
		bar.SetXAxis(phrases).AddSeries(label, values)
		out = append(out, bar)
	}
	return out
}

func newBarChart(title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "620px", Height: "400px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45}}),
	)
	return bar
}

// frequencyCategories returns the distinct categories in row order.
func frequencyCategories(rows []types.FrequencyRow) []string {
	var out []string
	for _, r := range rows {
		if len(out) == 0 || out[len(out)-1] != r.Category {
			out = append(out, r.Category)
		}
	}
	return out
}

func weightCategories(rows []types.TfIdfRow) []string {
	var out []string
	for _, r := range rows {
		if len(out) == 0 || out[len(out)-1] != r.Category {
			out = append(out, r.Category)
		}
	}
	return out
}

func keywordCategories(rows []types.KeywordRow) []string {
	var out []string
	for _, r := range rows {
		if len(out) == 0 || out[len(out)-1] != r.Category {
			out = append(out, r.Category)
		}
	}
	return out
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Command sentiment classifies text given as arguments, or one text per line
// on standard input, and prints the recent-results history when done.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tsawler/sentiment"
	"github.com/tsawler/sentiment/internal/config"
)

type options struct {
	explain   bool
	sentences bool
	asJSON    bool
	samples   bool
	lexicon   string
}

func main() {
	var opts options
	flag.BoolVar(&opts.explain, "explain", false, "Print the scoring trace for each text")
	flag.BoolVar(&opts.sentences, "sentences", false, "Classify each sentence separately")
	flag.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of text")
	flag.BoolVar(&opts.samples, "samples", false, "Classify the built-in sample texts")
	flag.StringVar(&opts.lexicon, "lexicon", "", "JSON or YAML lexicon file merged onto the built-in lexicon")
	flag.Parse()

	logger := config.LogConfig{Level: "warn", Format: "text"}.NewLogger()

	var analyzerOpts []sentiment.Option
	if opts.lexicon != "" {
		lex, err := sentiment.LoadLexicon(opts.lexicon)
		if err != nil {
			logger.Error("failed to load lexicon", "path", opts.lexicon, "error", err)
			os.Exit(1)
		}
		analyzerOpts = append(analyzerOpts, sentiment.WithLexicon(lex))
	}

	texts := flag.Args()
	if opts.samples {
		texts = append(texts, sentiment.SampleTexts()...)
	}

	r := &runner{
		analyzer: sentiment.NewAnalyzer(analyzerOpts...),
		history:  sentiment.NewHistory(),
		opts:     opts,
		out:      os.Stdout,
		logger:   logger,
	}

	var err error
	if len(texts) > 0 {
		for _, t := range texts {
			if err = r.handle(t); err != nil {
				break
			}
		}
	} else {
		err = r.readLines(os.Stdin)
	}
	if err != nil {
		logger.Error("classification failed", "error", err)
		os.Exit(1)
	}

	if err := r.printHistory(); err != nil {
		logger.Error("writing history", "error", err)
		os.Exit(1)
	}
}

type runner struct {
	analyzer *sentiment.Analyzer
	history  *sentiment.History
	opts     options
	out      io.Writer
	logger   *slog.Logger
}

func (r *runner) readLines(in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if err := r.handle(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// handle classifies one text. Blank texts are skipped.
func (r *runner) handle(text string) error {
	if strings.TrimSpace(text) == "" {
		r.logger.Debug("skipping blank input")
		return nil
	}

	switch {
	case r.opts.sentences:
		results, err := r.analyzer.ClassifySentences(text)
		if err != nil {
			return err
		}
		for _, sr := range results {
			r.history.Add(sr.Result)
			if err := r.print(sr, fmt.Sprintf("  [%d] %s", sr.Index, sr.Result)); err != nil {
				return err
			}
		}
		return nil
	case r.opts.explain:
		e := r.analyzer.Explain(text)
		r.history.Add(e.Result)
		return r.print(e, formatExplanation(e))
	default:
		res := r.analyzer.Classify(text)
		r.history.Add(res)
		return r.print(res, fmt.Sprintf("%s\t%s", res, text))
	}
}

func (r *runner) print(v any, text string) error {
	if r.opts.asJSON {
		return json.NewEncoder(r.out).Encode(v)
	}
	_, err := fmt.Fprintln(r.out, text)
	return err
}

func (r *runner) printHistory() error {
	if r.history.Len() == 0 {
		return nil
	}
	summary := r.history.Summary()
	if r.opts.asJSON {
		return json.NewEncoder(r.out).Encode(map[string]any{
			"history": r.history.Results(),
			"summary": summary,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nrecent results (newest first, %d of %d):\n", r.history.Len(), r.history.Cap())
	for i, res := range r.history.Results() {
		fmt.Fprintf(&b, "  %d. %s\t%s\n", i+1, res, res.Text)
	}
	fmt.Fprintf(&b, "positive %d, negative %d, neutral %d, mean confidence %.1f (sd %.1f)\n",
		summary.Positive, summary.Negative, summary.Neutral,
		summary.MeanConfidence, summary.StdDevConfidence)
	_, err := io.WriteString(r.out, b.String())
	return err
}

func formatExplanation(e sentiment.Explanation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%s\n", e.Result, e.Result.Text)
	for _, t := range e.Tokens {
		neg := ""
		if t.Negated {
			neg = " (negated)"
		}
		fmt.Fprintf(&b, "  %-16s %s%s\n", t.Token.Text, t.Rule, neg)
	}
	fmt.Fprintf(&b, "  scores: positive %.2f, negative %.2f (x%.1f)\n",
		e.PositiveScore, e.NegativeScore, e.Multiplier)
	fmt.Fprintf(&b, "  base: %s %.2f, final: %s %.2f, overrides: %v\n",
		e.Base.Sentiment, e.Base.Confidence, e.Final.Sentiment, e.Final.Confidence, e.Overrides)
	if len(e.Unscored) > 0 {
		fmt.Fprintf(&b, "  unscored: %s\n", strings.Join(e.Unscored, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

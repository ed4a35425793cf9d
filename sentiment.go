// Package sentiment classifies English text as positive, negative or neutral
// using a fixed, hand-curated lexicon.
//
// Text is lowercased and split into word tokens. Each token is checked, in
// order, against the negation, intensifier and neutral lists and then the
// positive and negative lexicons. A polarity word directly after a negation
// counts toward the opposite polarity. Intensifiers scale both totals. The
// totals give a base decision, which a few override rules may push toward
// neutral or make more confident.
//
// Entry points:
//
//   - Classify returns the Result for a text.
//   - Explain returns the Result together with the scoring trace.
//   - ClassifySentences classifies each sentence of a text on its own.
//
// Analyzers are immutable and safe for concurrent use. History, which keeps
// the most recent results, is not.
package sentiment

// An Option configures an Analyzer.
type Option func(a *Analyzer)

// WithLexicon makes the Analyzer score against lex instead of the default
// lexicon. A nil lex is ignored.
func WithLexicon(lex *Lexicon) Option {
	return func(a *Analyzer) {
		if lex != nil {
			a.lexicon = lex
		}
	}
}

// Analyzer performs sentiment classification against a Lexicon.
type Analyzer struct {
	lexicon *Lexicon
}

// NewAnalyzer creates an analyzer. Without options it uses DefaultLexicon.
//
// For example,
//
//	lex, err := sentiment.LoadLexicon("extra.yaml")
//	...
//	a := sentiment.NewAnalyzer(sentiment.WithLexicon(lex))
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{lexicon: defaultLexicon}
	for _, applyOpt := range opts {
		applyOpt(a)
	}
	return a
}

// Lexicon returns the lexicon the analyzer scores against.
func (a *Analyzer) Lexicon() *Lexicon {
	return a.lexicon
}

// Classify returns the sentiment of text. It never fails: empty or
// punctuation-only text is neutral with 70% confidence and no keywords.
// Callers that do not want that result should reject blank input first.
func (a *Analyzer) Classify(text string) Result {
	acc := score(a.lexicon, NewWordScanner(text), nil)
	_, final := classify(a.lexicon, text, acc, nil)
	return assemble(text, acc, final)
}

func assemble(text string, acc scoreAccumulator, d Decision) Result {
	return Result{
		Text:       text,
		Sentiment:  d.Sentiment,
		Confidence: percent(d.Confidence),
		Keywords:   dedupe(acc.keywords),
	}
}

var defaultAnalyzer = NewAnalyzer()

// Classify returns the sentiment of text using the default lexicon.
func Classify(text string) Result {
	return defaultAnalyzer.Classify(text)
}

// Explain returns the classification of text with its scoring trace, using
// the default lexicon.
func Explain(text string) Explanation {
	return defaultAnalyzer.Explain(text)
}

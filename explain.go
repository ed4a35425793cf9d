package sentiment

import (
	"strings"

	"github.com/bbalet/stopwords"
)

// stopwordLang is the ISO 639-1 code passed to the stop-word filter.
const stopwordLang = "en"

// Explanation describes how a Result was reached.
type Explanation struct {
	Result Result `json:"result"`

	Tokens           []TokenTrace `json:"tokens"`
	PositiveScore    float64      `json:"positive_score"` // after the multiplier
	NegativeScore    float64      `json:"negative_score"` // after the multiplier
	Multiplier       float64      `json:"multiplier"`
	NegationCount    int          `json:"negation_count"`
	IntensifierCount int          `json:"intensifier_count"`

	Base      Decision   `json:"base"`
	Final     Decision   `json:"final"`
	Overrides []Override `json:"overrides"`

	// Unscored lists unmatched tokens that are not English stop words, in
	// order of first appearance. These are candidates for the lexicon.
	Unscored []string `json:"unscored"`
}

// Explain classifies text and records the trace of every step. The Result is
// identical to the one Classify returns.
func (a *Analyzer) Explain(text string) Explanation {
	var (
		trace []TokenTrace
		fired []Override
	)

	acc := score(a.lexicon, NewWordScanner(text), &trace)
	base, final := classify(a.lexicon, text, acc, &fired)

	return Explanation{
		Result:           assemble(text, acc, final),
		Tokens:           trace,
		PositiveScore:    acc.positive,
		NegativeScore:    acc.negative,
		Multiplier:       intensifierMultiplier(acc.intensifiers),
		NegationCount:    acc.negations,
		IntensifierCount: acc.intensifiers,
		Base:             base,
		Final:            final,
		Overrides:        fired,
		Unscored:         unscored(trace),
	}
}

// Fired reports whether the named override applied.
func (e Explanation) Fired(name Override) bool {
	for _, o := range e.Overrides {
		if o == name {
			return true
		}
	}
	return false
}

func unscored(trace []TokenTrace) []string {
	var words []string
	seen := map[string]bool{}
	for _, t := range trace {
		w := t.Token.Text
		if t.Rule != RuleUnmatched || seen[w] {
			continue
		}
		seen[w] = true
		if isStopWord(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

// isStopWord reports whether the stop-word filter removes word entirely.
func isStopWord(word string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, stopwordLang, false)) == ""
}

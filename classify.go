package sentiment

import (
	"math"
	"strings"
)

// Confidence calibration constants.
const (
	neutralRatio      = 0.4  // below this score imbalance the text is neutral
	neutralConfidence = 0.70 // no score, or a weak imbalance
	tieConfidence     = 0.80
	baseConfidence    = 0.60
	ratioWeight       = 0.35
	maxConfidence     = 0.95

	contradictionConfidence = 0.80
	neutralPhraseConfidence = 0.75
	neutralPhraseMaxTotal   = 3.0
	densityWeight           = 0.10
)

// Words checked by the contradictory negation override. These are kept apart
// from the lexicon on purpose: the override only looks at these words.
var (
	negatedNegatives = setOf("terrible", "bad", "awful", "horrible")
	negatedPositives = setOf("good", "great", "amazing", "wonderful")
)

// Decision is a sentiment with an unrounded confidence in [0, 1].
type Decision struct {
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
}

// Override names a rule that adjusts the base decision.
type Override string

const (
	OverrideContradictoryNegation Override = "contradictory_negation"
	OverrideNeutralPhrase         Override = "neutral_phrase"
	OverrideKeywordDensity        Override = "keyword_density"
)

// classification carries the inputs and running decision of one text.
type classification struct {
	lex   *Lexicon
	lower string // lowercased input
	acc   scoreAccumulator
	Decision
}

// override adjusts a classification in place. apply may set the sentiment to
// Neutral and may raise the confidence, and reports whether it fired.
type override struct {
	name  Override
	apply func(c *classification) bool
}

var overrides = []override{
	{name: OverrideContradictoryNegation, apply: applyContradictoryNegation},
	{name: OverrideNeutralPhrase, apply: applyNeutralPhrase},
	{name: OverrideKeywordDensity, apply: applyKeywordDensity},
}

// decide maps the two scores to a base decision.
func decide(acc scoreAccumulator) Decision {
	total := acc.total()
	diff := math.Abs(acc.positive - acc.negative)

	var ratio float64
	if total > 0 {
		ratio = diff / total
	}

	switch {
	case total == 0 || ratio < neutralRatio:
		return Decision{Sentiment: Neutral, Confidence: neutralConfidence}
	case acc.positive > acc.negative:
		return Decision{Sentiment: Positive, Confidence: math.Min(maxConfidence, baseConfidence+ratio*ratioWeight)}
	case acc.negative > acc.positive:
		return Decision{Sentiment: Negative, Confidence: math.Min(maxConfidence, baseConfidence+ratio*ratioWeight)}
	default:
		return Decision{Sentiment: Neutral, Confidence: tieConfidence}
	}
}

func applyContradictoryNegation(c *classification) bool {
	var negNeg, negPos bool
	for _, k := range c.acc.keywords {
		word, ok := strings.CutPrefix(k, negatedPrefix)
		if !ok {
			continue
		}
		if _, hit := negatedNegatives[word]; hit {
			negNeg = true
		}
		if _, hit := negatedPositives[word]; hit {
			negPos = true
		}
	}
	if !negNeg || !negPos {
		return false
	}
	c.Sentiment = Neutral
	c.Confidence = math.Max(c.Confidence, contradictionConfidence)
	return true
}

func applyNeutralPhrase(c *classification) bool {
	if c.acc.total() >= neutralPhraseMaxTotal || !c.lex.containsNeutralPhrase(c.lower) {
		return false
	}
	c.Sentiment = Neutral
	c.Confidence = math.Max(c.Confidence, neutralPhraseConfidence)
	return true
}

func applyKeywordDensity(c *classification) bool {
	if c.acc.tokens == 0 || len(c.acc.keywords) == 0 {
		return false
	}
	density := float64(len(c.acc.keywords)) / float64(c.acc.tokens)
	c.Confidence = math.Min(maxConfidence, c.Confidence+density*densityWeight)
	return true
}

// classify runs the base decision and every override. fired, when non-nil,
// collects the names of the overrides that applied.
func classify(lex *Lexicon, text string, acc scoreAccumulator, fired *[]Override) (base Decision, final Decision) {
	c := classification{
		lex:   lex,
		lower: strings.ToLower(text),
		acc:   acc,
	}
	c.Decision = decide(acc)
	base = c.Decision

	for _, o := range overrides {
		if o.apply(&c) && fired != nil {
			*fired = append(*fired, o.name)
		}
	}

	return base, c.Decision
}

// percent converts a confidence in [0, 1] to a whole percentage, rounding
// halves up.
func percent(confidence float64) int {
	p := int(math.Floor(confidence*100 + 0.5))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

package sentiment

import (
	"encoding/json"
	"fmt"
)

// Sentiment represents the polarity assigned to a text.
type Sentiment uint8

const (
	Neutral Sentiment = iota
	Positive
	Negative
)

var sentimentNames = [...]string{
	Neutral:  "neutral",
	Positive: "positive",
	Negative: "negative",
}

// ParseSentiment returns the Sentiment named by s.
func ParseSentiment(s string) (Sentiment, error) {
	for i, name := range sentimentNames {
		if name == s {
			return Sentiment(i), nil
		}
	}
	return Neutral, fmt.Errorf("sentiment: unknown sentiment %q", s)
}

// String returns the lowercase name of the sentiment.
func (s Sentiment) String() string {
	if int(s) < len(sentimentNames) {
		return sentimentNames[s]
	}
	return fmt.Sprintf("Sentiment(%d)", uint8(s))
}

// MarshalJSON encodes the sentiment as a JSON string.
func (s Sentiment) MarshalJSON() ([]byte, error) {
	if int(s) >= len(sentimentNames) {
		return nil, fmt.Errorf("sentiment: cannot marshal %v", s)
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a JSON string into a Sentiment.
func (s *Sentiment) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	v, err := ParseSentiment(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// A Token is a normalized word taken from the input text. Start and End are
// byte offsets into the lowercased text.
type Token struct {
	Text  string
	Start int
	End   int
}

// Result is the outcome of classifying a single text.
type Result struct {
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Confidence int       `json:"confidence"` // 0 to 100
	Keywords   []string  `json:"keywords"`   // deduplicated, order not significant
}

// String returns a debug representation of the result.
func (r Result) String() string {
	return fmt.Sprintf("%s (%d%%) %v", r.Sentiment, r.Confidence, r.Keywords)
}

// Rule identifies the token rule that claimed a token during scoring.
type Rule uint8

const (
	RuleUnmatched Rule = iota
	RuleNegation
	RuleIntensifier
	RuleNeutral
	RulePositive
	RuleNegative
)

var ruleNames = [...]string{
	RuleUnmatched:   "unmatched",
	RuleNegation:    "negation",
	RuleIntensifier: "intensifier",
	RuleNeutral:     "neutral",
	RulePositive:    "positive",
	RuleNegative:    "negative",
}

func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

// MarshalJSON encodes the rule as a JSON string.
func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// scoreAccumulator holds the running state of one scoring pass.
type scoreAccumulator struct {
	positive     float64
	negative     float64
	negations    int
	intensifiers int
	tokens       int
	keywords     []string // may contain duplicates
}

func (acc *scoreAccumulator) total() float64 {
	return acc.positive + acc.negative
}

// dedupe returns keywords with repeated entries removed, keeping first-seen order.
func dedupe(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

package sentiment

// intensifierStep is the multiplier added per intensifier. The product is not
// capped.
const intensifierStep = 0.2

// negatedPrefix marks a keyword whose polarity was flipped by a negation.
const negatedPrefix = "not "

// A tokenRule claims a token when match returns true. Rules are tried in
// order and the first match wins, so the order of tokenRules decides the
// class of words that sit in more than one list (e.g. "mediocre" is both
// neutral and negative, and neutral comes first).
type tokenRule struct {
	rule  Rule
	match func(lex *Lexicon, acc *scoreAccumulator, tok string, negated bool) bool
}

var tokenRules = []tokenRule{
	{rule: RuleNegation, match: matchNegation},
	{rule: RuleIntensifier, match: matchIntensifier},
	{rule: RuleNeutral, match: matchNeutral},
	{rule: RulePositive, match: matchPositive},
	{rule: RuleNegative, match: matchNegative},
}

func matchNegation(lex *Lexicon, acc *scoreAccumulator, tok string, _ bool) bool {
	if !lex.IsNegation(tok) {
		return false
	}
	acc.negations++
	return true
}

func matchIntensifier(lex *Lexicon, acc *scoreAccumulator, tok string, _ bool) bool {
	if !lex.IsIntensifier(tok) {
		return false
	}
	acc.intensifiers++
	return true
}

func matchNeutral(lex *Lexicon, _ *scoreAccumulator, tok string, _ bool) bool {
	return lex.IsNeutral(tok)
}

func matchPositive(lex *Lexicon, acc *scoreAccumulator, tok string, negated bool) bool {
	s, ok := lex.Positive(tok)
	if !ok {
		return false
	}
	if negated {
		acc.keywords = append(acc.keywords, negatedPrefix+tok)
		acc.negative += float64(s)
	} else {
		acc.keywords = append(acc.keywords, tok)
		acc.positive += float64(s)
	}
	return true
}

func matchNegative(lex *Lexicon, acc *scoreAccumulator, tok string, negated bool) bool {
	s, ok := lex.Negative(tok)
	if !ok {
		return false
	}
	if negated {
		acc.keywords = append(acc.keywords, negatedPrefix+tok)
		acc.positive += float64(s)
	} else {
		acc.keywords = append(acc.keywords, tok)
		acc.negative += float64(s)
	}
	return true
}

// TokenTrace records how one token was classified.
type TokenTrace struct {
	Token   Token `json:"token"`
	Rule    Rule  `json:"rule"`
	Negated bool  `json:"negated,omitempty"` // previous token was a negation
}

// score walks the scanner once and returns the accumulated scores with the
// intensifier multiplier applied. When trace is non-nil every token is
// appended to it.
func score(lex *Lexicon, sc *WordScanner, trace *[]TokenTrace) scoreAccumulator {
	var (
		acc  scoreAccumulator
		prev string
	)

	for sc.Scan() {
		tok := sc.Token()
		acc.tokens++

		// Only the immediately preceding token can negate.
		negated := prev != "" && lex.IsNegation(prev)

		rule := RuleUnmatched
		for _, r := range tokenRules {
			if r.match(lex, &acc, tok.Text, negated) {
				rule = r.rule
				break
			}
		}

		if trace != nil {
			*trace = append(*trace, TokenTrace{
				Token:   tok,
				Rule:    rule,
				Negated: negated && (rule == RulePositive || rule == RuleNegative),
			})
		}
		prev = tok.Text
	}

	m := intensifierMultiplier(acc.intensifiers)
	acc.positive *= m
	acc.negative *= m

	return acc
}

func intensifierMultiplier(count int) float64 {
	return 1 + intensifierStep*float64(count)
}

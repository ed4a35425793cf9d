package sentiment

import (
	"math"
	"reflect"
	"sort"
	"testing"
)

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		text       string
		sentiment  Sentiment
		confidence int
		keywords   []string
		desc       string
	}{
		{
			"This product is absolutely amazing! I love it so much.",
			Positive, 95, []string{"amazing", "love"},
			"Intensified positive",
		},
		{
			"The service was terrible and I'm very disappointed.",
			Negative, 95, []string{"terrible", "disappointed"},
			"Intensified negative",
		},
		{
			"I'm not happy with this at all, it's completely useless.",
			Negative, 95, []string{"not happy", "useless"},
			"Negated positive plus negative",
		},
		{
			"It's okay, nothing special but not bad either.",
			Neutral, 95, []string{"not bad"},
			"Neutral phrase with low score",
		},
		{
			"not bad not good",
			Neutral, 85, []string{"not bad", "not good"},
			"Contradictory negation",
		},
		{
			"I absolutely hate this, it's the most disappointing thing ever.",
			Negative, 95, []string{"hate"},
			"Unknown inflection is ignored",
		},
		{
			"good but bad",
			Neutral, 77, []string{"good", "bad"},
			"Balanced scores",
		},
		{
			"great love bad",
			Neutral, 80, []string{"great", "love", "bad"},
			"Weak imbalance",
		},
		{
			"amazing love bad",
			Positive, 85, []string{"amazing", "love", "bad"},
			"Imbalance above threshold",
		},
		{"fine", Neutral, 75, []string{}, "Neutral word alone"},
		{"very", Neutral, 70, []string{}, "Intensifier alone"},
		{"", Neutral, 70, []string{}, "Empty text"},
		{"   \t\n", Neutral, 70, []string{}, "Whitespace only"},
		{"?!... ,,", Neutral, 70, []string{}, "Punctuation only"},
		{"good", Positive, 95, []string{"good"}, "Single positive word"},
		{"not good", Negative, 95, []string{"not good"}, "Single negated word"},
		{"okay but good", Neutral, 95, []string{"good"}, "Neutral phrase overrides positive"},
		{"okay, good and great", Positive, 95, []string{"good", "great"}, "Neutral phrase ignored above total"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := Classify(tt.text)

			if got.Text != tt.text {
				t.Errorf("Text: got %q, want %q", got.Text, tt.text)
			}
			if got.Sentiment != tt.sentiment {
				t.Errorf("Text: %q\nExpected sentiment: %s\nGot: %s", tt.text, tt.sentiment, got.Sentiment)
			}
			if got.Confidence != tt.confidence {
				t.Errorf("Text: %q\nExpected confidence: %d\nGot: %d", tt.text, tt.confidence, got.Confidence)
			}
			if !sameSet(got.Keywords, tt.keywords) {
				t.Errorf("Text: %q\nExpected keywords: %v\nGot: %v", tt.text, tt.keywords, got.Keywords)
			}
		})
	}
}

func TestClassifyDoubleNegationLeansNeutral(t *testing.T) {
	got := Classify("It's not terrible, but it's not great either.")
	if got.Sentiment != Neutral {
		t.Fatalf("Sentiment: got %s, want neutral", got.Sentiment)
	}
	if got.Confidence < 80 {
		t.Errorf("Confidence: got %d, want >= 80", got.Confidence)
	}
}

func TestClassifyNegationIsPositional(t *testing.T) {
	// "very" sits between the negation and the polarity word.
	got := Classify("not very good")
	if got.Sentiment != Positive {
		t.Errorf("Sentiment: got %s, want positive", got.Sentiment)
	}
	if !sameSet(got.Keywords, []string{"good"}) {
		t.Errorf("Keywords: got %v, want [good]", got.Keywords)
	}
}

func TestClassifyNeutralWordBeatsLexicon(t *testing.T) {
	// "mediocre" is in both the neutral list and the negative lexicon.
	got := Classify("mediocre")
	if got.Sentiment != Neutral || len(got.Keywords) != 0 {
		t.Errorf("got %v, want neutral with no keywords", got)
	}
}

func TestClassifyContractionsSplit(t *testing.T) {
	// "don't" becomes "don" and a dropped "t", so nothing negates "like".
	got := Classify("I don't like it")
	if got.Sentiment != Positive {
		t.Errorf("Sentiment: got %s, want positive", got.Sentiment)
	}
}

func TestClassifyDeduplicatesKeywords(t *testing.T) {
	got := Classify("good good good bad")
	want := []string{"good", "bad"}
	if !reflect.DeepEqual(got.Keywords, want) {
		t.Errorf("Keywords: got %v, want %v", got.Keywords, want)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for _, text := range SampleTexts() {
		a, b := Classify(text), Classify(text)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Text: %q\nfirst: %v\nsecond: %v", text, a, b)
		}
	}
}

func TestSampleClassifications(t *testing.T) {
	want := []Sentiment{
		Positive, Negative, Neutral, Positive, Negative,
		Negative, Positive, Neutral, Negative, Positive,
	}
	samples := SampleTexts()
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i, text := range samples {
		if got := Classify(text).Sentiment; got != want[i] {
			t.Errorf("Text: %q\nExpected: %s\nGot: %s", text, want[i], got)
		}
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		pos, neg float64
		want     Decision
		desc     string
	}{
		{0, 0, Decision{Neutral, 0.70}, "No score"},
		{1, 1, Decision{Neutral, 0.70}, "Exact tie has zero ratio"},
		{3, 2, Decision{Neutral, 0.70}, "Ratio below threshold"},
		{7, 3, Decision{Positive, 0.74}, "Ratio at threshold"},
		{2, 0, Decision{Positive, 0.95}, "Only positive"},
		{0, 2, Decision{Negative, 0.95}, "Only negative"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := decide(scoreAccumulator{positive: tt.pos, negative: tt.neg})
			if got.Sentiment != tt.want.Sentiment || math.Abs(got.Confidence-tt.want.Confidence) > 1e-9 {
				t.Errorf("decide(%v, %v): got %+v, want %+v", tt.pos, tt.neg, got, tt.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.7, 70},
		{0.125, 13},
		{0.375, 38},
		{0.004, 0},
		{1, 100},
		{-0.1, 0},
		{1.2, 100},
	}
	for _, tt := range tests {
		if got := percent(tt.in); got != tt.want {
			t.Errorf("percent(%v): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSentimentJSON(t *testing.T) {
	for _, s := range []Sentiment{Neutral, Positive, Negative} {
		data, err := s.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%v): %v", s, err)
		}
		var back Sentiment
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%s): %v", data, err)
		}
		if back != s {
			t.Errorf("round trip: got %v, want %v", back, s)
		}
	}

	var s Sentiment
	if err := s.UnmarshalJSON([]byte(`"mixed"`)); err == nil {
		t.Error("UnmarshalJSON accepted an unknown sentiment")
	}
	if _, err := Sentiment(9).MarshalJSON(); err == nil {
		t.Error("MarshalJSON accepted an out-of-range sentiment")
	}
}

func sameSet(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	a := append([]string(nil), got...)
	b := append([]string(nil), want...)
	sort.Strings(a)
	sort.Strings(b)
	return reflect.DeepEqual(a, b)
}

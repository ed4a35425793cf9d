package sentiment

import (
	"encoding/json"
	"flag"
	"os"
	"testing"
)

var updateGolden = flag.Bool("update", false, "regenerate golden test files")

// goldenCase is one recorded classification.
type goldenCase struct {
	Name           string   `json:"name"`
	Input          string   `json:"input"`
	WantSentiment  string   `json:"want_sentiment"`
	WantConfidence int      `json:"want_confidence"`
	WantKeywords   []string `json:"want_keywords"`
}

const goldenPath = "testdata/golden.json"

func TestGolden(t *testing.T) {
	if *updateGolden {
		updateGoldenFile(t)
		return
	}

	data, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	var cases []goldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("parsing golden file: %v", err)
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			got := Classify(tc.Input)

			if got.Sentiment.String() != tc.WantSentiment {
				t.Errorf("Sentiment: got %q, want %q", got.Sentiment, tc.WantSentiment)
			}
			if got.Confidence != tc.WantConfidence {
				t.Errorf("Confidence: got %d, want %d", got.Confidence, tc.WantConfidence)
			}
			if !sameSet(got.Keywords, tc.WantKeywords) {
				t.Errorf("Keywords: got %q, want %q", got.Keywords, tc.WantKeywords)
			}
		})
	}
}

func updateGoldenFile(t *testing.T) {
	t.Helper()

	data, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("reading golden file for update: %v", err)
	}

	var cases []goldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("parsing golden file for update: %v", err)
	}

	for i := range cases {
		got := Classify(cases[i].Input)
		cases[i].WantSentiment = got.Sentiment.String()
		cases[i].WantConfidence = got.Confidence
		cases[i].WantKeywords = got.Keywords
	}

	out, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		t.Fatalf("marshaling golden data: %v", err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(goldenPath, out, 0o644); err != nil {
		t.Fatalf("writing golden file: %v", err)
	}

	t.Log("golden file updated, review with: git diff testdata/golden.json")
}

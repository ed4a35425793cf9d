package sentiment

import (
	"fmt"
	"strings"
	"sync"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// SentenceResult is the classification of one sentence of a longer text.
type SentenceResult struct {
	Index  int    `json:"index"` // position among the non-blank sentences
	Result Result `json:"result"`
}

var (
	segmenterOnce sync.Once
	segmenter     *sentences.DefaultSentenceTokenizer
	segmenterErr  error
)

// sentenceSegmenter returns the shared Punkt tokenizer, trained on the
// English data bundled with the sentences package.
func sentenceSegmenter() (*sentences.DefaultSentenceTokenizer, error) {
	segmenterOnce.Do(func() {
		segmenter, segmenterErr = english.NewSentenceTokenizer(nil)
		if segmenterErr != nil {
			segmenterErr = fmt.Errorf("sentiment: loading sentence tokenizer: %w", segmenterErr)
		}
	})
	return segmenter, segmenterErr
}

// SplitSentences splits text into trimmed, non-blank sentences.
func SplitSentences(text string) ([]string, error) {
	seg, err := sentenceSegmenter()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, s := range seg.Tokenize(text) {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// ClassifySentences classifies each sentence of text independently. Blank
// sentences are skipped, so an empty text yields no results.
func (a *Analyzer) ClassifySentences(text string) ([]SentenceResult, error) {
	sents, err := SplitSentences(text)
	if err != nil {
		return nil, err
	}

	results := make([]SentenceResult, len(sents))
	for i, s := range sents {
		results[i] = SentenceResult{Index: i, Result: a.Classify(s)}
	}
	return results, nil
}

// ClassifySentences classifies each sentence of text using the default lexicon.
func ClassifySentences(text string) ([]SentenceResult, error) {
	return defaultAnalyzer.ClassifySentences(text)
}

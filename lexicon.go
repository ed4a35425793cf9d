package sentiment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Intensity bounds for lexicon entries.
const (
	MinIntensity = 1
	MaxIntensity = 3
)

var (
	// ErrInvalidLexicon is returned when lexicon data breaks an entry rule.
	ErrInvalidLexicon = errors.New("sentiment: invalid lexicon")

	// ErrUnsupportedFormat is returned for lexicon files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("sentiment: unsupported lexicon format")
)

// Format names a lexicon file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// A Lexicon holds the word lists used for scoring. A Lexicon never changes
// after construction and is safe for concurrent use.
type Lexicon struct {
	positive       map[string]int
	negative       map[string]int
	negations      map[string]struct{}
	intensifiers   map[string]struct{}
	neutral        map[string]struct{}
	neutralPhrases []string
}

// LexiconFile is the on-disk form of lexicon additions.
type LexiconFile struct {
	Positive       map[string]int `json:"positive,omitempty" yaml:"positive,omitempty"`
	Negative       map[string]int `json:"negative,omitempty" yaml:"negative,omitempty"`
	Negations      []string       `json:"negations,omitempty" yaml:"negations,omitempty"`
	Intensifiers   []string       `json:"intensifiers,omitempty" yaml:"intensifiers,omitempty"`
	Neutral        []string       `json:"neutral,omitempty" yaml:"neutral,omitempty"`
	NeutralPhrases []string       `json:"neutral_phrases,omitempty" yaml:"neutral_phrases,omitempty"`
}

var defaultLexicon = newEnglishLexicon()

// DefaultLexicon returns the built-in English lexicon.
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

func newEnglishLexicon() *Lexicon {
	return &Lexicon{
		positive: map[string]int{
			// High intensity
			"amazing": 3, "fantastic": 3, "outstanding": 3, "brilliant": 3, "excellent": 3,
			"perfect": 3, "wonderful": 3, "marvelous": 3, "superb": 3, "incredible": 3,
			"phenomenal": 3, "exceptional": 3, "magnificent": 3, "spectacular": 3,

			// Medium intensity
			"great": 2, "good": 2, "awesome": 2, "love": 2, "enjoy": 2, "happy": 2,
			"pleased": 2, "satisfied": 2, "delighted": 2, "thrilled": 2, "excited": 2,
			"impressed": 2, "content": 2, "grateful": 2, "blessed": 2,

			// Low intensity
			"like": 1, "nice": 1, "decent": 1, "acceptable": 1,
			"adequate": 1, "satisfactory": 1, "reasonable": 1, "fair": 1,
		},
		negative: map[string]int{
			// High intensity
			"terrible": 3, "awful": 3, "horrible": 3, "disgusting": 3, "hate": 3,
			"worst": 3, "pathetic": 3, "useless": 3, "ridiculous": 3, "disgusted": 3,
			"furious": 3, "outraged": 3, "appalled": 3, "revolting": 3, "atrocious": 3,

			// Medium intensity
			"bad": 2, "disappointed": 2, "frustrated": 2, "angry": 2, "upset": 2,
			"annoyed": 2, "sad": 2, "unhappy": 2, "displeased": 2, "dissatisfied": 2,
			"concerned": 2, "worried": 2, "bothered": 2, "troubled": 2, "distressed": 2,

			// Low intensity
			"dislike": 1, "uncomfortable": 1, "unpleasant": 1, "boring": 1, "dull": 1,
			"mediocre": 1, "subpar": 1, "lacking": 1, "inadequate": 1, "poor": 1,
		},
		// Contracted forms can never survive tokenization; they stay listed so
		// a different tokenizer could make use of them.
		negations: setOf(
			"not", "no", "never", "none", "nothing", "nobody", "nowhere", "neither", "nor",
			"cannot", "can't", "won't", "don't", "doesn't", "didn't", "isn't", "aren't",
			"wasn't", "weren't",
		),
		intensifiers: setOf(
			"very", "extremely", "incredibly", "absolutely", "totally", "completely",
			"utterly", "really", "quite", "rather", "somewhat", "slightly", "barely",
			"hardly",
		),
		neutral: setOf(
			"okay", "fine", "alright", "average", "mediocre", "ordinary", "standard",
			"typical", "normal", "regular", "moderate", "middle", "neutral", "balanced",
			"mixed",
		),
		neutralPhrases: []string{
			"nothing special", "not bad", "not great", "okay", "fine", "alright", "average",
		},
	}
}

func setOf(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Positive returns the intensity of a positive word.
func (l *Lexicon) Positive(word string) (int, bool) {
	s, ok := l.positive[word]
	return s, ok
}

// Negative returns the intensity of a negative word.
func (l *Lexicon) Negative(word string) (int, bool) {
	s, ok := l.negative[word]
	return s, ok
}

// IsNegation checks if word is a negation.
func (l *Lexicon) IsNegation(word string) bool {
	_, ok := l.negations[word]
	return ok
}

// IsIntensifier checks if word is an intensifier.
func (l *Lexicon) IsIntensifier(word string) bool {
	_, ok := l.intensifiers[word]
	return ok
}

// IsNeutral checks if word is a neutral word.
func (l *Lexicon) IsNeutral(word string) bool {
	_, ok := l.neutral[word]
	return ok
}

// NeutralPhrases returns a copy of the neutral phrase list.
func (l *Lexicon) NeutralPhrases() []string {
	return append([]string(nil), l.neutralPhrases...)
}

// containsNeutralPhrase reports whether lower contains any neutral phrase.
// lower must already be lowercased.
func (l *Lexicon) containsNeutralPhrase(lower string) bool {
	for _, p := range l.neutralPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Size returns the number of polarity-bearing words.
func (l *Lexicon) Size() int {
	return len(l.positive) + len(l.negative)
}

// HasWord checks if a word exists in either polarity list.
func (l *Lexicon) HasWord(word string) bool {
	word = strings.ToLower(word)
	_, pos := l.positive[word]
	_, neg := l.negative[word]
	return pos || neg
}

// File returns the lexicon in its file form, with sorted word lists.
func (l *Lexicon) File() LexiconFile {
	return LexiconFile{
		Positive:       copyIntensities(l.positive),
		Negative:       copyIntensities(l.negative),
		Negations:      sortedKeys(l.negations),
		Intensifiers:   sortedKeys(l.intensifiers),
		Neutral:        sortedKeys(l.neutral),
		NeutralPhrases: l.NeutralPhrases(),
	}
}

// MergeLexicon returns a new lexicon holding base plus the entries of f.
// A word added to one polarity is removed from the other, so the two lists
// stay disjoint. base is left untouched.
func MergeLexicon(base *Lexicon, f LexiconFile) (*Lexicon, error) {
	if base == nil {
		base = defaultLexicon
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	l := &Lexicon{
		positive:       copyIntensities(base.positive),
		negative:       copyIntensities(base.negative),
		negations:      copySet(base.negations),
		intensifiers:   copySet(base.intensifiers),
		neutral:        copySet(base.neutral),
		neutralPhrases: base.NeutralPhrases(),
	}

	for w, s := range f.Positive {
		w = normalizeWord(w)
		l.positive[w] = s
		delete(l.negative, w)
	}
	for w, s := range f.Negative {
		w = normalizeWord(w)
		l.negative[w] = s
		delete(l.positive, w)
	}
	for _, w := range f.Negations {
		l.negations[normalizeWord(w)] = struct{}{}
	}
	for _, w := range f.Intensifiers {
		l.intensifiers[normalizeWord(w)] = struct{}{}
	}
	for _, w := range f.Neutral {
		l.neutral[normalizeWord(w)] = struct{}{}
	}
	for _, p := range f.NeutralPhrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if !containsString(l.neutralPhrases, p) {
			l.neutralPhrases = append(l.neutralPhrases, p)
		}
	}

	return l, nil
}

// ParseLexicon decodes lexicon additions in the given format and merges them
// onto the default lexicon.
func ParseLexicon(data []byte, format Format) (*Lexicon, error) {
	var f LexiconFile

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error parsing lexicon JSON: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error parsing lexicon YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	return MergeLexicon(defaultLexicon, f)
}

// LoadLexicon reads a JSON or YAML lexicon file, chosen by extension, and
// merges it onto the default lexicon.
func LoadLexicon(path string) (*Lexicon, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading lexicon file: %w", err)
	}

	lex, err := ParseLexicon(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon %s: %w", path, err)
	}
	return lex, nil
}

func formatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func (f LexiconFile) validate() error {
	positive := make(map[string]struct{}, len(f.Positive))
	for w, s := range f.Positive {
		if err := checkEntry(w, s); err != nil {
			return err
		}
		positive[normalizeWord(w)] = struct{}{}
	}
	for w, s := range f.Negative {
		if err := checkEntry(w, s); err != nil {
			return err
		}
		if _, dup := positive[normalizeWord(w)]; dup {
			return fmt.Errorf("%w: %q is both positive and negative", ErrInvalidLexicon, w)
		}
	}
	lists := [][]string{f.Negations, f.Intensifiers, f.Neutral, f.NeutralPhrases}
	for _, list := range lists {
		for _, w := range list {
			if strings.TrimSpace(w) == "" {
				return fmt.Errorf("%w: empty word", ErrInvalidLexicon)
			}
		}
	}
	return nil
}

func checkEntry(word string, intensity int) error {
	if normalizeWord(word) == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidLexicon)
	}
	if intensity < MinIntensity || intensity > MaxIntensity {
		return fmt.Errorf("%w: %q has intensity %d, want %d-%d",
			ErrInvalidLexicon, word, intensity, MinIntensity, MaxIntensity)
	}
	return nil
}

func normalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

func copyIntensities(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySet(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package sentiment

import "strings"

// minTokenLen is the shortest token kept by the scanner.
const minTokenLen = 2

// WordScanner splits text into lowercase word tokens. A word is a maximal run
// of ASCII letters, digits and underscores; everything else separates words,
// so "don't" yields "don" and a dropped "t". Tokens shorter than two bytes are
// discarded.
//
// A WordScanner makes a single pass and cannot be rewound.
//
//	sc := sentiment.NewWordScanner("Not bad at all!")
//	for sc.Scan() {
//		fmt.Println(sc.Token().Text)
//	}
type WordScanner struct {
	text string
	pos  int
	tok  Token
}

// NewWordScanner returns a scanner over the lowercased form of text.
func NewWordScanner(text string) *WordScanner {
	return &WordScanner{text: strings.ToLower(text)}
}

// Scan advances to the next token. It returns false when the text is exhausted.
func (s *WordScanner) Scan() bool {
	for s.pos < len(s.text) {
		for s.pos < len(s.text) && !isWordByte(s.text[s.pos]) {
			s.pos++
		}
		start := s.pos
		for s.pos < len(s.text) && isWordByte(s.text[s.pos]) {
			s.pos++
		}
		if s.pos-start >= minTokenLen {
			s.tok = Token{Text: s.text[start:s.pos], Start: start, End: s.pos}
			return true
		}
	}
	s.tok = Token{}
	return false
}

// Token returns the token produced by the most recent call to Scan.
func (s *WordScanner) Token() Token {
	return s.tok
}

// Text returns the lowercased text being scanned.
func (s *WordScanner) Text() string {
	return s.text
}

// Tokenize returns the word tokens of text in order.
func Tokenize(text string) []string {
	var words []string
	sc := NewWordScanner(text)
	for sc.Scan() {
		words = append(words, sc.Token().Text)
	}
	return words
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

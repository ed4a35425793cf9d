package sentiment

import "gonum.org/v1/gonum/stat"

// HistoryCapacity is the number of results a History keeps.
const HistoryCapacity = 5

// History keeps the most recent results, newest first. Adding beyond
// capacity silently drops the oldest entry.
//
// A History is not safe for concurrent use. Callers sharing one between
// goroutines must serialize access.
type History struct {
	results []Result
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{results: make([]Result, 0, HistoryCapacity)}
}

// Add inserts r at the head of the history.
func (h *History) Add(r Result) {
	if len(h.results) < HistoryCapacity {
		h.results = append(h.results, Result{})
	}
	copy(h.results[1:], h.results[:len(h.results)-1])
	h.results[0] = r
}

// Results returns the stored results, newest first.
func (h *History) Results() []Result {
	return append([]Result(nil), h.results...)
}

// Latest returns the newest result.
func (h *History) Latest() (Result, bool) {
	if len(h.results) == 0 {
		return Result{}, false
	}
	return h.results[0], true
}

// Len returns the number of stored results.
func (h *History) Len() int { return len(h.results) }

// Cap returns the capacity of the history.
func (h *History) Cap() int { return HistoryCapacity }

// Clear removes every result.
func (h *History) Clear() {
	h.results = h.results[:0]
}

// HistorySummary aggregates the results held by a History.
type HistorySummary struct {
	Count            int     `json:"count"`
	Positive         int     `json:"positive"`
	Negative         int     `json:"negative"`
	Neutral          int     `json:"neutral"`
	MeanConfidence   float64 `json:"mean_confidence"`
	StdDevConfidence float64 `json:"stddev_confidence"` // sample standard deviation; 0 below two results
}

// Summary returns counts per sentiment and confidence statistics.
func (h *History) Summary() HistorySummary {
	s := HistorySummary{Count: len(h.results)}
	if s.Count == 0 {
		return s
	}

	conf := make([]float64, len(h.results))
	for i, r := range h.results {
		conf[i] = float64(r.Confidence)
		switch r.Sentiment {
		case Positive:
			s.Positive++
		case Negative:
			s.Negative++
		default:
			s.Neutral++
		}
	}

	if len(conf) < 2 {
		s.MeanConfidence = conf[0]
		return s
	}
	s.MeanConfidence, s.StdDevConfidence = stat.MeanStdDev(conf, nil)
	return s
}

package sentiment

import (
	"math"
	"testing"
)

func TestHistoryEviction(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Latest(); ok {
		t.Fatal("Latest on empty history returned ok")
	}

	texts := []string{"one", "two", "three", "four", "five", "six", "seven"}
	for _, text := range texts {
		h.Add(Result{Text: text})
	}

	if h.Len() != HistoryCapacity {
		t.Fatalf("Len: got %d, want %d", h.Len(), HistoryCapacity)
	}
	want := []string{"seven", "six", "five", "four", "three"}
	for i, r := range h.Results() {
		if r.Text != want[i] {
			t.Errorf("Results[%d]: got %q, want %q", i, r.Text, want[i])
		}
	}
	if r, _ := h.Latest(); r.Text != "seven" {
		t.Errorf("Latest: got %q, want seven", r.Text)
	}
}

func TestHistoryPartial(t *testing.T) {
	h := NewHistory()
	h.Add(Result{Text: "a"})
	h.Add(Result{Text: "b"})

	got := h.Results()
	if len(got) != 2 || got[0].Text != "b" || got[1].Text != "a" {
		t.Errorf("Results: got %v", got)
	}

	got[0].Text = "changed"
	if r, _ := h.Latest(); r.Text != "b" {
		t.Error("Results exposes internal state")
	}

	h.Clear()
	if h.Len() != 0 || h.Cap() != HistoryCapacity {
		t.Errorf("after Clear: Len %d, Cap %d", h.Len(), h.Cap())
	}
}

func TestHistorySummary(t *testing.T) {
	h := NewHistory()
	if s := h.Summary(); s != (HistorySummary{}) {
		t.Errorf("empty Summary: got %+v", s)
	}

	h.Add(Result{Sentiment: Positive, Confidence: 90})
	s := h.Summary()
	if s.Count != 1 || s.Positive != 1 || s.MeanConfidence != 90 || s.StdDevConfidence != 0 {
		t.Errorf("single Summary: got %+v", s)
	}

	h.Add(Result{Sentiment: Negative, Confidence: 70})
	h.Add(Result{Sentiment: Neutral, Confidence: 80})
	s = h.Summary()
	if s.Count != 3 || s.Positive != 1 || s.Negative != 1 || s.Neutral != 1 {
		t.Errorf("counts: got %+v", s)
	}
	if math.Abs(s.MeanConfidence-80) > 1e-9 {
		t.Errorf("MeanConfidence: got %v, want 80", s.MeanConfidence)
	}
	// Sample standard deviation of 90, 70, 80.
	if math.Abs(s.StdDevConfidence-10) > 1e-9 {
		t.Errorf("StdDevConfidence: got %v, want 10", s.StdDevConfidence)
	}
}

package domain_test

import (
	"fmt"
	"testing"

	"innertone/internal/modules/companion/domain"
)

func TestHistoryCapAndWindow(t *testing.T) {
	t.Parallel()
	var h domain.History
	for i := 0; i < 25; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleBot
		}
		h.Append(domain.Message{Role: role, Content: fmt.Sprintf("m%d", i)})
		if h.Len() > domain.HistoryCap {
			t.Fatalf("history grew past cap after %d appends", i+1)
		}
	}
	msgs := h.Messages()
	if len(msgs) != 20 || msgs[0].Content != "m5" || msgs[19].Content != "m24" {
		t.Fatalf("expected m5..m24, got %d starting %s", len(msgs), msgs[0].Content)
	}
	window := h.Window()
	if len(window) != 10 || window[0].Content != "m15" || window[9].Content != "m24" {
		t.Fatalf("unexpected window %+v", window)
	}
	window[0].Content = "mutated"
	if h.Window()[0].Content != "m15" {
		t.Fatalf("window must be a copy")
	}
}

func TestShortHistoryWindow(t *testing.T) {
	t.Parallel()
	var h domain.History
	h.Append(domain.Message{Role: domain.RoleUser, Content: "hi"})
	if w := h.Window(); len(w) != 1 || w[0].Content != "hi" {
		t.Fatalf("unexpected window %+v", w)
	}
	h.Clear()
	if h.Len() != 0 || len(h.Window()) != 0 {
		t.Fatalf("clear should empty the history")
	}
}

func TestClassifyMoodThresholds(t *testing.T) {
	t.Parallel()
	cases := []struct {
		score float64
		want  string
	}{
		{0.5, "very positive"},
		{0.49, "positive"},
		{0.1, "positive"},
		{0.09, "neutral"},
		{-0.09, "neutral"},
		{-0.1, "negative"},
		{-0.49, "negative"},
		{-0.5, "very negative"},
	}
	for _, tc := range cases {
		if got := domain.ClassifyMood(tc.score); got != tc.want {
			t.Fatalf("ClassifyMood(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestVoiceProfileBuckets(t *testing.T) {
	t.Parallel()
	cases := []struct {
		size   int
		energy float64
	}{
		{1024, 0.2},
		{50 * 1024, 0.4},
		{100 * 1024, 0.6},
		{300 * 1024, 0.85},
	}
	for _, tc := range cases {
		if _, energy, _ := domain.VoiceProfile(tc.size); energy != tc.energy {
			t.Fatalf("VoiceProfile(%d) energy %v, want %v", tc.size, energy, tc.energy)
		}
	}
}

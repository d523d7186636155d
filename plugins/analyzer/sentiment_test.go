package main

import (
	"context"
	"strings"
	"testing"

	"innertone/internal/modules/companion/adapter/out/rpc"
)

func TestCompoundPolarity(t *testing.T) {
	t.Parallel()
	cases := []struct {
		text string
		mood string
	}{
		{text: "I feel really great and happy today", mood: "very positive"},
		{text: "the weather is cloudy", mood: "neutral"},
		{text: "I feel sad", mood: "negative"},
		{text: "I am so sad and hopeless and tired", mood: "very negative"},
	}
	srv := &server{}
	for _, tc := range cases {
		resp, err := srv.Chat(context.Background(), &rpc.ChatRequest{Message: tc.text})
		if err != nil {
			t.Fatalf("chat %q: %v", tc.text, err)
		}
		if resp.Mood != tc.mood {
			t.Fatalf("%q: expected mood %s, got %s (%.3f)", tc.text, tc.mood, resp.Mood, resp.SentimentScore)
		}
	}
}

func TestNegationFlipsValence(t *testing.T) {
	t.Parallel()
	if pos, neg := compound("I am happy"), compound("I am not happy"); pos <= 0 || neg >= 0 {
		t.Fatalf("expected negation to flip sign: %.3f vs %.3f", pos, neg)
	}
	if plain, boosted := compound("good"), compound("very good"); boosted <= plain {
		t.Fatalf("booster should raise intensity: %.3f vs %.3f", plain, boosted)
	}
}

func TestChatRepliesByTopicAndRejectsBlank(t *testing.T) {
	t.Parallel()
	srv := &server{}
	resp, err := srv.Chat(context.Background(), &rpc.ChatRequest{Message: "I keep overthinking everything"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Reply, "Breathe in for 4") && !strings.Contains(resp.Reply, "5-4-3-2-1") {
		t.Fatalf("expected an anxiety reply, got %q", resp.Reply)
	}
	if _, err := srv.Chat(context.Background(), &rpc.ChatRequest{Message: "  "}); err == nil {
		t.Fatalf("blank message must fail")
	}
}

func TestAnalyzeVoiceUsesClipSize(t *testing.T) {
	t.Parallel()
	resp, err := (&server{}).AnalyzeVoice(context.Background(), &rpc.VoiceRequest{Audio: make([]byte, 1024)})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if resp.Energy != 0.2 || !strings.Contains(resp.Reply, "low in energy") {
		t.Fatalf("unexpected voice response %+v", resp)
	}
}

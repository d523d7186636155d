package main

import (
	"hash/fnv"
	"strings"

	"innertone/internal/modules/companion/adapter/out/rpc"
)

type topic struct {
	keywords []string
	replies  []string
}

// topics are checked in order; the first keyword hit wins over the mood reply.
var topics = []topic{
	{
		keywords: []string{"worthless", "not good enough", "failure", "loser", "nobody likes me", "i'm a burden"},
		replies: []string{
			"When you say things like that about yourself, remember those are thoughts, not facts. Would you say them to a close friend who was struggling? What is one small thing you did today that shows you are trying?",
			"I hear how much pain you are in. Your worth is not decided by your thoughts or feelings. What would you say to a friend who felt this way about themselves?",
		},
	},
	{
		keywords: []string{"anxious", "nervous", "worried", "panic", "overthinking", "stressed", "overwhelmed", "racing thoughts", "scared", "restless"},
		replies: []string{
			"Anxiety can make everything feel urgent. Try the 5-4-3-2-1 grounding exercise: five things you see, four you can touch, three you hear, two you smell and one you taste. What worry has been looping most today?",
			"Place one hand on your chest and one on your belly. Breathe in for 4, hold for 4, breathe out for 6, a few times over. What do you notice in your body when the anxiety builds?",
		},
	},
	{
		keywords: []string{"lonely", "alone", "isolated", "left out", "disconnected", "abandoned", "no one understands"},
		replies: []string{
			"Feeling disconnected is painful, and many people feel it more often than they say. Is there one person you could send a short message to today, even just to say hi?",
			"Loneliness can be heavy. Sometimes a small shared space helps, like a class, a walk in a park or a community group. When do you feel most connected to others?",
		},
	},
	{
		keywords: []string{"angry", "furious", "rage", "irritated", "frustrated", "annoyed", "resentful"},
		replies: []string{
			"Anger often points at something that matters to you. Before acting on it, try a slow breath out and a short walk. What do you think is underneath the anger?",
			"It makes sense to feel frustrated. Writing out what happened, without editing, can take some of the heat out of it. What part of this feels most unfair?",
		},
	},
	{
		keywords: []string{"sad", "depressed", "down", "hopeless", "numb", "crying", "tears", "empty"},
		replies: []string{
			"I am sorry things feel so heavy. Try focusing on the next small step only, like a glass of water or a few minutes outside. What would make today a little more bearable?",
			"Sadness can make everything feel permanent, but feelings do pass. Be as kind to yourself as you would be to a good friend. What do you need most right now?",
		},
	},
	{
		keywords: []string{"can't sleep", "insomnia", "nightmares", "wake up", "sleeping"},
		replies: []string{
			"Sleep troubles wear everything down. A steady wind-down routine helps: dim lights, no screens for the last half hour and the same bedtime each night. What usually keeps you awake?",
		},
	},
	{
		keywords: []string{"work", "job", "boss", "colleague", "deadline", "coworker", "manager"},
		replies: []string{
			"Work pressure can follow us home. Try writing tomorrow's top three tasks before you stop for the day so your mind can let go of them. What part of work weighs on you most?",
		},
	},
	{
		keywords: []string{"partner", "boyfriend", "girlfriend", "spouse", "friend", "family", "relationship", "breakup", "argument"},
		replies: []string{
			"Relationships can bring both comfort and stress. It can help to name the need underneath, like respect, time or being heard, and share it calmly. What need is not being met right now?",
		},
	},
}

var moodReplies = map[string][]string{
	"positive": {
		"I am glad to hear there are some bright spots right now. Try noting one good moment each day so you can look back on it later. What has been supporting this sense of wellbeing?",
		"It sounds like there is some lightness in your day, and that matters. When you notice yourself feeling good, really lean into it. What could you do to build on this?",
	},
	"negative": {
		"Things sound really heavy right now. Thank you for sharing it. What is the hardest part, one specific thing or everything at once?",
		"You are going through a lot, and your feelings make sense. Focus on the next right thing only. What is one small step you could take today?",
	},
	"neutral": {
		"Thank you for sharing this with me. I am listening. What part of what you wrote feels most important to you right now?",
		"I am here with you. As you read back what you wrote, what do you notice inside, any tension, relief or curiosity?",
		"Sometimes putting thoughts into words helps us understand them. What would you like to explore a bit more?",
	},
}

var voiceReplies = map[string]string{
	"low":     "Your voice sounds a bit low in energy today, and that is okay. Be gentle with yourself and check in on the basics: food, water and rest. What would feel most restorative right now?",
	"high":    "Your voice carries a lot of energy right now. If it feels overwhelming, try box breathing: in for 4, hold for 4, out for 4, hold for 4. What is behind this energy?",
	"neutral": "Your voice sounds fairly balanced today. How are you feeling inside compared to how you sound?",
}

// chatReply picks a reply deterministically from the message so repeated
// requests stay stable.
func chatReply(message, mood string, history []rpc.Turn) string {
	lowered := strings.ToLower(message)
	for _, t := range topics {
		for _, kw := range t.keywords {
			if strings.Contains(lowered, kw) {
				return personalize(pick(t.replies, message), lowered, history)
			}
		}
	}
	key := "neutral"
	switch mood {
	case "very positive", "positive":
		key = "positive"
	case "negative", "very negative":
		key = "negative"
	}
	return personalize(pick(moodReplies[key], message), lowered, history)
}

func voiceReply(mood string) string {
	switch {
	case strings.Contains(mood, "low energy"):
		return voiceReplies["low"]
	case strings.Contains(mood, "high energy"):
		return voiceReplies["high"]
	default:
		return voiceReplies["neutral"]
	}
}

func personalize(reply, lowered string, history []rpc.Turn) string {
	var prefix string
	switch {
	case strings.Contains(lowered, "lately"), strings.Contains(lowered, "recently"), strings.Contains(lowered, "this week"):
		prefix = "I notice this has been coming up more recently. "
	case strings.Contains(lowered, "always"), strings.Contains(lowered, "for months"), strings.Contains(lowered, "for years"):
		prefix = "It sounds like this has been a long-standing challenge. "
	case userTurns(history) >= 3:
		prefix = "Building on what you shared earlier, "
		return prefix + strings.ToLower(reply[:1]) + reply[1:]
	}
	return prefix + reply
}

func userTurns(history []rpc.Turn) int {
	n := 0
	for _, t := range history {
		if t.Role == "user" {
			n++
		}
	}
	return n
}

func pick(options []string, seed string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return options[int(h.Sum32()%uint32(len(options)))]
}

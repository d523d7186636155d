package main

import (
	"math"
	"strings"
	"unicode"
)

// valence scores are on the -4..4 scale used by common sentiment lexicons.
var valence = map[string]float64{
	"good": 1.9, "great": 3.1, "happy": 2.7, "glad": 2.0, "love": 3.2, "loved": 2.9,
	"calm": 1.3, "peaceful": 2.2, "relaxed": 2.2, "grateful": 2.3, "thankful": 2.2,
	"better": 1.9, "best": 3.2, "hopeful": 2.3, "excited": 1.4, "joy": 2.8,
	"wonderful": 2.7, "amazing": 2.8, "nice": 1.8, "fine": 0.8, "okay": 0.9,
	"proud": 2.1, "safe": 1.9, "rested": 1.5, "content": 1.6, "fun": 2.3,
	"bad": -2.5, "sad": -2.1, "angry": -2.3, "mad": -2.2, "upset": -1.6,
	"anxious": -1.0, "worried": -1.2, "nervous": -1.1, "stressed": -1.4,
	"scared": -1.9, "afraid": -2.0, "lonely": -1.8, "alone": -1.0, "tired": -1.3,
	"exhausted": -1.5, "hopeless": -2.5, "depressed": -2.3, "awful": -2.0,
	"terrible": -2.1, "horrible": -2.5, "hate": -2.7, "worthless": -1.9,
	"overwhelmed": -1.5, "hurt": -2.4, "pain": -2.3, "cry": -2.1, "crying": -2.1,
	"frustrated": -1.5, "annoyed": -1.6, "empty": -0.8, "numb": -1.2,
	"panic": -2.3, "fear": -2.2, "guilty": -1.8, "failure": -2.6, "stupid": -2.4,
}

var boosters = map[string]float64{
	"really": 0.293, "very": 0.293, "so": 0.293, "extremely": 0.293,
	"incredibly": 0.293, "totally": 0.293, "absolutely": 0.293, "completely": 0.293,
	"terribly": 0.293, "super": 0.293,
	"slightly": -0.293, "somewhat": -0.293, "kinda": -0.293, "barely": -0.293,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "dont": true, "don't": true, "cant": true,
	"can't": true, "isnt": true, "isn't": true, "wasnt": true, "wasn't": true,
	"aint": true, "without": true, "nothing": true, "hardly": true,
}

const (
	negationScale = -0.74
	normAlpha     = 15.0
)

// compound scores text into [-1,1]. Each lexicon hit is scaled by boosters
// and flipped by a negation within the three preceding tokens.
func compound(text string) float64 {
	tokens := tokenize(text)
	var sum float64
	for i, tok := range tokens {
		v, ok := valence[tok]
		if !ok {
			continue
		}
		for back := 1; back <= 3 && i-back >= 0; back++ {
			prev := tokens[i-back]
			if b, ok := boosters[prev]; ok {
				scale := 1.0
				if back == 2 {
					scale = 0.95
				} else if back == 3 {
					scale = 0.9
				}
				if v < 0 {
					v -= b * scale
				} else {
					v += b * scale
				}
			}
			if negations[prev] {
				v *= negationScale
			}
		}
		sum += v
	}
	if sum == 0 {
		return 0
	}
	score := sum / math.Sqrt(sum*sum+normAlpha)
	return math.Max(-1, math.Min(1, score))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

package dto

type MessageOutput struct {
	Role    string
	Content string
}

type ChatOutput struct {
	Reply     string
	Mood      string
	Sentiment float64
	Fallback  bool
}

type VoiceResult struct {
	Mood     string
	Energy   float64
	Tempo    float64
	Reply    string
	Fallback bool
}

type HealthOutput struct {
	Status  string
	Name    string
	Version string
}

type VoiceOutput struct {
	Recording bool
	Result    *VoiceResult
}

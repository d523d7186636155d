package domain

const (
	ChatFallback  = "I had trouble reaching the server. Please make sure the backend is running."
	VoiceFallback = "I couldn't analyze the audio. Please ensure the backend is running."

	DefaultRecordingName = "recording.webm"
	DefaultRecordingType = "audio/webm"
)

type ChatRequest struct {
	Message string
	History []Message
}

type ChatReply struct {
	Reply     string
	Mood      string
	Sentiment float64
	Fallback  bool
}

// Recording is one captured clip packaged as a single blob.
type Recording struct {
	Data     []byte
	MIMEType string
	FileName string
}

// BackendHealth is what a backend reports when asked whether it is serving.
type BackendHealth struct {
	Status  string
	Name    string
	Version string
}

type VoiceReply struct {
	Mood     string
	Energy   float64
	Tempo    float64
	Reply    string
	Fallback bool
}

// VoiceState is the result of a record toggle. Reply is only set once a
// recording has been stopped and analysed.
type VoiceState struct {
	Recording bool
	Reply     *VoiceReply
}

// ClassifyMood buckets a compound sentiment score in [-1,1].
func ClassifyMood(compound float64) string {
	switch {
	case compound >= 0.5:
		return "very positive"
	case compound >= 0.1:
		return "positive"
	case compound > -0.1:
		return "neutral"
	case compound > -0.5:
		return "negative"
	default:
		return "very negative"
	}
}

// VoiceProfile estimates energy from clip size alone: longer or louder
// recordings compress to larger blobs.
func VoiceProfile(size int) (mood string, energy, tempo float64) {
	kb := float64(size) / 1024
	switch {
	case kb < 20:
		return "very low energy / very short recording", 0.2, 60
	case kb < 80:
		return "low to moderate energy", 0.4, 80
	case kb < 200:
		return "moderate energy", 0.6, 100
	default:
		return "high energy / long or loud recording", 0.85, 120
	}
}

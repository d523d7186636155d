package out

import (
	"context"

	"innertone/internal/modules/companion/domain"
)

// Backend produces replies for chat messages and recorded clips.
type Backend interface {
	Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error)
	AnalyzeVoice(ctx context.Context, rec domain.Recording) (domain.VoiceReply, error)
	Health(ctx context.Context) (domain.BackendHealth, error)
}

// Recorder opens a capture stream. Open fails with ErrNoMicrophone when no
// capture device exists and ErrMicrophoneDenied when access is refused.
type Recorder interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream collects audio between Start and Stop. Close releases the device
// and must be safe to call more than once.
type Stream interface {
	Start() error
	Stop() (domain.Recording, error)
	Close() error
}

package service

import (
	"context"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"innertone/internal/modules/companion/domain"
	companionout "innertone/internal/modules/companion/port/out"
	apperrors "innertone/internal/platform/errors"
)

// Relay forwards chat and voice input to the backend. Backend failures are
// never retried; the caller gets the fixed fallback reply instead. The lock
// guards history and the open stream and is never held across a backend call.
type Relay struct {
	mu       sync.Mutex
	backend  companionout.Backend
	recorder companionout.Recorder
	log      hclog.Logger
	history  domain.History
	stream   companionout.Stream
}

func NewRelay(backend companionout.Backend, recorder companionout.Recorder, log hclog.Logger) *Relay {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Relay{backend: backend, recorder: recorder, log: log}
}

// Health asks the backend whether it is serving. Unlike Send there is no
// fallback; the error is returned as is.
func (r *Relay) Health(ctx context.Context) (domain.BackendHealth, error) {
	return r.backend.Health(ctx)
}

func (r *Relay) Send(ctx context.Context, text string) (domain.ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatReply{}, apperrors.ErrInvalidInput
	}
	r.mu.Lock()
	r.history.Append(domain.Message{Role: domain.RoleUser, Content: text})
	window := r.history.Window()
	r.mu.Unlock()

	reply, err := r.backend.Chat(ctx, domain.ChatRequest{Message: text, History: window})
	if err != nil {
		r.log.Warn("chat request failed", "error", err)
		return domain.ChatReply{Reply: domain.ChatFallback, Fallback: true}, nil
	}

	r.mu.Lock()
	r.history.Append(domain.Message{Role: domain.RoleBot, Content: reply.Reply})
	r.mu.Unlock()
	return reply, nil
}

// ToggleRecording starts capture when idle. When recording it stops, sends
// the clip for analysis and releases the stream whatever the outcome.
func (r *Relay) ToggleRecording(ctx context.Context) (domain.VoiceState, error) {
	r.mu.Lock()
	if r.stream == nil {
		defer r.mu.Unlock()
		if r.recorder == nil {
			return domain.VoiceState{}, apperrors.ErrNoMicrophone
		}
		stream, err := r.recorder.Open(ctx)
		if err != nil {
			return domain.VoiceState{}, err
		}
		if err := stream.Start(); err != nil {
			_ = stream.Close()
			return domain.VoiceState{}, err
		}
		r.stream = stream
		return domain.VoiceState{Recording: true}, nil
	}
	stream := r.stream
	r.stream = nil
	r.mu.Unlock()

	defer func() {
		if err := stream.Close(); err != nil {
			r.log.Warn("release recorder failed", "error", err)
		}
	}()
	rec, err := stream.Stop()
	if err != nil {
		r.log.Warn("stop recording failed", "error", err)
		return domain.VoiceState{Reply: voiceFallback()}, nil
	}
	if rec.FileName == "" {
		rec.FileName = domain.DefaultRecordingName
	}
	if rec.MIMEType == "" {
		rec.MIMEType = domain.DefaultRecordingType
	}
	reply, err := r.backend.AnalyzeVoice(ctx, rec)
	if err != nil {
		r.log.Warn("voice analysis failed", "bytes", len(rec.Data), "error", err)
		return domain.VoiceState{Reply: voiceFallback()}, nil
	}
	return domain.VoiceState{Reply: &reply}, nil
}

func voiceFallback() *domain.VoiceReply {
	return &domain.VoiceReply{Reply: domain.VoiceFallback, Fallback: true}
}

func (r *Relay) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stream != nil
}

func (r *Relay) History() []domain.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history.Messages()
}

// Reset drops the conversation and releases any open recorder.
func (r *Relay) Reset() error {
	r.mu.Lock()
	stream := r.stream
	r.stream = nil
	r.history.Clear()
	r.mu.Unlock()
	if stream != nil {
		return stream.Close()
	}
	return nil
}

package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"innertone/internal/modules/companion/domain"
	companionout "innertone/internal/modules/companion/port/out"
	"innertone/internal/modules/companion/service"
	apperrors "innertone/internal/platform/errors"
)

type fakeBackend struct {
	requests []domain.ChatRequest
	clips    []domain.Recording
	chatErr  error
	voiceErr error
}

func (b *fakeBackend) Chat(_ context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	b.requests = append(b.requests, req)
	if b.chatErr != nil {
		return domain.ChatReply{}, b.chatErr
	}
	return domain.ChatReply{Reply: "echo: " + req.Message, Mood: "neutral"}, nil
}

func (b *fakeBackend) Health(context.Context) (domain.BackendHealth, error) {
	if b.chatErr != nil {
		return domain.BackendHealth{}, b.chatErr
	}
	return domain.BackendHealth{Status: "ok", Name: "fake"}, nil
}

func (b *fakeBackend) AnalyzeVoice(_ context.Context, rec domain.Recording) (domain.VoiceReply, error) {
	b.clips = append(b.clips, rec)
	if b.voiceErr != nil {
		return domain.VoiceReply{}, b.voiceErr
	}
	return domain.VoiceReply{Mood: "calm", Energy: 0.4, Tempo: 80, Reply: "thanks"}, nil
}

type fakeStream struct {
	started bool
	closed  int
	stopErr error
}

func (s *fakeStream) Start() error { s.started = true; return nil }
func (s *fakeStream) Stop() (domain.Recording, error) {
	if s.stopErr != nil {
		return domain.Recording{}, s.stopErr
	}
	return domain.Recording{Data: []byte("clip")}, nil
}
func (s *fakeStream) Close() error { s.closed++; return nil }

type fakeRecorder struct {
	stream  *fakeStream
	openErr error
}

func (r *fakeRecorder) Open(context.Context) (companionout.Stream, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	return r.stream, nil
}

func TestHistoryWindowAfterManyMessages(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	relay := service.NewRelay(backend, nil, nil)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		if _, err := relay.Send(ctx, fmt.Sprintf("u%d", i)); err != nil {
			t.Fatalf("send: %v", err)
		}
	}
	// the 25th message gets no reply
	backend.chatErr = apperrors.ErrBackendUnavailable
	if _, err := relay.Send(ctx, "u12"); err != nil {
		t.Fatalf("send: %v", err)
	}
	backend.chatErr = nil
	history := relay.History()
	if len(history) != 20 || history[19].Content != "u12" || history[0].Content != "echo: u2" {
		t.Fatalf("expected the most recent 20 messages, got %d: %+v", len(history), history)
	}
	if _, err := relay.Send(ctx, "next"); err != nil {
		t.Fatalf("send: %v", err)
	}
	last := backend.requests[len(backend.requests)-1]
	if len(last.History) != 10 {
		t.Fatalf("expected 10 messages in payload, got %d", len(last.History))
	}
	if final := last.History[9]; final.Role != domain.RoleUser || final.Content != "next" {
		t.Fatalf("window must end with the message being sent, got %+v", final)
	}
}

func TestSendBlankIsRejectedWithoutRequest(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	relay := service.NewRelay(backend, nil, nil)
	if _, err := relay.Send(context.Background(), "  "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(backend.requests) != 0 || len(relay.History()) != 0 {
		t.Fatalf("blank message must not be sent or recorded")
	}
}

func TestSendFailureReturnsFallbackOnce(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{chatErr: apperrors.ErrBackendUnavailable}
	relay := service.NewRelay(backend, nil, nil)
	reply, err := relay.Send(context.Background(), "hello")
	if err != nil {
		t.Fatalf("fallback is not an error: %v", err)
	}
	if !reply.Fallback || reply.Reply != domain.ChatFallback {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if len(backend.requests) != 1 {
		t.Fatalf("failed request must not be retried, got %d attempts", len(backend.requests))
	}
	if h := relay.History(); len(h) != 1 || h[0].Role != domain.RoleUser {
		t.Fatalf("only the user message is kept on failure: %+v", h)
	}
}

func TestToggleRecordingReleasesStream(t *testing.T) {
	t.Parallel()
	stream := &fakeStream{}
	backend := &fakeBackend{}
	relay := service.NewRelay(backend, &fakeRecorder{stream: stream}, nil)
	ctx := context.Background()

	state, err := relay.ToggleRecording(ctx)
	if err != nil || !state.Recording || !stream.started || !relay.Recording() {
		t.Fatalf("expected recording to start: %+v %v", state, err)
	}
	state, err = relay.ToggleRecording(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if state.Recording || state.Reply == nil || state.Reply.Mood != "calm" {
		t.Fatalf("unexpected state %+v", state)
	}
	if stream.closed != 1 {
		t.Fatalf("stream must be closed once, got %d", stream.closed)
	}
	clip := backend.clips[0]
	if clip.FileName != "recording.webm" || clip.MIMEType != "audio/webm" {
		t.Fatalf("clip not packaged with defaults: %+v", clip)
	}
}

func TestToggleRecordingFailuresStillRelease(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stream := &fakeStream{}
	relay := service.NewRelay(&fakeBackend{voiceErr: errors.New("boom")}, &fakeRecorder{stream: stream}, nil)
	if _, err := relay.ToggleRecording(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	state, err := relay.ToggleRecording(ctx)
	if err != nil || state.Reply == nil || !state.Reply.Fallback || state.Reply.Reply != domain.VoiceFallback {
		t.Fatalf("expected voice fallback, got %+v %v", state, err)
	}
	if stream.closed != 1 {
		t.Fatalf("stream not released after backend failure")
	}

	broken := &fakeStream{stopErr: errors.New("device lost")}
	relay = service.NewRelay(&fakeBackend{}, &fakeRecorder{stream: broken}, nil)
	_, _ = relay.ToggleRecording(ctx)
	state, _ = relay.ToggleRecording(ctx)
	if state.Reply == nil || !state.Reply.Fallback || broken.closed != 1 {
		t.Fatalf("stop failure must fall back and release")
	}
}

func TestToggleRecordingCapabilityErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	if _, err := service.NewRelay(&fakeBackend{}, nil, nil).ToggleRecording(ctx); !errors.Is(err, apperrors.ErrNoMicrophone) {
		t.Fatalf("expected no microphone, got %v", err)
	}
	relay := service.NewRelay(&fakeBackend{}, &fakeRecorder{openErr: apperrors.ErrMicrophoneDenied}, nil)
	if _, err := relay.ToggleRecording(ctx); !errors.Is(err, apperrors.ErrMicrophoneDenied) {
		t.Fatalf("expected denied, got %v", err)
	}
	if relay.Recording() {
		t.Fatalf("failed open must leave the relay idle")
	}
}

func TestResetClosesOpenStream(t *testing.T) {
	t.Parallel()
	stream := &fakeStream{}
	relay := service.NewRelay(&fakeBackend{}, &fakeRecorder{stream: stream}, nil)
	_, _ = relay.Send(context.Background(), "hi")
	_, _ = relay.ToggleRecording(context.Background())
	if err := relay.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if stream.closed != 1 || relay.Recording() || len(relay.History()) != 0 {
		t.Fatalf("reset must release the stream and clear history")
	}
}

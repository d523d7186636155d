package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-plugin"

	"innertone/internal/modules/companion/adapter/out/rpc"
	"innertone/internal/modules/companion/domain"
)

type server struct{}

func (s *server) GetMetadata(context.Context, *rpc.Empty) (*rpc.Metadata, error) {
	return &rpc.Metadata{Name: "analyzer", Version: "1.0.0"}, nil
}

func (s *server) Chat(_ context.Context, in *rpc.ChatRequest) (*rpc.ChatResponse, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, fmt.Errorf("message is required")
	}
	score := compound(in.Message)
	mood := domain.ClassifyMood(score)
	return &rpc.ChatResponse{
		Reply:          chatReply(in.Message, mood, in.ConversationHistory),
		Mood:           mood,
		SentimentScore: score,
	}, nil
}

func (s *server) AnalyzeVoice(_ context.Context, in *rpc.VoiceRequest) (*rpc.VoiceResponse, error) {
	mood, energy, tempo := domain.VoiceProfile(len(in.Audio))
	return &rpc.VoiceResponse{Mood: mood, Energy: energy, Tempo: tempo, Reply: voiceReply(mood)}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: rpc.HandshakeConfig,
		Plugins:         rpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}

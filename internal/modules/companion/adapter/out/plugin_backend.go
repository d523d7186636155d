package out

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	analyzerrpc "innertone/internal/modules/companion/adapter/out/rpc"
	"innertone/internal/modules/companion/domain"
	companionout "innertone/internal/modules/companion/port/out"
	apperrors "innertone/internal/platform/errors"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 10 * time.Second
)

// PluginBackend runs an offline analyzer binary over go-plugin gRPC. The
// process is started for each request and killed afterwards.
type PluginBackend struct {
	binary string
	log    hclog.Logger
}

func NewPluginBackend(binary string, log hclog.Logger) *PluginBackend {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &PluginBackend{binary: binary, log: log}
}

var _ companionout.Backend = (*PluginBackend)(nil)

func (b *PluginBackend) Metadata(ctx context.Context) (analyzerrpc.Metadata, error) {
	client, closeFn, err := b.connect()
	if err != nil {
		return analyzerrpc.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return analyzerrpc.Metadata{}, fmt.Errorf("%w: analyzer metadata: %v", apperrors.ErrBackendUnavailable, err)
	}
	return *meta, nil
}

// Health starts the analyzer and reports the name and version it announces.
func (b *PluginBackend) Health(ctx context.Context) (domain.BackendHealth, error) {
	meta, err := b.Metadata(ctx)
	if err != nil {
		return domain.BackendHealth{}, err
	}
	return domain.BackendHealth{Status: "ok", Name: meta.Name, Version: meta.Version}, nil
}

func (b *PluginBackend) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	client, closeFn, err := b.connect()
	if err != nil {
		return domain.ChatReply{}, err
	}
	defer closeFn()

	turns := make([]analyzerrpc.Turn, 0, len(req.History))
	for _, msg := range req.History {
		turns = append(turns, analyzerrpc.Turn{Role: string(msg.Role), Content: msg.Content})
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	resp, err := client.Chat(callCtx, &analyzerrpc.ChatRequest{Message: req.Message, ConversationHistory: turns})
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("%w: analyzer chat: %v", apperrors.ErrBackendUnavailable, err)
	}
	return domain.ChatReply{Reply: resp.Reply, Mood: resp.Mood, Sentiment: resp.SentimentScore}, nil
}

func (b *PluginBackend) AnalyzeVoice(ctx context.Context, rec domain.Recording) (domain.VoiceReply, error) {
	client, closeFn, err := b.connect()
	if err != nil {
		return domain.VoiceReply{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	resp, err := client.AnalyzeVoice(callCtx, &analyzerrpc.VoiceRequest{FileName: rec.FileName, MIMEType: rec.MIMEType, Audio: rec.Data})
	if err != nil {
		return domain.VoiceReply{}, fmt.Errorf("%w: analyzer voice: %v", apperrors.ErrBackendUnavailable, err)
	}
	return domain.VoiceReply{Mood: resp.Mood, Energy: resp.Energy, Tempo: resp.Tempo, Reply: resp.Reply}, nil
}

func (b *PluginBackend) connect() (analyzerrpc.AnalyzerClient, func(), error) {
	if b.binary == "" {
		return nil, nil, fmt.Errorf("%w: analyzer plugin path is not configured", apperrors.ErrBackendUnavailable)
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  analyzerrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          analyzerrpc.PluginMap(nil),
		Cmd:              exec.Command(b.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           b.log.Named("analyzer"),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("%w: start analyzer: %v", apperrors.ErrBackendUnavailable, err)
	}
	raw, err := rpcClient.Dispense(analyzerrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("%w: dispense analyzer: %v", apperrors.ErrBackendUnavailable, err)
	}
	typed, ok := raw.(analyzerrpc.AnalyzerClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("analyzer rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

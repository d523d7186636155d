package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey       = "analyzer"
	serviceName        = "innertone.analyzer.v1.Analyzer"
	jsonCodecName      = "json"
	methodGetMetadata  = "/" + serviceName + "/GetMetadata"
	methodChat         = "/" + serviceName + "/Chat"
	methodAnalyzeVoice = "/" + serviceName + "/AnalyzeVoice"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "INNERTONE_ANALYZER",
	MagicCookieValue: "innertone",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string `json:"message"`
	ConversationHistory []Turn `json:"conversation_history"`
}

type ChatResponse struct {
	Reply          string  `json:"reply"`
	Mood           string  `json:"mood"`
	SentimentScore float64 `json:"sentiment_score"`
}

type VoiceRequest struct {
	FileName string `json:"file_name"`
	MIMEType string `json:"mime_type"`
	Audio    []byte `json:"audio"`
}

type VoiceResponse struct {
	Mood   string  `json:"mood"`
	Energy float64 `json:"energy"`
	Tempo  float64 `json:"tempo"`
	Reply  string  `json:"reply"`
}

type AnalyzerServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Chat(ctx context.Context, in *ChatRequest) (*ChatResponse, error)
	AnalyzeVoice(ctx context.Context, in *VoiceRequest) (*VoiceResponse, error)
}

type AnalyzerClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Chat(ctx context.Context, in *ChatRequest) (*ChatResponse, error)
	AnalyzeVoice(ctx context.Context, in *VoiceRequest) (*VoiceResponse, error)
}

type analyzerClient struct {
	conn *grpc.ClientConn
}

func NewAnalyzerClient(conn *grpc.ClientConn) AnalyzerClient {
	return &analyzerClient{conn: conn}
}

func (c *analyzerClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *analyzerClient) Chat(ctx context.Context, in *ChatRequest) (*ChatResponse, error) {
	out := &ChatResponse{}
	if err := c.conn.Invoke(ctx, methodChat, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *analyzerClient) AnalyzeVoice(ctx context.Context, in *VoiceRequest) (*VoiceResponse, error) {
	out := &VoiceResponse{}
	if err := c.conn.Invoke(ctx, methodAnalyzeVoice, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a typed handler to grpc.MethodDesc, honouring interceptors.
func unary[Req any, Resp any](fullMethod string, call func(context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterAnalyzerServer(server grpc.ServiceRegistrar, impl AnalyzerServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*AnalyzerServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unary(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "Chat", Handler: unary(methodChat, impl.Chat)},
			{MethodName: "AnalyzeVoice", Handler: unary(methodAnalyzeVoice, impl.AnalyzeVoice)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/analyzer-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl AnalyzerServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterAnalyzerServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewAnalyzerClient(conn), nil
}

func PluginMap(impl AnalyzerServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}

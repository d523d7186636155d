package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"innertone/internal/modules/companion/domain"
	companionout "innertone/internal/modules/companion/port/out"
	apperrors "innertone/internal/platform/errors"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPBackend talks to the companion API: JSON to {base}/chat, a multipart
// upload to {base}/analyze_voice and a GET on {base}/health.
type HTTPBackend struct {
	base   string
	client *http.Client
}

func NewHTTPBackend(base string, client *http.Client) companionout.Backend {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPBackend{base: strings.TrimRight(base, "/"), client: client}
}

type chatPayload struct {
	Message             string           `json:"message"`
	ConversationHistory []domain.Message `json:"conversation_history"`
}

type chatResponse struct {
	Reply          string  `json:"reply"`
	Mood           string  `json:"mood"`
	SentimentScore float64 `json:"sentiment_score"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type voiceResponse struct {
	Mood   string  `json:"mood"`
	Energy float64 `json:"energy"`
	Tempo  float64 `json:"tempo"`
	Reply  string  `json:"reply"`
}

func (b *HTTPBackend) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	history := req.History
	if history == nil {
		history = []domain.Message{}
	}
	body, err := json.Marshal(chatPayload{Message: req.Message, ConversationHistory: history})
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("encode chat request: %w", err)
	}
	var out chatResponse
	if err := b.do(ctx, http.MethodPost, "/chat", "application/json", bytes.NewReader(body), &out); err != nil {
		return domain.ChatReply{}, err
	}
	return domain.ChatReply{Reply: out.Reply, Mood: out.Mood, Sentiment: out.SentimentScore}, nil
}

func (b *HTTPBackend) AnalyzeVoice(ctx context.Context, rec domain.Recording) (domain.VoiceReply, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, rec.FileName))
	header.Set("Content-Type", rec.MIMEType)
	part, err := form.CreatePart(header)
	if err != nil {
		return domain.VoiceReply{}, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(rec.Data); err != nil {
		return domain.VoiceReply{}, fmt.Errorf("write recording: %w", err)
	}
	if err := form.Close(); err != nil {
		return domain.VoiceReply{}, fmt.Errorf("close form: %w", err)
	}
	var out voiceResponse
	if err := b.do(ctx, http.MethodPost, "/analyze_voice", form.FormDataContentType(), &buf, &out); err != nil {
		return domain.VoiceReply{}, err
	}
	return domain.VoiceReply{Mood: out.Mood, Energy: out.Energy, Tempo: out.Tempo, Reply: out.Reply}, nil
}

func (b *HTTPBackend) Health(ctx context.Context) (domain.BackendHealth, error) {
	var out healthResponse
	if err := b.do(ctx, http.MethodGet, "/health", "", nil, &out); err != nil {
		return domain.BackendHealth{}, err
	}
	return domain.BackendHealth{Status: out.Status, Name: b.base}, nil
}

func (b *HTTPBackend) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, b.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned %d", apperrors.ErrBackendUnavailable, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", apperrors.ErrBackendUnavailable, path, err)
	}
	return nil
}

package usecase

import (
	"context"

	"innertone/internal/modules/companion/domain"
	"innertone/internal/modules/companion/dto"
	companionin "innertone/internal/modules/companion/port/in"
	"innertone/internal/modules/companion/service"
)

type Interactor struct {
	relay *service.Relay
}

func NewInteractor(relay *service.Relay) companionin.Usecase {
	return &Interactor{relay: relay}
}

func (i *Interactor) Send(ctx context.Context, text string) (dto.ChatOutput, error) {
	reply, err := i.relay.Send(ctx, text)
	if err != nil {
		return dto.ChatOutput{}, err
	}
	return dto.ChatOutput{Reply: reply.Reply, Mood: reply.Mood, Sentiment: reply.Sentiment, Fallback: reply.Fallback}, nil
}

func (i *Interactor) ToggleRecording(ctx context.Context) (dto.VoiceOutput, error) {
	state, err := i.relay.ToggleRecording(ctx)
	if err != nil {
		return dto.VoiceOutput{}, err
	}
	out := dto.VoiceOutput{Recording: state.Recording}
	if state.Reply != nil {
		out.Result = toVoiceResult(*state.Reply)
	}
	return out, nil
}

func (i *Interactor) Recording(context.Context) bool {
	return i.relay.Recording()
}

func (i *Interactor) History(context.Context) []dto.MessageOutput {
	msgs := i.relay.History()
	out := make([]dto.MessageOutput, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, dto.MessageOutput{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func (i *Interactor) Reset(context.Context) error {
	return i.relay.Reset()
}

func (i *Interactor) Health(ctx context.Context) (dto.HealthOutput, error) {
	h, err := i.relay.Health(ctx)
	if err != nil {
		return dto.HealthOutput{}, err
	}
	return dto.HealthOutput{Status: h.Status, Name: h.Name, Version: h.Version}, nil
}

func toVoiceResult(r domain.VoiceReply) *dto.VoiceResult {
	return &dto.VoiceResult{Mood: r.Mood, Energy: r.Energy, Tempo: r.Tempo, Reply: r.Reply, Fallback: r.Fallback}
}

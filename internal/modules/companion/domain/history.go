package domain

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

const (
	HistoryCap = 20
	WindowSize = 10
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History keeps the most recent HistoryCap messages of a conversation.
type History struct {
	messages []Message
}

func (h *History) Append(msg Message) {
	h.messages = append(h.messages, msg)
	if over := len(h.messages) - HistoryCap; over > 0 {
		kept := make([]Message, HistoryCap)
		copy(kept, h.messages[over:])
		h.messages = kept
	}
}

// Window returns a copy of the last WindowSize messages, the context sent
// with each chat request.
func (h *History) Window() []Message {
	start := len(h.messages) - WindowSize
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(h.messages)-start)
	copy(out, h.messages[start:])
	return out
}

func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *History) Len() int { return len(h.messages) }

func (h *History) Clear() { h.messages = nil }

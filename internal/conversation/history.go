package conversation

import (
	"github.com/ziadkadry99/routerchat/internal/llm"
)

// Turn is one earlier exchange as sent by API clients. The answer may arrive
// either as Message.Content or as a top-level Content field.
type Turn struct {
	Query   string       `json:"query" yaml:"query"`
	Message *TurnMessage `json:"message,omitempty" yaml:"message,omitempty"`
	Content string       `json:"content,omitempty" yaml:"content,omitempty"`
}

// TurnMessage is the assistant message of a Turn.
type TurnMessage struct {
	Role    string `json:"role,omitempty" yaml:"role,omitempty"`
	Content string `json:"content" yaml:"content"`
}

// Answer returns the assistant text of the turn, preferring Message.Content.
func (t Turn) Answer() string {
	if t.Message != nil && t.Message.Content != "" {
		return t.Message.Content
	}
	return t.Content
}

// BuildMessages turns a history of exchanges plus the current query into an
// ordered message list. Turns without a query are skipped; a turn without an
// answer contributes only its user message. The query is always last.
func BuildMessages(history []Turn, query string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)*2+1)
	for _, turn := range history {
		if turn.Query == "" {
			continue
		}
		msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: turn.Query})
		if answer := turn.Answer(); answer != "" {
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: answer})
		}
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: query})
}

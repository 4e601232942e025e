package conversation

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/routerchat/internal/llm"
)

// ErrNoMessages is returned for an empty conversation.
var ErrNoMessages = errors.New("conversation has no messages")

// Validate checks that msgs can be sent as-is: at least one message, known
// roles, and content on every message. Turn order is not checked here; see
// Alternates.
func Validate(msgs []llm.Message) error {
	if len(msgs) == 0 {
		return ErrNoMessages
	}
	for i, m := range msgs {
		if !m.Role.Valid() {
			return fmt.Errorf("message %d: invalid role %q: must be one of system, user, assistant", i, m.Role)
		}
		if m.IsMultipart() {
			if m.Content != "" {
				return fmt.Errorf("message %d: content and parts are mutually exclusive", i)
			}
			if err := validateParts(m.Parts); err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			continue
		}
		if m.Content == "" {
			return fmt.Errorf("message %d: content is required", i)
		}
	}
	return nil
}

func validateParts(parts []llm.ContentPart) error {
	for i, p := range parts {
		switch p.Type {
		case llm.PartText:
			if p.Text == "" {
				return fmt.Errorf("part %d: text is required", i)
			}
		case llm.PartImageURL:
			if p.ImageURL == "" {
				return fmt.Errorf("part %d: image_url is required", i)
			}
		default:
			return fmt.Errorf("part %d: invalid type %q: must be text or image_url", i, p.Type)
		}
	}
	return nil
}

// Alternates reports whether user and assistant turns alternate after any
// leading system messages, starting and ending with a user turn.
func Alternates(msgs []llm.Message) bool {
	i := 0
	for i < len(msgs) && msgs[i].Role == llm.RoleSystem {
		i++
	}
	rest := msgs[i:]
	if len(rest) == 0 {
		return false
	}
	for j, m := range rest {
		want := llm.RoleUser
		if j%2 == 1 {
			want = llm.RoleAssistant
		}
		if m.Role != want {
			return false
		}
	}
	return rest[len(rest)-1].Role == llm.RoleUser
}

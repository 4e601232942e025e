package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// PartType identifies the kind of a structured content block.
type PartType string

const (
	PartText     PartType = "text"
	PartImageURL PartType = "image_url"
)

// ContentPart is one block of a multi-part message. ImageURL is passed to the
// service verbatim (http(s) or data: URL); nothing is fetched or encoded here.
type ContentPart struct {
	Type     PartType `json:"type" yaml:"type"`
	Text     string   `json:"text,omitempty" yaml:"text,omitempty"`
	ImageURL string   `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Detail   string   `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Message represents a single message in a conversation.
//
// Parts takes priority over Content when non-empty.
type Message struct {
	Role    Role          `json:"role" yaml:"role"`
	Content string        `json:"content,omitempty" yaml:"content,omitempty"`
	Parts   []ContentPart `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// IsMultipart reports whether the message carries structured content blocks.
func (m Message) IsMultipart() bool {
	return len(m.Parts) > 0
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Headers     map[string]string
	MaxTokens   int
	Temperature float64
}

// CompletionResponse contains the result of an LLM completion request.
// Content is the text of the first choice.
type CompletionResponse struct {
	ID           string
	Content      string
	Role         Role
	Model        string
	FinishReason string
	Choices      int
	InputTokens  int
	OutputTokens int
}

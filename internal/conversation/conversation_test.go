package conversation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/routerchat/internal/llm"
)

func TestExample(t *testing.T) {
	msgs := Example()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}

	wantRoles := []llm.Role{llm.RoleUser, llm.RoleAssistant, llm.RoleUser}
	for i, want := range wantRoles {
		if msgs[i].Role != want {
			t.Errorf("message %d: role = %q, want %q", i, msgs[i].Role, want)
		}
	}
	if msgs[0].Content != "こんにちはとは何ですか？" {
		t.Errorf("unexpected first message %q", msgs[0].Content)
	}
	if msgs[2].Content != "画像に何が写っていますか？" {
		t.Errorf("unexpected last message %q", msgs[2].Content)
	}
	if !strings.HasPrefix(msgs[1].Content, "「こんにちは」は、日本語で昼間に使う代表的な挨拶です。\n\n### 基本情報\n") {
		t.Errorf("unexpected answer prefix %q", msgs[1].Content[:40])
	}
	if !strings.HasSuffix(msgs[1].Content, "---\n\n参考：Weblio 和英辞書、国立国語研究所、ウィクショナリー日本語版") {
		t.Error("answer should end with the reference line and no trailing newline")
	}

	if err := Validate(msgs); err != nil {
		t.Errorf("example should validate: %v", err)
	}
	if !Alternates(msgs) {
		t.Error("example should alternate")
	}
}

func TestExampleReturnsFreshSlice(t *testing.T) {
	a := Example()
	a[0].Content = "changed"
	if Example()[0].Content == "changed" {
		t.Error("Example must not share state between calls")
	}
}

func TestBuildMessages(t *testing.T) {
	history := []Turn{
		{Query: "q1", Message: &TurnMessage{Role: "assistant", Content: "a1"}},
		{Query: "q2", Content: "a2"},
		{Query: "q3"},
		{Content: "orphan answer"},
	}

	msgs := BuildMessages(history, "now")

	want := []llm.Message{
		{Role: llm.RoleUser, Content: "q1"},
		{Role: llm.RoleAssistant, Content: "a1"},
		{Role: llm.RoleUser, Content: "q2"},
		{Role: llm.RoleAssistant, Content: "a2"},
		{Role: llm.RoleUser, Content: "q3"},
		{Role: llm.RoleUser, Content: "now"},
	}
	if len(msgs) != len(want) {
		t.Fatalf("got %d messages, want %d: %+v", len(msgs), len(want), msgs)
	}
	for i := range want {
		if msgs[i].Role != want[i].Role || msgs[i].Content != want[i].Content {
			t.Errorf("message %d = %+v, want %+v", i, msgs[i], want[i])
		}
	}
}

func TestBuildMessagesNoHistory(t *testing.T) {
	msgs := BuildMessages(nil, "hello")
	if len(msgs) != 1 || msgs[0].Role != llm.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("unexpected messages %+v", msgs)
	}
}

func TestTurnAnswerPrefersMessage(t *testing.T) {
	turn := Turn{Query: "q", Message: &TurnMessage{Content: "from message"}, Content: "top level"}
	if turn.Answer() != "from message" {
		t.Errorf("Answer() = %q", turn.Answer())
	}
	turn.Message.Content = ""
	if turn.Answer() != "top level" {
		t.Errorf("Answer() = %q", turn.Answer())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		msgs    []llm.Message
		wantErr bool
	}{
		{"valid", []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, false},
		{"invalid role", []llm.Message{{Role: "tool", Content: "hi"}}, true},
		{"empty content", []llm.Message{{Role: llm.RoleUser}}, true},
		{"valid parts", []llm.Message{{Role: llm.RoleUser, Parts: []llm.ContentPart{
			{Type: llm.PartText, Text: "what"},
			{Type: llm.PartImageURL, ImageURL: "data:image/jpeg;base64,AAAA"},
		}}}, false},
		{"content and parts", []llm.Message{{Role: llm.RoleUser, Content: "x", Parts: []llm.ContentPart{
			{Type: llm.PartText, Text: "what"},
		}}}, true},
		{"empty image url", []llm.Message{{Role: llm.RoleUser, Parts: []llm.ContentPart{
			{Type: llm.PartImageURL},
		}}}, true},
		{"unknown part", []llm.Message{{Role: llm.RoleUser, Parts: []llm.ContentPart{
			{Type: "audio", Text: "x"},
		}}}, true},
	}
	for _, tt := range tests {
		err := Validate(tt.msgs)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateEmpty(t *testing.T) {
	if err := Validate(nil); !errors.Is(err, ErrNoMessages) {
		t.Errorf("expected ErrNoMessages, got %v", err)
	}
}

func TestAlternates(t *testing.T) {
	u := llm.Message{Role: llm.RoleUser, Content: "u"}
	a := llm.Message{Role: llm.RoleAssistant, Content: "a"}
	s := llm.Message{Role: llm.RoleSystem, Content: "s"}

	tests := []struct {
		name string
		msgs []llm.Message
		want bool
	}{
		{"single user", []llm.Message{u}, true},
		{"system then user", []llm.Message{s, u}, true},
		{"u a u", []llm.Message{u, a, u}, true},
		{"u u", []llm.Message{u, u}, false},
		{"ends with assistant", []llm.Message{u, a}, false},
		{"starts with assistant", []llm.Message{a, u}, false},
		{"only system", []llm.Message{s}, false},
	}
	for _, tt := range tests {
		if got := Alternates(tt.msgs); got != tt.want {
			t.Errorf("%s: Alternates() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.yml")
	content := `model: perplexity/sonar-pro
messages:
  - role: user
    content: こんにちはとは何ですか？
  - role: assistant
    content: 挨拶です。
  - role: user
    parts:
      - type: text
        text: この画像には何が写っていますか？
      - type: image_url
        image_url: https://example.com/photo.jpg
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if f.Model != "perplexity/sonar-pro" {
		t.Errorf("model = %q", f.Model)
	}
	if len(f.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(f.Messages))
	}
	last := f.Messages[2]
	if len(last.Parts) != 2 || last.Parts[1].Type != llm.PartImageURL || last.Parts[1].ImageURL != "https://example.com/photo.jpg" {
		t.Errorf("unexpected parts %+v", last.Parts)
	}
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.json")
	content := `{"messages":[{"role":"system","content":"be brief"},{"role":"user","content":"hi"}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(f.Messages) != 2 || f.Messages[0].Role != llm.RoleSystem {
		t.Errorf("unexpected messages %+v", f.Messages)
	}
}

func TestLoadFileRejectsEmptyConversation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yml")
	if err := os.WriteFile(path, []byte("messages: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrNoMessages) {
		t.Errorf("expected ErrNoMessages, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yml")
	orig := &File{Model: "perplexity/sonar", Messages: Example()}
	if err := orig.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(loaded.Messages) != len(orig.Messages) {
		t.Fatalf("got %d messages, want %d", len(loaded.Messages), len(orig.Messages))
	}
	for i := range orig.Messages {
		if loaded.Messages[i].Content != orig.Messages[i].Content {
			t.Errorf("message %d content mismatch", i)
		}
	}
}

func TestLoadHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	data := `[
  {"query": "こんにちはとは何ですか？", "message": {"role": "assistant", "content": "挨拶です"}},
  {"query": "続けて", "content": "はい"}
]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	turns, err := LoadHistory(path)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Answer() != "挨拶です" || turns[1].Answer() != "はい" {
		t.Errorf("unexpected answers: %q, %q", turns[0].Answer(), turns[1].Answer())
	}

	msgs := BuildMessages(turns, "次は？")
	if len(msgs) != 5 || msgs[4].Content != "次は？" {
		t.Errorf("unexpected messages: %+v", msgs)
	}
}

func TestLoadHistoryMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.yml")
	if err := os.WriteFile(path, []byte("query: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHistory(path); err == nil {
		t.Error("expected parse error")
	}
}

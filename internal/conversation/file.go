package conversation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ziadkadry99/routerchat/internal/llm"
)

// File is a conversation stored on disk as YAML or JSON.
//
//	model: perplexity/sonar
//	messages:
//	  - role: user
//	    content: こんにちはとは何ですか？
//	  - role: user
//	    parts:
//	      - type: text
//	        text: この画像には何が写っていますか？
//	      - type: image_url
//	        image_url: https://example.com/photo.jpg
type File struct {
	Model    string        `yaml:"model,omitempty"`
	Messages []llm.Message `yaml:"messages"`
}

// LoadFile reads and validates a conversation file. JSON files are accepted
// since JSON is valid YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading conversation %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing conversation %s: %w", path, err)
	}
	if err := Validate(f.Messages); err != nil {
		return nil, fmt.Errorf("conversation %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the conversation to path as YAML.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshalling conversation: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing conversation to %s: %w", path, err)
	}
	return nil
}

// LoadHistory reads a list of earlier exchanges in the API's history format:
//
//	- query: こんにちはとは何ですか？
//	  message:
//	    role: assistant
//	    content: 挨拶です
func LoadHistory(path string) ([]Turn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading history %s: %w", path, err)
	}

	var turns []Turn
	if err := yaml.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("parsing history %s: %w", path, err)
	}
	return turns, nil
}

package data

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const MessagesFile = "messages.yaml"

// LoadingMessage is one line of the loading sequence.
type LoadingMessage struct {
	Text     string        `yaml:"text"`
	Duration time.Duration `yaml:"duration"`
	Final    bool          `yaml:"final"`
}

// Messages holds every text table shown by the app.
type Messages struct {
	Loading     []LoadingMessage `yaml:"loading"`
	Transition  []string         `yaml:"transition"`
	PlanetEntry []string         `yaml:"planet_entry"`
	Blackhole   []string         `yaml:"blackhole"`
}

// ParseMessages decodes a message table document.
func ParseMessages(b []byte) (Messages, error) {
	var m Messages
	if err := yaml.Unmarshal(b, &m); err != nil {
		return Messages{}, fmt.Errorf("data: unmarshal messages: %w", err)
	}
	for i, msg := range m.Loading {
		if msg.Duration < 0 {
			return Messages{}, fmt.Errorf("data: loading message %d: negative duration", i)
		}
	}
	return m, nil
}

// LoadMessages reads and decodes the message table.
func (s Source) LoadMessages() (Messages, error) {
	b, err := s.Load(MessagesFile)
	if err != nil {
		return Messages{}, err
	}
	return ParseMessages(b)
}

// Cycle returns the entry of lines shown after elapsed time when each entry
// is held for period. It returns "" for an empty list.
func Cycle(lines []string, elapsed, period time.Duration) string {
	if len(lines) == 0 {
		return ""
	}
	if period <= 0 || elapsed < 0 {
		return lines[0]
	}
	return lines[int(elapsed/period)%len(lines)]
}

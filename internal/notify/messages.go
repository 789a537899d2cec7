package notify

import (
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Messages collects the notifications of one request in the order they were raised.
type Messages struct {
	mu   sync.Mutex
	list []Message
}

func NewMessages() *Messages {
	return &Messages{}
}

func (m *Messages) Success(msg string) { m.add(LevelSuccess, msg) }
func (m *Messages) Info(msg string)    { m.add(LevelInfo, msg) }
func (m *Messages) Warning(msg string) { m.add(LevelWarning, msg) }
func (m *Messages) Error(msg string)   { m.add(LevelError, msg) }

// All returns a copy of the collected messages, never nil.
func (m *Messages) All() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Message, len(m.list))
	copy(result, m.list)
	return result
}

func (m *Messages) add(level Level, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.list = append(m.list, Message{Level: level, Text: text})
}

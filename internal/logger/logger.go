// Package logger provides a thread-safe in-memory status log. Messages
// are kept in a bounded ring, mirrored to the process log, and fanned
// out to subscribers backing the live status stream. Storage soft
// failures surface here as warnings rather than as hard errors.
package logger

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Message represents a single status log entry
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	Level     string    `json:"level"` // info, warning, error
}

// Logger manages in-memory log messages and subscriber fan-out.
type Logger struct {
	mu       sync.RWMutex
	messages []Message
	maxSize  int
	subs     map[chan Message]struct{}
}

// New creates a new logger keeping at most maxSize messages.
func New(maxSize int) *Logger {
	if maxSize <= 0 {
		maxSize = 200
	}
	return &Logger{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		subs:     make(map[chan Message]struct{}),
	}
}

// Log records a message at the given level.
func (l *Logger) Log(level, text string) {
	msg := Message{
		Timestamp: time.Now(),
		Text:      text,
		Level:     level,
	}

	log.Printf("[%s] %s", level, text)

	l.mu.Lock()
	l.messages = append(l.messages, msg)
	if len(l.messages) > l.maxSize {
		l.messages = l.messages[len(l.messages)-l.maxSize:]
	}
	for sub := range l.subs {
		select {
		case sub <- msg:
		default:
			// Slow subscriber, drop rather than block
		}
	}
	l.mu.Unlock()
}

// Infof logs a formatted info-level message.
func (l *Logger) Infof(format string, args ...any) {
	l.Log("info", fmt.Sprintf(format, args...))
}

// Warningf logs a formatted warning-level message.
func (l *Logger) Warningf(format string, args ...any) {
	l.Log("warning", fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error-level message.
func (l *Logger) Errorf(format string, args ...any) {
	l.Log("error", fmt.Sprintf(format, args...))
}

// Subscribe registers a channel receiving every message logged after the
// call. The returned cancel func must be called to release it.
func (l *Logger) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, 16)

	l.mu.Lock()
	l.subs[ch] = struct{}{}
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		if _, ok := l.subs[ch]; ok {
			delete(l.subs, ch)
			close(ch)
		}
		l.mu.Unlock()
	}
	return ch, cancel
}

// Recent returns the most recent n messages, oldest first.
func (l *Logger) Recent(n int) []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > len(l.messages) {
		n = len(l.messages)
	}
	result := make([]Message, n)
	copy(result, l.messages[len(l.messages)-n:])
	return result
}

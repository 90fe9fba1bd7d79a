package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/crewhealth/health"
)

// MessageLog is a health.Notifier that logs every message and keeps the most
// recent ones in memory.
type MessageLog struct {
	log      *slog.Logger
	limit    int
	messages []health.Message
	counts   map[health.Severity]int
}

// NewMessageLog creates a log retaining at most limit messages.
func NewMessageLog(logger *slog.Logger, limit int) *MessageLog {
	if limit < 1 {
		limit = 1
	}
	return &MessageLog{log: logger, limit: limit, counts: make(map[health.Severity]int)}
}

// Notify implements health.Notifier.
func (m *MessageLog) Notify(msg health.Message) {
	level := slog.LevelInfo
	switch msg.Severity {
	case health.SeverityWarning:
		level = slog.LevelWarn
	case health.SeverityAlert:
		level = slog.LevelError
	}
	m.log.Log(context.Background(), level, msg.Title,
		"id", msg.ID,
		"kerbal", msg.Kerbal,
		"severity", msg.Severity.String(),
		"text", msg.Text,
	)

	m.counts[msg.Severity]++
	m.messages = append(m.messages, msg)
	if len(m.messages) > m.limit {
		m.messages = m.messages[len(m.messages)-m.limit:]
	}
}

// Recent returns retained messages, oldest first.
func (m *MessageLog) Recent() []health.Message {
	out := make([]health.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Count returns how many messages of a severity were ever received.
func (m *MessageLog) Count(sev health.Severity) int {
	return m.counts[sev]
}

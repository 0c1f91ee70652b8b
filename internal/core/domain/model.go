package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

type InboundMessage struct {
	Sender string
	ChatID string
	Text   string
}

// NewInboundMessage builds a message with every field bounded to its capacity.
func NewInboundMessage(sender, chatID, text string) InboundMessage {
	return InboundMessage{
		Sender: Truncate(sender, MaxSenderLength),
		ChatID: chatID,
		Text:   Truncate(text, MaxTextLength),
	}
}

type BotCommand struct {
	Command   string
	Parameter string
}

type BotInfo struct {
	DisplayName string
}

type RelayID string

const (
	LED  RelayID = "led"
	Pump RelayID = "pump"
)

type Reading struct {
	Temperature float64
	Level       float64
	SampledAt   time.Time
}

// Truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	if len(s) <= limit {
		return s
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut]
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown makes untrusted text safe to embed in a legacy Markdown message.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than capacity", in: "led", max: 16, want: "led"},
		{name: "exact capacity", in: "abcd", max: 4, want: "abcd"},
		{name: "cut ascii", in: "abcdef", max: 4, want: "abcd"},
		{name: "does not split multibyte rune", in: "ab°C", max: 3, want: "ab"},
		{name: "keeps whole multibyte rune", in: "ab°C", max: 4, want: "ab°"},
		{name: "zero capacity", in: "abc", max: 0, want: ""},
		{name: "empty input", in: "", max: 8, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.max, 0))
		})
	}
}

func TestNewInboundMessage(t *testing.T) {
	long := "/pompa_toggle and a very long tail that keeps going well past the text capacity"

	msg := NewInboundMessage("@operator", "1234", long)

	assert.Equal(t, "@operator", msg.Sender)
	assert.Equal(t, "1234", msg.ChatID)
	assert.Len(t, msg.Text, MaxTextLength)
	assert.Equal(t, long[:MaxTextLength], msg.Text)
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "@operator", want: "@operator"},
		{in: "@foo_bar", want: "@foo\\_bar"},
		{in: "*bold* [link]", want: "\\*bold\\* \\[link]"},
		{in: "`code`", want: "\\`code\\`"},
		{in: "a+b=c", want: "a+b=c"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeMarkdown(tt.in))
		})
	}
}

package command

import (
	"aquabot/internal/core/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	type TestCase struct {
		description string
		text        string
		want        domain.BotCommand
		wantOK      bool
	}

	testCases := []TestCase{
		{
			description: "command with parameter",
			text:        "/led_on",
			want:        domain.BotCommand{Command: "led", Parameter: "on"},
			wantOK:      true,
		},
		{
			description: "command without parameter",
			text:        "/help",
			want:        domain.BotCommand{Command: "help", Parameter: ""},
			wantOK:      true,
		},
		{
			description: "pump toggle",
			text:        "/pompa_toggle",
			want:        domain.BotCommand{Command: "pompa", Parameter: "toggle"},
			wantOK:      true,
		},
		{
			description: "only first underscore delimits",
			text:        "/status_control_extra",
			want:        domain.BotCommand{Command: "status", Parameter: "control_extra"},
			wantOK:      true,
		},
		{
			description: "whitespace ends the command token",
			text:        "/help me",
			want:        domain.BotCommand{Command: "help", Parameter: "me"},
			wantOK:      true,
		},
		{
			description: "underscore before whitespace splits at the underscore",
			text:        "/pompa_on now",
			want:        domain.BotCommand{Command: "pompa", Parameter: "on now"},
			wantOK:      true,
		},
		{
			description: "surrounding whitespace is ignored",
			text:        "  /air_suhu \n",
			want:        domain.BotCommand{Command: "air", Parameter: "suhu"},
			wantOK:      true,
		},
		{
			description: "command is lower-cased",
			text:        "/LED_Toggle",
			want:        domain.BotCommand{Command: "led", Parameter: "Toggle"},
			wantOK:      true,
		},
		{
			description: "bot mention is dropped",
			text:        "/led_toggle@AquaBot",
			want:        domain.BotCommand{Command: "led", Parameter: "toggle"},
			wantOK:      true,
		},
		{
			description: "bot mention without parameter",
			text:        "/help@AquaBot",
			want:        domain.BotCommand{Command: "help", Parameter: ""},
			wantOK:      true,
		},
		{
			description: "empty input",
			text:        "",
			wantOK:      false,
		},
		{
			description: "missing prefix",
			text:        "led_on",
			wantOK:      false,
		},
		{
			description: "prefix only",
			text:        "/",
			wantOK:      false,
		},
		{
			description: "empty command token",
			text:        "/_on",
			wantOK:      false,
		},
		{
			description: "space right after prefix",
			text:        "/ led_on",
			wantOK:      false,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			got, ok := Parse(testCase.text)

			assert.Equal(t, testCase.wantOK, ok)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestParseTruncatesOversizedFields(t *testing.T) {
	text := "/" + strings.Repeat("c", 40) + "_" + strings.Repeat("p", 80)

	got, ok := Parse(text)

	assert.True(t, ok)
	assert.Equal(t, strings.Repeat("c", domain.MaxCommandLength), got.Command)
	assert.Equal(t, strings.Repeat("p", domain.MaxParameterLength), got.Parameter)
}

func TestParseCommand(t *testing.T) {
	assert.Equal(t, "air", ParseCommand("/air_tinggi"))
	assert.Equal(t, "", ParseCommand("hello"))
}

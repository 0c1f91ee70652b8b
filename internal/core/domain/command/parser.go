package command

import (
	"aquabot/internal/core/domain"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	commandPrefix    = '/'
	commandDelimiter = '_'
)

// Parse splits chat text of the form "/domain_action" into a command and a parameter.
// The command token ends at the first underscore or whitespace, everything after that
// delimiter is the parameter. A trailing "@botname" on the first word is dropped.
func Parse(text string) (domain.BotCommand, bool) {
	text = strings.TrimSpace(text)
	if text == "" || text[0] != commandPrefix {
		return domain.BotCommand{}, false
	}

	body := stripMention(text[1:])

	end := strings.IndexFunc(body, func(r rune) bool {
		return r == commandDelimiter || unicode.IsSpace(r)
	})

	name, rest := body, ""
	if end >= 0 {
		_, size := utf8.DecodeRuneInString(body[end:])
		name, rest = body[:end], body[end+size:]
	}

	if name == "" {
		return domain.BotCommand{}, false
	}

	return domain.BotCommand{
		Command:   domain.Truncate(strings.ToLower(name), domain.MaxCommandLength),
		Parameter: domain.Truncate(strings.TrimSpace(rest), domain.MaxParameterLength),
	}, true
}

// ParseCommand returns only the command token of text, or an empty string.
func ParseCommand(text string) string {
	cmd, ok := Parse(text)
	if !ok {
		return ""
	}

	return cmd.Command
}

func stripMention(body string) string {
	wordEnd := strings.IndexFunc(body, unicode.IsSpace)
	if wordEnd < 0 {
		wordEnd = len(body)
	}

	at := strings.IndexByte(body[:wordEnd], '@')
	if at < 0 {
		return body
	}

	return body[:at] + body[wordEnd:]
}

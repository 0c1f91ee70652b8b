package service

import (
	"aquabot/internal/core/domain"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockTextSender struct {
	sendCalled  bool
	callCount   int
	sendReplies []string
	sendError   error
}

func (m *mockTextSender) SendMessage(_ context.Context, text string) error {
	m.callCount++
	m.sendCalled = true
	m.sendReplies = append(m.sendReplies, text)
	return m.sendError
}

func TestOperatorAuthorizer_IsAuthorized(t *testing.T) {
	tests := []struct {
		name         string
		operatorID   string
		msg          domain.InboundMessage
		sendErr      error
		want         bool
		expectSend   bool
		expectedText string
	}{
		{
			name:       "operator chat is allowed",
			operatorID: "123",
			msg:        domain.InboundMessage{Sender: "@owner", ChatID: "123"},
			want:       true,
		},
		{
			name:         "other chat notifies operator",
			operatorID:   "123",
			msg:          domain.InboundMessage{Sender: "@stranger", ChatID: "333"},
			want:         false,
			expectSend:   true,
			expectedText: "Ignored a command from @stranger (chat 333): only this chat may control the aquarium.",
		},
		{
			name:         "sender name is escaped for markdown",
			operatorID:   "123",
			msg:          domain.InboundMessage{Sender: "@foo_bar", ChatID: "99"},
			want:         false,
			expectSend:   true,
			expectedText: "Ignored a command from @foo\\_bar (chat 99): only this chat may control the aquarium.",
		},
		{
			name:         "notification failure still rejects",
			operatorID:   "123",
			msg:          domain.InboundMessage{Sender: "@stranger", ChatID: "888"},
			sendErr:      errors.New("send failed"),
			want:         false,
			expectSend:   true,
			expectedText: "Ignored a command from @stranger (chat 888): only this chat may control the aquarium.",
		},
		{
			name:       "no operator configured rejects everyone silently",
			operatorID: "",
			msg:        domain.InboundMessage{Sender: "@owner", ChatID: ""},
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSender := &mockTextSender{sendError: tt.sendErr}
			a := NewAuthorizer(tt.operatorID, mockSender)

			got := a.IsAuthorized(t.Context(), tt.msg)

			assert.Equal(t, tt.want, got)
			if tt.expectSend {
				assert.True(t, mockSender.sendCalled, "SendMessage should have been called")
				assert.Equal(t, []string{tt.expectedText}, mockSender.sendReplies)
			} else {
				assert.False(t, mockSender.sendCalled, "SendMessage should not have been called")
			}
		})
	}
}

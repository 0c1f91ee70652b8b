package domain

import "errors"

var (
	ErrTransport    = errors.New("transport failure")
	ErrDecode       = errors.New("malformed api response")
	ErrDispatchMiss = errors.New("no handler for command")
	ErrNoOperator   = errors.New("operator chat id not configured")
	ErrUnauthorized = errors.New("chat is not authorized")
)

// Buffer capacities in bytes. Values longer than these are truncated.
const (
	MaxSenderLength    = 32
	MaxTextLength      = 64
	MaxCommandLength   = 16
	MaxParameterLength = 32
	MaxBotNameLength   = 32
	MaxOutboundLength  = 4096
)

package ai

import "errors"

var (
	// ErrAnswerModelNotConfigured indicates an answer was requested but
	// no chat/completion service is configured.
	ErrAnswerModelNotConfigured = errors.New("answer model not configured")
)

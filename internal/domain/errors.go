package domain

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingEmotion       = errors.New("emotion dimension missing")
	ErrEmptyDream           = errors.New("dream text is empty")
	ErrDreamTooLong         = errors.New("dream text is too long")
	ErrDreamNotFound        = errors.New("dream not found")
	ErrJournalDisabled      = errors.New("dream journal is disabled")
	ErrUpstreamLLM          = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON       = errors.New("LLM returned invalid JSON after retry")
)

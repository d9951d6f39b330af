package service

import "errors"

// Sentinel errors surfaced by services; controllers map these to HTTP codes.
var (
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrTestNotFound     = errors.New("test not found")
	ErrAttemptSubmitted = errors.New("attempt already submitted")
	ErrBadAIResponse    = errors.New("unusable AI response")
)

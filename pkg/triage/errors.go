package triage

import "errors"

// Failure kinds of the intake flow. Generation and delivery failures are
// recovered locally with placeholders; validation failures block a single
// turn; persistence failures are surfaced to the operator.
var (
	ErrEmptyAnswer     = errors.New("answer is empty or whitespace only")
	ErrSessionNotFound = errors.New("intake session not found or expired")
	ErrSessionFinished = errors.New("intake session already finished")
)

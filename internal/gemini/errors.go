package gemini

import "errors"

// ErrNoKeys indicates no API keys were configured.
var ErrNoKeys = errors.New("no Gemini API keys configured")

// ErrKeysExhausted indicates every key was rate limited.
var ErrKeysExhausted = errors.New("all API keys exhausted")

// ErrNoCandidates indicates a response without candidates.
var ErrNoCandidates = errors.New("response has no candidates")

// ErrNoContent indicates a candidate without content parts.
var ErrNoContent = errors.New("candidate has no content")

// ErrNoText indicates content parts without any text.
var ErrNoText = errors.New("content has no text")

// ErrNoInlineData indicates content parts without inline binary data.
var ErrNoInlineData = errors.New("content has no inline data")

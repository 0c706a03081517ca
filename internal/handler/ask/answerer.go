package ask

import (
	"context"
	"strings"
)

// DefaultEchoPrefix is prepended to the question by EchoAnswerer.
const DefaultEchoPrefix = "You asked: "

// Answerer produces the reply for a question.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// EchoAnswerer answers every question by repeating it behind a prefix.
type EchoAnswerer struct {
	Prefix string
}

// Answer implements Answerer.
func (a EchoAnswerer) Answer(_ context.Context, question string) (string, error) {
	prefix := a.Prefix
	if prefix == "" {
		prefix = DefaultEchoPrefix
	}
	return prefix + question, nil
}

// StaticAnswerer always returns the same reply.
type StaticAnswerer string

// Answer implements Answerer.
func (a StaticAnswerer) Answer(_ context.Context, _ string) (string, error) {
	return string(a), nil
}

// AnswerFunc adapts a function to Answerer.
type AnswerFunc func(ctx context.Context, question string) (string, error)

// Answer implements Answerer.
func (f AnswerFunc) Answer(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

func normalizeQuestion(q string) string {
	return strings.TrimSpace(q)
}

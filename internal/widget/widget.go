// Package widget bridges a text-input field to a question-answering endpoint
// and renders the conversation into a transcript container.
//
// The widget never touches UI state from a request goroutine: every
// completion is handed to the Scheduler, which must run it on the same loop
// that calls OnSubmit. Replies are rendered in completion order, so a reply
// to a later question can appear before the reply to an earlier one.
package widget

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/zhouzirui/z-tavern/askwidget/internal/model/chat"
)

const (
	// FallbackText is shown when the endpoint returns no usable answer.
	FallbackText = "Sorry, I couldn't process that."
	// ErrorText is shown when the request fails outright.
	ErrorText = "An error occurred."
)

var (
	ErrInputRequired     = errors.New("widget: input field is required")
	ErrContainerRequired = errors.New("widget: transcript container is required")
	ErrAskerRequired     = errors.New("widget: asker is required")
	ErrSchedulerRequired = errors.New("widget: scheduler is required")
)

// Input is the text field the user types into.
type Input interface {
	Value() string
	SetValue(string)
}

// Entry is a rendered transcript row: a bold label followed by the text.
type Entry struct {
	Label   string
	Message chat.Message
}

// Container receives rendered entries.
type Container interface {
	AppendEntry(Entry)
	ScrollToBottom()
}

// Asker sends a question and eventually yields the answer text.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Scheduler runs fn later on the UI loop.
type Scheduler func(fn func())

// Config carries the widget's collaborators.
type Config struct {
	Input     Input
	Container Container
	Asker     Asker
	Schedule  Scheduler
	Logger    *zap.Logger
	// OnReply, if set, runs on the UI loop after each bot message is rendered.
	OnReply func(chat.Message)
}

// Widget is the chat widget. OnSubmit, RenderMessage and Transcript must be
// called from the UI loop; Pending may be read from anywhere.
type Widget struct {
	input      Input
	container  Container
	asker      Asker
	schedule   Scheduler
	logger     *zap.Logger
	onReply    func(chat.Message)
	transcript *chat.Transcript

	ctx     context.Context
	cancel  context.CancelFunc
	pending atomic.Int64
}

// New validates cfg and builds a widget.
func New(cfg Config) (*Widget, error) {
	switch {
	case cfg.Input == nil:
		return nil, ErrInputRequired
	case cfg.Container == nil:
		return nil, ErrContainerRequired
	case cfg.Asker == nil:
		return nil, ErrAskerRequired
	case cfg.Schedule == nil:
		return nil, ErrSchedulerRequired
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Widget{
		input:      cfg.Input,
		container:  cfg.Container,
		asker:      cfg.Asker,
		schedule:   cfg.Schedule,
		logger:     logger,
		onReply:    cfg.OnReply,
		transcript: chat.NewTranscript(),
		ctx:        ctx,
		cancel:     cancel,
	}, nil
}

// Submit reads the input field and submits its value.
func (w *Widget) Submit() {
	w.OnSubmit(w.input.Value())
}

// OnSubmit handles one form submission. Whitespace-only input is dropped.
// Otherwise the user message is rendered, the question is dispatched, and
// the input is cleared without waiting for the answer.
func (w *Widget) OnSubmit(rawInput string) {
	text := strings.TrimSpace(rawInput)
	if text != "" {
		question := w.renderMessage(chat.NewUserMessage(text))
		w.dispatch(question)
	}
	w.input.SetValue("")
}

// RenderMessage appends a message from sender to the transcript and scrolls to it.
func (w *Widget) RenderMessage(sender chat.Sender, text string) {
	w.renderMessage(chat.NewMessage(sender, text, ""))
}

// Transcript exposes the messages rendered so far.
func (w *Widget) Transcript() *chat.Transcript {
	return w.transcript
}

// Pending reports how many submissions are still waiting for a reply.
func (w *Widget) Pending() int {
	return int(w.pending.Load())
}

// Close cancels the context handed to in-flight requests.
func (w *Widget) Close() {
	w.cancel()
}

func (w *Widget) renderMessage(msg chat.Message) chat.Message {
	w.transcript.Append(msg)
	w.container.AppendEntry(Entry{Label: msg.Sender.Label(), Message: msg})
	w.container.ScrollToBottom()
	return msg
}

func (w *Widget) dispatch(question chat.Message) {
	w.pending.Add(1)
	w.logger.Debug("ask dispatched", zap.String("message_id", question.ID))

	go func() {
		answer, err := w.asker.Ask(w.ctx, question.Text)
		w.schedule(func() {
			w.complete(question, answer, err)
		})
	}()
}

func (w *Widget) complete(question chat.Message, answer string, err error) {
	text := answer
	switch {
	case err != nil:
		w.logger.Error("ask failed", zap.String("message_id", question.ID), zap.Error(err))
		text = ErrorText
	case answer == "":
		text = FallbackText
	}

	reply := w.renderMessage(chat.NewBotReply(question.ID, text))
	w.pending.Add(-1)
	if w.onReply != nil {
		w.onReply(reply)
	}
}

// Package console is the line-mode front end: one submission per input line,
// transcript entries printed as they are rendered.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/zhouzirui/z-tavern/askwidget/internal/eventloop"
	"github.com/zhouzirui/z-tavern/askwidget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/askwidget/internal/widget"
)

// lineInput holds the line currently being submitted.
type lineInput struct {
	value string
}

func (l *lineInput) Value() string      { return l.value }
func (l *lineInput) SetValue(v string) { l.value = v }

// printer writes each entry as "Label text" to out.
type printer struct {
	out   io.Writer
	label lipgloss.Style
	err   error
}

func (p *printer) AppendEntry(e widget.Entry) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.out, "%s %s\n", p.label.Render(e.Label), e.Message.Text)
}

// ScrollToBottom is a no-op: a terminal stream is always at its newest line.
func (p *printer) ScrollToBottom() {}

// Session runs the widget against a line reader.
type Session struct {
	in     io.Reader
	out    io.Writer
	asker  widget.Asker
	logger *zap.Logger
	bold   bool
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithBoldLabels renders labels bold; leave it off when out is not a terminal.
func WithBoldLabels(bold bool) Option {
	return func(s *Session) { s.bold = bold }
}

// NewSession creates a session reading questions from in and printing to out.
func NewSession(in io.Reader, out io.Writer, asker widget.Asker, opts ...Option) *Session {
	s := &Session{in: in, out: out, asker: asker, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run submits every line from the reader and returns once the input is
// exhausted and every submission has its reply, or when ctx is done.
func (s *Session) Run(ctx context.Context) (*chat.Transcript, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := eventloop.New()
	input := &lineInput{}
	out := &printer{out: s.out, label: lipgloss.NewStyle().Bold(s.bold)}

	var (
		w   *widget.Widget
		eof bool
	)
	finishIfIdle := func() {
		if eof && w.Pending() == 0 {
			cancel()
		}
	}

	w, err := widget.New(widget.Config{
		Input:     input,
		Container: out,
		Asker:     s.asker,
		Schedule:  loop.Post,
		Logger:    s.logger,
		OnReply:   func(chat.Message) { finishIfIdle() },
	})
	if err != nil {
		return nil, fmt.Errorf("create widget: %w", err)
	}
	defer w.Close()

	readErr := make(chan error, 1)
	go func() {
		readErr <- readLines(s.in, func(line string) {
			loop.Post(func() {
				input.SetValue(line)
				w.Submit()
			})
		})
		loop.Post(func() {
			eof = true
			finishIfIdle()
		})
	}()

	runErr := loop.Run(ctx)
	if eof && w.Pending() == 0 {
		runErr = nil
	}

	if out.err != nil {
		return w.Transcript(), fmt.Errorf("write transcript: %w", out.err)
	}
	if runErr != nil {
		return w.Transcript(), runErr
	}
	select {
	case err := <-readErr:
		if err != nil {
			return w.Transcript(), fmt.Errorf("read input: %w", err)
		}
	default:
	}
	return w.Transcript(), nil
}

// readLines calls fn for every line of r, including a final line without a
// newline. Lines have no length limit.
func readLines(r io.Reader, fn func(line string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			fn(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

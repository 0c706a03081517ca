package console

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-tavern/askwidget/internal/widget"
)

type askFunc func(ctx context.Context, question string) (string, error)

func (f askFunc) Ask(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

func TestRunAnswersEveryLine(t *testing.T) {
	in := strings.NewReader("Hello\n\n   \nbye\n")
	var out bytes.Buffer
	asker := askFunc(func(_ context.Context, q string) (string, error) {
		switch q {
		case "Hello":
			return "Hi", nil
		default:
			return "", nil
		}
	})

	transcript, err := NewSession(in, &out, asker).Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 4, transcript.Len())
	assert.Contains(t, out.String(), "User: Hello\n")
	assert.Contains(t, out.String(), "Bot: Hi\n")
	assert.Contains(t, out.String(), "User: bye\n")
	assert.Contains(t, out.String(), "Bot: "+widget.FallbackText+"\n")
	assert.Equal(t, 4, strings.Count(out.String(), "\n"), "blank lines produce no entries")
}

func TestRunSubmitsLinesLongerThanScannerLimit(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	in := strings.NewReader(long + "\nHello")
	var out bytes.Buffer
	asker := askFunc(func(_ context.Context, q string) (string, error) {
		return "len " + strconv.Itoa(len(q)), nil
	})

	transcript, err := NewSession(in, &out, asker).Run(context.Background())

	require.NoError(t, err)
	require.Equal(t, 4, transcript.Len())
	msgs := transcript.Messages()
	assert.Equal(t, long, msgs[0].Text)
	assert.Contains(t, out.String(), "User: Hello\n")
	assert.Contains(t, out.String(), "Bot: len 71680\n")
	assert.Contains(t, out.String(), "Bot: len 5\n")
}

func TestReadLinesStripsLineEndings(t *testing.T) {
	var got []string

	err := readLines(strings.NewReader("a\r\nb\n\nc"), func(line string) { got = append(got, line) })

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "", "c"}, got)
}

func TestRunReportsFailuresInTranscript(t *testing.T) {
	var out bytes.Buffer
	asker := askFunc(func(context.Context, string) (string, error) {
		return "", errors.New("dial tcp: connection refused")
	})

	transcript, err := NewSession(strings.NewReader("Hello\n"), &out, asker).Run(context.Background())

	require.NoError(t, err)
	last, ok := transcript.Last()
	require.True(t, ok)
	assert.Equal(t, widget.ErrorText, last.Text)
}

func TestRunEmptyInput(t *testing.T) {
	var out bytes.Buffer

	transcript, err := NewSession(strings.NewReader(""), &out, askFunc(func(context.Context, string) (string, error) {
		return "", nil
	})).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, transcript.Len())
	assert.Empty(t, out.String())
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	var out bytes.Buffer
	asker := askFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewSession(strings.NewReader("Hello\n"), &out, asker).Run(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, out.String(), "User: Hello\n")
}

func TestNilAskerIsRejected(t *testing.T) {
	_, err := NewSession(strings.NewReader(""), &bytes.Buffer{}, nil).Run(context.Background())
	require.ErrorIs(t, err, widget.ErrAskerRequired)
}

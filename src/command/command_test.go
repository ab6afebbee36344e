package command

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsExit(t *testing.T) {
	for _, in := range []string{"exit", "EXIT", "  Exit\t", "exit\r"} {
		assert.True(t, IsExit(in), "%q", in)
	}
	for _, in := range []string{"", "quit", "exit now", "e xit"} {
		assert.False(t, IsExit(in), "%q", in)
	}
}

func TestListenExit(t *testing.T) {
	exits := 0
	Listen(context.Background(), strings.NewReader("hello\n  EXIT \nexit\n"), Handlers{
		OnExit:  func() { exits++ },
		OnError: func(err error) { t.Fatalf("unexpected error: %v", err) },
	})
	assert.Equal(t, 1, exits)
}

func TestListenEOFIsSilent(t *testing.T) {
	Listen(context.Background(), strings.NewReader("nothing to see\n"), Handlers{
		OnExit:  func() { t.Fatal("unexpected exit") },
		OnError: func(err error) { t.Fatalf("unexpected error: %v", err) },
	})
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestListenReportsReadError(t *testing.T) {
	boom := errors.New("read /dev/stdin: input/output error")
	var got []error
	Listen(context.Background(), failingReader{boom}, Handlers{
		OnError: func(err error) { got = append(got, err) },
	})
	require.Len(t, got, maxReadErrors)
	assert.ErrorIs(t, got[0], boom)
}

func TestListenAcceptsVeryLongLines(t *testing.T) {
	exits := 0
	in := strings.Repeat("x", 70*1024) + "\nexit\n"
	Listen(context.Background(), strings.NewReader(in), Handlers{
		OnExit:  func() { exits++ },
		OnError: func(err error) { t.Fatalf("unexpected error: %v", err) },
	})
	assert.Equal(t, 1, exits)
}

func TestListenExitWithoutTrailingNewline(t *testing.T) {
	exits := 0
	Listen(context.Background(), strings.NewReader("exit"), Handlers{
		OnExit: func() { exits++ },
	})
	assert.Equal(t, 1, exits)
}

// flakyReader fails once and then serves data.
type flakyReader struct {
	failed bool
	r      io.Reader
}

func (f *flakyReader) Read(p []byte) (int, error) {
	if !f.failed {
		f.failed = true
		return 0, errors.New("transient")
	}
	return f.r.Read(p)
}

func TestListenKeepsReadingAfterError(t *testing.T) {
	exits, errs := 0, 0
	Listen(context.Background(), &flakyReader{r: strings.NewReader("exit\n")}, Handlers{
		OnExit:  func() { exits++ },
		OnError: func(error) { errs++ },
	})
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, exits)
}

func TestListenStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Listen(ctx, pr, Handlers{OnExit: func() { t.Error("unexpected exit") }})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Listen did not return after cancel")
	}
}

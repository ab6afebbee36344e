package command

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Exit is the line that asks the program to close.
const Exit = "exit"

// maxReadErrors is how many consecutive read failures end the listener.
const maxReadErrors = 3

// Handlers are invoked from the listener goroutine.
type Handlers struct {
	OnExit  func()
	OnError func(error)
}

// IsExit reports whether line is the exit command.
func IsExit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), Exit)
}

type input struct {
	line string
	err  error
}

// Listen reads r line by line until EOF, repeated read errors, or ctx is
// done. Lines of any length are accepted; lines other than the exit command
// are ignored. A failed read is reported and reading continues. Listen
// returns after the first exit command.
func Listen(ctx context.Context, r io.Reader, h Handlers) {
	inputs := make(chan input)

	go func() {
		defer close(inputs)
		send := func(in input) bool {
			select {
			case inputs <- in:
				return true
			case <-ctx.Done():
				return false
			}
		}

		br := bufio.NewReader(r)
		failures := 0
		for {
			line, err := br.ReadString('\n')
			if line != "" && !send(input{line: line}) {
				return
			}
			switch {
			case err == nil:
				failures = 0
			case errors.Is(err, io.EOF):
				return
			default:
				if !send(input{err: err}) {
					return
				}
				if failures++; failures >= maxReadErrors {
					log.Debug("stdin listener giving up", "failures", failures)
					return
				}
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-inputs:
			if !ok {
				return
			}
			if in.err != nil {
				log.Debug("stdin read failed", "err", in.err)
				if h.OnError != nil {
					h.OnError(in.err)
				}
				continue
			}
			if !IsExit(in.line) {
				log.Debug("ignoring stdin line", "len", len(in.line))
				continue
			}
			if h.OnExit != nil {
				h.OnExit()
			}
			return
		}
	}
}

// Package repl runs an interactive address book session over a line-oriented
// reader and writer.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/handlers"
)

const (
	Welcome = "Welcome to the assistant bot!"
	Prompt  = "Enter a command: "
	Goodbye = "Good bye!"
)

// Run greets the user, then reads commands from in and writes replies to out
// until the user exits, in is exhausted or ctx is cancelled. Errors returned by
// handlers are logged and reported without ending the session.
func Run(ctx context.Context, in io.Reader, out io.Writer, mux *handlers.Mux, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)

	_, _ = fmt.Fprintln(out, Welcome)
	for {
		_, _ = fmt.Fprint(out, Prompt)

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			log.Info("session interrupted", zap.Error(context.Cause(ctx)))
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, Goodbye)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			_, _ = fmt.Fprintln(out)
			if err := <-readErr; err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			return nil
		}

		command, _ := handlers.ParseInput(line)
		switch {
		case command == "":
			continue
		case handlers.IsExit(command):
			_, _ = fmt.Fprintln(out, Goodbye)
			return nil
		}

		reply, err := mux.Dispatch(ctx, line)
		if err != nil {
			log.Error("command failed", zap.String("command", command), zap.Error(err))
			_, _ = fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintln(out, reply)
	}
}

// readLines scans in on its own goroutine so that a blocked read cannot hold
// up cancellation. The lines channel is closed at end of input, after the scan
// error (possibly nil) has been sent.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

// Package handlers implements the address book commands. Each XHandler
// constructor returns the command word and its Handler, ready for Mux.Handle.
package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/nightmarlin/addressbook"
)

// InvalidCommand is the reply to an unknown command.
const InvalidCommand = "Invalid command."

// A Handler runs one command with its arguments and returns the reply for the
// user. Domain errors are already rendered into the reply; a non-nil error
// means something outside the address book failed.
type Handler func(ctx context.Context, args []string) (string, error)

// Mux routes input lines to Handlers by their first word.
type Mux struct {
	handlers map[string]Handler
}

func NewMux() *Mux { return &Mux{handlers: make(map[string]Handler)} }

// Handle registers h for command. Commands are matched case-insensitively.
func (m *Mux) Handle(command string, h Handler) {
	m.handlers[strings.ToLower(command)] = h
}

// Dispatch parses line and runs the matching handler.
func (m *Mux) Dispatch(ctx context.Context, line string) (string, error) {
	command, args := ParseInput(line)
	h, ok := m.handlers[command]
	if !ok {
		return InvalidCommand, nil
	}
	return h(ctx, args)
}

// ParseInput splits line on whitespace and lower-cases the command word.
func ParseInput(line string) (command string, args []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// IsExit reports whether command ends a session.
func IsExit(command string) bool { return command == "close" || command == "exit" }

// Options configures the handlers registered by New.
type Options struct {
	// Window is the birthdays lookahead in days.
	Window int
	// Now returns the reference time for the birthdays command. Defaults to
	// time.Now.
	Now func() time.Time
	// Save persists the book on demand. The save command is only registered
	// when Save is set.
	Save func(context.Context) error
}

// New returns a Mux with every command registered against book.
func New(book *addressbook.Book, opts Options) *Mux {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	mux := NewMux()
	mux.Handle(HelloHandler())
	mux.Handle(AddContactHandler(book))
	mux.Handle(ChangeContactHandler(book))
	mux.Handle(ShowPhoneHandler(book))
	mux.Handle(AllContactsHandler(book))
	mux.Handle(RemovePhoneHandler(book))
	mux.Handle(DeleteContactHandler(book))
	mux.Handle(AddBirthdayHandler(book))
	mux.Handle(ShowBirthdayHandler(book))
	mux.Handle(BirthdaysHandler(book, opts.Window, opts.Now))
	if opts.Save != nil {
		mux.Handle(SaveHandler(opts.Save))
	}
	return mux
}

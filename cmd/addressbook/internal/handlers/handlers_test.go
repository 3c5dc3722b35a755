package handlers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightmarlin/addressbook"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/handlers"
)

var today = time.Date(2024, time.December, 30, 12, 0, 0, 0, time.UTC)

func newMux(book *addressbook.Book) *handlers.Mux {
	return handlers.New(book, handlers.Options{
		Window: addressbook.DefaultWindow,
		Now:    func() time.Time { return today },
	})
}

// run dispatches each line in turn and returns the final reply.
func run(t *testing.T, mux *handlers.Mux, lines ...string) string {
	t.Helper()

	var got string
	for _, line := range lines {
		var err error
		got, err = mux.Dispatch(context.Background(), line)
		require.NoError(t, err, line)
	}
	return got
}

func phones(t *testing.T, book *addressbook.Book, name string) []string {
	t.Helper()

	r, ok := book.Find(name)
	require.True(t, ok, "%s not found", name)
	var out []string
	for _, p := range r.Phones() {
		out = append(out, p.String())
	}
	return out
}

func TestAddContact(t *testing.T) {
	t.Parallel()

	book := addressbook.NewBook()
	mux := newMux(book)

	assert.Equal(t, "Contact added", run(t, mux, "add Alice 0123456789"))
	assert.Equal(t, "Contact updated", run(t, mux, "add Alice 0999999999"))

	r, ok := book.Find("Alice")
	require.True(t, ok)
	for _, p := range []string{"0123456789", "0999999999"} {
		got, err := r.FindPhone(p)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	assert.Equal(t, "Phone number already exists", run(t, mux, "add Alice 0123456789"))
	assert.Equal(t, "Example: add [name] [phone]", run(t, mux, "add Alice"))
	assert.Equal(t, "Example: add [name] [phone]", run(t, mux, "add Alice 0123456789 extra"))
}

func TestAddContact_invalidPhoneDoesNotCreateContact(t *testing.T) {
	t.Parallel()

	book := addressbook.NewBook()
	mux := newMux(book)

	assert.Equal(t, "Phone number must be 10 digits", run(t, mux, "add Bob 12345"))
	_, ok := book.Find("Bob")
	assert.False(t, ok)
	assert.Equal(t, 0, book.Len())
}

func TestChangeContact(t *testing.T) {
	t.Parallel()

	book := addressbook.NewBook()
	mux := newMux(book)
	run(t, mux, "add Alice 0123456789", "add Alice 0999999999")

	assert.Equal(t, "Phone changed :)", run(t, mux, "change Alice 0123456789 0111111111"))
	assert.Equal(t, []string{"0111111111", "0999999999"}, phones(t, book, "Alice"))

	assert.Equal(t, "Phone number not found", run(t, mux, "change Alice 0123456789 0222222222"))
	assert.Equal(t, "Phone number must be 10 digits", run(t, mux, "change Alice 0111111111 abc"))
	assert.Equal(t, []string{"0111111111", "0999999999"}, phones(t, book, "Alice"))

	assert.Equal(t, "Contact does not exist", run(t, mux, "change Bob 0123456789 0111111111"))
	assert.Equal(t, "Example: change [name] [old_number] [new_number]", run(t, mux, "change Alice 0111111111"))
}

func TestShowPhone(t *testing.T) {
	t.Parallel()

	mux := newMux(addressbook.NewBook())
	run(t, mux, "add Alice 0123456789", "add-birthday Alice 01.01.1990")

	assert.Equal(t, "Contact name: Alice, phones: 0123456789, birthday: 01.01.1990", run(t, mux, "phone Alice"))
	assert.Equal(t, "Contact does not exist", run(t, mux, "phone alice"))
	assert.Equal(t, "Example: phone [name]", run(t, mux, "phone"))
}

func TestAllContacts(t *testing.T) {
	t.Parallel()

	mux := newMux(addressbook.NewBook())
	assert.Equal(t, "No contacts.", run(t, mux, "all"))

	run(t, mux, "add Bob 0111111111", "add Alice 0123456789")
	assert.Equal(
		t,
		"Contact name: Bob, phones: 0111111111\nContact name: Alice, phones: 0123456789",
		run(t, mux, "all"),
	)
}

func TestRemovePhone(t *testing.T) {
	t.Parallel()

	book := addressbook.NewBook()
	mux := newMux(book)
	run(t, mux, "add Alice 0123456789", "add Alice 0999999999")

	assert.Equal(t, "Phone removed", run(t, mux, "remove-phone Alice 0123456789"))
	assert.Equal(t, []string{"0999999999"}, phones(t, book, "Alice"))
	assert.Equal(t, "Phone number not found", run(t, mux, "remove-phone Alice 0123456789"))
	assert.Equal(t, "Contact does not exist", run(t, mux, "remove-phone Bob 0123456789"))
	assert.Equal(t, "Example: remove-phone [name] [phone]", run(t, mux, "remove-phone Alice"))
}

func TestDeleteContact(t *testing.T) {
	t.Parallel()

	book := addressbook.NewBook()
	mux := newMux(book)
	run(t, mux, "add Alice 0123456789")

	assert.Equal(t, "Contact deleted", run(t, mux, "delete Alice"))
	assert.Equal(t, 0, book.Len())
	assert.Equal(t, "Contact does not exist", run(t, mux, "delete Alice"))
	assert.Equal(t, "Example: delete [name]", run(t, mux, "delete"))
}

func TestBirthdayCommands(t *testing.T) {
	t.Parallel()

	mux := newMux(addressbook.NewBook())
	run(t, mux, "add Alice 0123456789", "add Bob 0111111111", "add Carol 0222222222")

	assert.Equal(t, "No upcoming birthdays.", run(t, mux, "birthdays"))
	assert.Equal(t, "Birthday not added to this contact", run(t, mux, "show-birthday Alice"))

	assert.Equal(t, "Birthday added", run(t, mux, "add-birthday Alice 01.01.1990"))
	assert.Equal(t, "Birthday added", run(t, mux, "add-birthday Bob 06.01.1985"))
	assert.Equal(t, "Birthday added", run(t, mux, "add-birthday Carol 07.01.1985")) // 8 days out
	assert.Equal(t, "01.01.1990", run(t, mux, "show-birthday Alice"))

	assert.Equal(
		t,
		"Alice has a birthday on 2025.01.01\nBob has a birthday on 2025.01.06",
		run(t, mux, "birthdays"),
	)

	assert.Equal(t, "Invalid date format. Example: DD.MM.YYYY", run(t, mux, "add-birthday Alice 1990-01-01"))
	assert.Equal(t, "Invalid date format. Example: DD.MM.YYYY", run(t, mux, "add-birthday Alice 31.02.1990"))
	assert.Equal(t, "Contact does not exist", run(t, mux, "add-birthday Dan 01.01.1990"))
	assert.Equal(t, "Contact does not exist", run(t, mux, "show-birthday Dan"))
	assert.Equal(t, "Example: add-birthday [name] [date]", run(t, mux, "add-birthday Alice"))
	assert.Equal(t, "Example: show-birthday [name]", run(t, mux, "show-birthday"))
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	mux := newMux(addressbook.NewBook())

	assert.Equal(t, "How can I help you?", run(t, mux, "hello"))
	assert.Equal(t, "How can I help you?", run(t, mux, "  HeLLo  "))
	assert.Equal(t, handlers.InvalidCommand, run(t, mux, "goodbye"))
	assert.Equal(t, handlers.InvalidCommand, run(t, mux, ""))
	assert.Equal(t, handlers.InvalidCommand, run(t, mux, "save"), "save is not registered without Options.Save")
}

func TestSave(t *testing.T) {
	t.Parallel()

	var (
		calls   int
		saveErr error
		mux     = handlers.New(addressbook.NewBook(), handlers.Options{
			Save: func(context.Context) error {
				calls++
				return saveErr
			},
		})
	)

	assert.Equal(t, "Address book saved", run(t, mux, "save"))
	assert.Equal(t, 1, calls)

	saveErr = errors.New("disk full")
	_, err := mux.Dispatch(context.Background(), "save")
	assert.ErrorIs(t, err, saveErr)
}

func TestParseInput(t *testing.T) {
	t.Parallel()

	cmd, args := handlers.ParseInput("  ADD  Alice\t0123456789 ")
	assert.Equal(t, "add", cmd)
	assert.Equal(t, []string{"Alice", "0123456789"}, args)

	cmd, args = handlers.ParseInput("   ")
	assert.Empty(t, cmd)
	assert.Empty(t, args)

	assert.True(t, handlers.IsExit("close"))
	assert.True(t, handlers.IsExit("exit"))
	assert.False(t, handlers.IsExit("quit"))
}

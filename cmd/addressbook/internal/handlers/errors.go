package handlers

import (
	"errors"
	"fmt"

	"github.com/nightmarlin/addressbook"
)

var messages = []struct {
	kind error
	text string
}{
	{addressbook.ErrEmptyName, "Name is a required field"},
	{addressbook.ErrInvalidPhone, "Phone number must be 10 digits"},
	{addressbook.ErrDuplicatePhone, "Phone number already exists"},
	{addressbook.ErrPhoneNotFound, "Phone number not found"},
	{addressbook.ErrInvalidDateFormat, "Invalid date format. Example: DD.MM.YYYY"},
	{addressbook.ErrDuplicateName, "Contact already exists"},
	{addressbook.ErrContactNotFound, "Contact does not exist"},
}

// reply renders a domain error as the message shown to the user. Errors from
// outside the address book are passed through.
func reply(err error) (string, error) {
	for _, m := range messages {
		if errors.Is(err, m.kind) {
			return m.text, nil
		}
	}
	return "", err
}

func find(book *addressbook.Book, name string) (*addressbook.Record, error) {
	r, ok := book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, addressbook.ErrContactNotFound)
	}
	return r, nil
}

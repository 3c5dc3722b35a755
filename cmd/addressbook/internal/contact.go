package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nightmarlin/addressbook"
)

// ErrCorrupt is returned when stored contacts fail validation on load.
var ErrCorrupt = errors.New("stored address book is corrupt")

// A Store loads and saves a whole Book.
type Store interface {
	Load(ctx context.Context) (*addressbook.Book, error)
	Save(ctx context.Context, book *addressbook.Book) error
	Close() error
}

// Contact is the storage form of an addressbook.Record. Birthday is formatted
// as DD.MM.YYYY and empty when unset.
type Contact struct {
	Name     string   `yaml:"name"`
	Phones   []string `yaml:"phones,omitempty"`
	Birthday string   `yaml:"birthday,omitempty"`
}

// BirthdayDate returns the birthday as a date for storage in a date column, or
// nil when unset.
func (c Contact) BirthdayDate() (*time.Time, error) {
	if c.Birthday == "" {
		return nil, nil
	}
	b, err := addressbook.ParseBirthday(c.Birthday)
	if err != nil {
		return nil, err
	}
	t := b.Time()
	return &t, nil
}

// FormatBirthday renders a stored date in the form Contact.Birthday expects.
func FormatBirthday(t time.Time) string { return t.Format("02.01.2006") }

// Snapshot flattens book into Contacts, in insertion order.
func Snapshot(book *addressbook.Book) []Contact {
	contacts := make([]Contact, 0, book.Len())
	for r := range book.All() {
		c := Contact{Name: r.Name().String()}
		for _, p := range r.Phones() {
			c.Phones = append(c.Phones, p.String())
		}
		if b, ok := r.Birthday(); ok {
			c.Birthday = b.String()
		}
		contacts = append(contacts, c)
	}
	return contacts
}

// Restore rebuilds a Book from contacts, running every field through the same
// validation as user input. Repeated phones on one contact are collapsed. Any
// other failure wraps ErrCorrupt.
func Restore(contacts []Contact) (*addressbook.Book, error) {
	book := addressbook.NewBook()
	for i, c := range contacts {
		r, err := restoreRecord(c)
		if err == nil {
			err = book.Add(r)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: contact %d (%q): %w", ErrCorrupt, i, c.Name, err)
		}
	}
	return book, nil
}

func restoreRecord(c Contact) (*addressbook.Record, error) {
	r, err := addressbook.NewRecord(c.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range c.Phones {
		// EditPhone can leave equal numbers on a record; keep the first.
		if err := r.AddPhone(p); err != nil && !errors.Is(err, addressbook.ErrDuplicatePhone) {
			return nil, err
		}
	}
	if c.Birthday != "" {
		if err := r.SetBirthday(c.Birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}

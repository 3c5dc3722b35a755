package addressbook

import (
	"fmt"
	"slices"
	"strings"
)

// A Record is one contact: an immutable name, an ordered list of unique phone
// numbers and an optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a Record with no phones and no birthday.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the record's phones in the order they were added.
func (r *Record) Phones() []Phone { return slices.Clone(r.phones) }

// Birthday returns the record's birthday and whether one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates phone and appends it. It fails with ErrDuplicatePhone if
// the record already holds the same number.
func (r *Record) AddPhone(phone string) error {
	p, err := ParsePhone(phone)
	if err != nil {
		return err
	}
	if r.indexOf(phone) >= 0 {
		return fmt.Errorf("%q: %w", phone, ErrDuplicatePhone)
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes phone, or fails with ErrPhoneNotFound.
func (r *Record) RemovePhone(phone string) error {
	i := r.indexOf(phone)
	if i < 0 {
		return fmt.Errorf("%q: %w", phone, ErrPhoneNotFound)
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces oldPhone with newPhone in place, keeping its position. It
// fails with ErrPhoneNotFound before newPhone is validated.
//
// newPhone is not checked against the record's other phones, so an edit can leave
// two equal numbers on one record. Callers wanting strict uniqueness should
// use RemovePhone and AddPhone instead.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	i := r.indexOf(oldPhone)
	if i < 0 {
		return fmt.Errorf("%q: %w", oldPhone, ErrPhoneNotFound)
	}
	p, err := ParsePhone(newPhone)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns phone if the record holds it, or fails with
// ErrPhoneNotFound.
func (r *Record) FindPhone(phone string) (string, error) {
	i := r.indexOf(phone)
	if i < 0 {
		return "", fmt.Errorf("%q: %w", phone, ErrPhoneNotFound)
	}
	return r.phones[i].String(), nil
}

// SetBirthday parses s as DD.MM.YYYY and overwrites any existing birthday.
func (r *Record) SetBirthday(s string) error {
	b, err := ParseBirthday(s)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name.String())
	sb.WriteString(", phones: ")
	for i, p := range r.phones {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(p.String())
	}
	if b, ok := r.Birthday(); ok {
		sb.WriteString(", birthday: ")
		sb.WriteString(b.String())
	}
	return sb.String()
}

func (r *Record) indexOf(phone string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool { return p.value == phone })
}

package addressbook

import (
	"fmt"
	"time"
)

const (
	phoneLen       = 10
	birthdayLayout = "02.01.2006"
)

// Name identifies a contact. The zero Name is never returned by NewName.
type Name struct{ value string }

// NewName returns s as a Name, or ErrEmptyName if s is empty.
func NewName(s string) (Name, error) {
	if s == "" {
		return Name{}, ErrEmptyName
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }

// Phone is a phone number of exactly 10 ASCII digits.
type Phone struct{ value string }

// ParsePhone returns s as a Phone, or an error wrapping ErrInvalidPhone if s is
// anything other than 10 decimal digits.
func ParsePhone(s string) (Phone, error) {
	if !isDigits(s, phoneLen) {
		return Phone{}, fmt.Errorf("%q: %w", s, ErrInvalidPhone)
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }

// Birthday is a calendar date without a time of day.
type Birthday struct{ date time.Time }

// ParseBirthday parses s in the form DD.MM.YYYY. It returns an error wrapping
// ErrInvalidDateFormat if s has any other shape or names a date that does not
// exist, such as 31.02.2024 or 29.02.2023.
func ParseBirthday(s string) (Birthday, error) {
	// time.Parse alone would accept a signed year or year 0, so check the
	// shape first.
	if len(s) != len(birthdayLayout) ||
		s[2] != '.' || s[5] != '.' ||
		!isDigits(s[0:2], 2) || !isDigits(s[3:5], 2) || !isDigits(s[6:], 4) ||
		s[6:] == "0000" {
		return Birthday{}, fmt.Errorf("%q: %w", s, ErrInvalidDateFormat)
	}

	t, err := time.Parse(birthdayLayout, s)
	if err != nil {
		return Birthday{}, fmt.Errorf("%q: %w", s, ErrInvalidDateFormat)
	}
	return Birthday{date: t}, nil
}

// Time returns the birthday as midnight UTC.
func (b Birthday) Time() time.Time { return b.date }

func (b Birthday) String() string { return b.date.Format(birthdayLayout) }

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

package addressbook

import "errors"

// Errors returned by field validation and by Record and Book operations. They
// are usually wrapped with context, so compare them with errors.Is.
var (
	ErrEmptyName         = errors.New("name is required")
	ErrInvalidPhone      = errors.New("phone number must be 10 digits")
	ErrDuplicatePhone    = errors.New("phone number already exists")
	ErrPhoneNotFound     = errors.New("phone number not found")
	ErrInvalidDateFormat = errors.New("invalid date format, want DD.MM.YYYY")
	ErrDuplicateName     = errors.New("contact already exists")
	ErrContactNotFound   = errors.New("contact not found")
)

// Package addressbook is a personal contact directory: validated contact
// records keyed by name, and the lookahead of upcoming birthdays.
//
// Values are built through validating constructors ([NewName], [ParsePhone],
// [ParseBirthday], [NewRecord]) and collected in a [Book], which iterates its
// records in insertion order. Nothing in this package performs I/O, and none of
// its types are safe for concurrent use.
package addressbook

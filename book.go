package addressbook

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/nightmarlin/addressbook/internal/orderedmap"
)

// DefaultWindow is the number of days UpcomingBirthdays looks ahead by default.
const DefaultWindow = 7

// A Book maps contact names to their Records and iterates them in the order
// they were added.
type Book struct {
	records *orderedmap.Map[string, *Record]
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{records: orderedmap.New[string, *Record](0)}
}

// Add inserts r, or fails with ErrDuplicateName if a record with the same name
// is already present.
func (b *Book) Add(r *Record) error {
	name := r.Name().String()
	if b.records.Has(name) {
		return fmt.Errorf("adding %q: %w", name, ErrDuplicateName)
	}
	b.records.Set(name, r)
	return nil
}

// Find looks up a record by its exact name.
func (b *Book) Find(name string) (*Record, bool) {
	return b.records.Get(name)
}

// Delete removes the record called name, or fails with ErrContactNotFound.
func (b *Book) Delete(name string) error {
	if !b.records.Delete(name) {
		return fmt.Errorf("deleting %q: %w", name, ErrContactNotFound)
	}
	return nil
}

// Len reports the number of records.
func (b *Book) Len() int { return b.records.Len() }

// All iterates the records in insertion order.
func (b *Book) All() iter.Seq[*Record] { return b.records.Values() }

// String renders one record per line.
func (b *Book) String() string {
	lines := make([]string, 0, b.Len())
	for r := range b.All() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}

// Upcoming is a contact whose next birthday falls inside the lookahead window.
type Upcoming struct {
	Name string
	Date time.Time
}

// FormattedDate renders Date as YYYY.MM.DD.
func (u Upcoming) FormattedDate() string { return u.Date.Format("2006.01.02") }

// UpcomingBirthdays lists the records whose next birthday is between 0 and
// window days after reference, both ends inclusive. Records are listed in
// insertion order, not by date.
func (b *Book) UpcomingBirthdays(reference time.Time, window int) []Upcoming {
	var upcoming []Upcoming
	for r := range b.All() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		if d := DaysUntil(bd, reference); d >= 0 && d <= window {
			upcoming = append(upcoming, Upcoming{
				Name: r.Name().String(),
				Date: NextOccurrence(bd, reference),
			})
		}
	}
	return upcoming
}

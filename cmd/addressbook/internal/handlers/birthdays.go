package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nightmarlin/addressbook"
)

func AddBirthdayHandler(book *addressbook.Book) (string, Handler) {
	return "add-birthday", func(_ context.Context, args []string) (string, error) {
		if len(args) != 2 {
			return "Example: add-birthday [name] [date]", nil
		}

		r, err := find(book, args[0])
		if err != nil {
			return reply(err)
		}
		if err := r.SetBirthday(args[1]); err != nil {
			return reply(err)
		}
		return "Birthday added", nil
	}
}

func ShowBirthdayHandler(book *addressbook.Book) (string, Handler) {
	return "show-birthday", func(_ context.Context, args []string) (string, error) {
		if len(args) != 1 {
			return "Example: show-birthday [name]", nil
		}

		r, err := find(book, args[0])
		if err != nil {
			return reply(err)
		}
		b, ok := r.Birthday()
		if !ok {
			return "Birthday not added to this contact", nil
		}
		return b.String(), nil
	}
}

// BirthdaysHandler lists contacts whose birthday falls within window days of
// now().
func BirthdaysHandler(book *addressbook.Book, window int, now func() time.Time) (string, Handler) {
	return "birthdays", func(context.Context, []string) (string, error) {
		upcoming := book.UpcomingBirthdays(now(), window)
		if len(upcoming) == 0 {
			return "No upcoming birthdays.", nil
		}

		lines := make([]string, len(upcoming))
		for i, u := range upcoming {
			lines[i] = fmt.Sprintf("%s has a birthday on %s", u.Name, u.FormattedDate())
		}
		return strings.Join(lines, "\n"), nil
	}
}

package handlers

import (
	"context"

	"github.com/nightmarlin/addressbook"
)

func HelloHandler() (string, Handler) {
	return "hello", func(context.Context, []string) (string, error) {
		return "How can I help you?", nil
	}
}

// AddContactHandler adds a phone to a contact, creating the contact first if
// needed. A new contact is only stored once its phone has been accepted.
func AddContactHandler(book *addressbook.Book) (string, Handler) {
	return "add", func(_ context.Context, args []string) (string, error) {
		if len(args) != 2 {
			return "Example: add [name] [phone]", nil
		}
		name, phone := args[0], args[1]

		if r, ok := book.Find(name); ok {
			if err := r.AddPhone(phone); err != nil {
				return reply(err)
			}
			return "Contact updated", nil
		}

		r, err := addressbook.NewRecord(name)
		if err != nil {
			return reply(err)
		}
		if err := r.AddPhone(phone); err != nil {
			return reply(err)
		}
		if err := book.Add(r); err != nil {
			return reply(err)
		}
		return "Contact added", nil
	}
}

func ChangeContactHandler(book *addressbook.Book) (string, Handler) {
	return "change", func(_ context.Context, args []string) (string, error) {
		if len(args) != 3 {
			return "Example: change [name] [old_number] [new_number]", nil
		}

		r, err := find(book, args[0])
		if err != nil {
			return reply(err)
		}
		if err := r.EditPhone(args[1], args[2]); err != nil {
			return reply(err)
		}
		return "Phone changed :)", nil
	}
}

func ShowPhoneHandler(book *addressbook.Book) (string, Handler) {
	return "phone", func(_ context.Context, args []string) (string, error) {
		if len(args) != 1 {
			return "Example: phone [name]", nil
		}

		r, err := find(book, args[0])
		if err != nil {
			return reply(err)
		}
		return r.String(), nil
	}
}

func AllContactsHandler(book *addressbook.Book) (string, Handler) {
	return "all", func(context.Context, []string) (string, error) {
		if book.Len() == 0 {
			return "No contacts.", nil
		}
		return book.String(), nil
	}
}

func RemovePhoneHandler(book *addressbook.Book) (string, Handler) {
	return "remove-phone", func(_ context.Context, args []string) (string, error) {
		if len(args) != 2 {
			return "Example: remove-phone [name] [phone]", nil
		}

		r, err := find(book, args[0])
		if err != nil {
			return reply(err)
		}
		if err := r.RemovePhone(args[1]); err != nil {
			return reply(err)
		}
		return "Phone removed", nil
	}
}

func DeleteContactHandler(book *addressbook.Book) (string, Handler) {
	return "delete", func(_ context.Context, args []string) (string, error) {
		if len(args) != 1 {
			return "Example: delete [name]", nil
		}
		if err := book.Delete(args[0]); err != nil {
			return reply(err)
		}
		return "Contact deleted", nil
	}
}

// SaveHandler persists the book on demand.
func SaveHandler(save func(context.Context) error) (string, Handler) {
	return "save", func(ctx context.Context, _ []string) (string, error) {
		if err := save(ctx); err != nil {
			return "", err
		}
		return "Address book saved", nil
	}
}

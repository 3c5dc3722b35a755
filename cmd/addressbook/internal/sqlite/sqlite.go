// Package sqlite persists a Book in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/nightmarlin/addressbook"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal"
)

const dateLayout = "2006-01-02"

var schema = []string{
	`create table if not exists contacts (
		name     text primary key not null,
		position integer not null,
		birthday text
	)`,
	`create table if not exists phones (
		contact  text not null,
		position integer not null,
		phone    text not null,
		primary key (contact, position)
	)`,
}

// Store keeps contacts and their phones in two tables.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens (creating if needed) the database file at path and ensures the
// schema exists.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	// a single connection serializes writers and keeps :memory: databases alive
	db.SetMaxOpenConns(1)

	s, err := New(ctx, db, log.With(zap.String("path", path)))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an open database and creates the tables if they do not exist.
func New(ctx context.Context, db *sql.DB, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &Store{db: db, log: log}, nil
}

// Load reads every contact in insertion order. Rows that fail validation are
// reported as internal.ErrCorrupt.
func (s *Store) Load(ctx context.Context) (*addressbook.Book, error) {
	rows, err := s.db.QueryContext(ctx, `select name, birthday from contacts order by position`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		contacts []internal.Contact
		index    = make(map[string]int)
	)
	for rows.Next() {
		var (
			c        internal.Contact
			birthday sql.NullString
		)
		if err := rows.Scan(&c.Name, &birthday); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		if birthday.Valid {
			t, err := time.Parse(dateLayout, birthday.String)
			if err != nil {
				return nil, fmt.Errorf("%w: contact %q: birthday %q: %w", internal.ErrCorrupt, c.Name, birthday.String, err)
			}
			c.Birthday = internal.FormatBirthday(t)
		}
		index[c.Name] = len(contacts)
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}

	if err := s.loadPhones(ctx, contacts, index); err != nil {
		return nil, err
	}

	book, err := internal.Restore(contacts)
	if err != nil {
		return nil, err
	}
	s.log.Debug("loaded address book", zap.Int("contacts", book.Len()))
	return book, nil
}

func (s *Store) loadPhones(ctx context.Context, contacts []internal.Contact, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `select contact, phone from phones order by contact, position`)
	if err != nil {
		return fmt.Errorf("querying phones: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name, phone string
		if err := rows.Scan(&name, &phone); err != nil {
			return fmt.Errorf("scanning phone: %w", err)
		}
		i, ok := index[name]
		if !ok {
			return fmt.Errorf("%w: phone %q belongs to unknown contact %q", internal.ErrCorrupt, phone, name)
		}
		contacts[i].Phones = append(contacts[i].Phones, phone)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading phones: %w", err)
	}
	return nil
}

// Save replaces the stored contacts with book in a single transaction.
func (s *Store) Save(ctx context.Context, book *addressbook.Book) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{`delete from phones`, `delete from contacts`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing contacts: %w", err)
		}
	}

	for pos, c := range internal.Snapshot(book) {
		var birthday sql.NullString
		if t, err := c.BirthdayDate(); err != nil {
			return fmt.Errorf("contact %q: %w", c.Name, err)
		} else if t != nil {
			birthday = sql.NullString{String: t.Format(dateLayout), Valid: true}
		}

		if _, err := tx.ExecContext(
			ctx,
			`insert into contacts (name, position, birthday) values (?, ?, ?)`,
			c.Name, pos, birthday,
		); err != nil {
			return fmt.Errorf("inserting contact %q: %w", c.Name, err)
		}
		for i, phone := range c.Phones {
			if _, err := tx.ExecContext(
				ctx,
				`insert into phones (contact, position, phone) values (?, ?, ?)`,
				c.Name, i, phone,
			); err != nil {
				return fmt.Errorf("inserting phone %q for %q: %w", phone, c.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	s.log.Debug("saved address book", zap.Int("contacts", book.Len()))
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

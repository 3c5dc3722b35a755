// Package postgres persists a Book in a PostgreSQL database.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/nightmarlin/addressbook"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal"
)

var schema = []string{
	`create table if not exists contacts (name text primary key not null, position integer not null, birthday date)`,
	`create table if not exists phones (contact text not null references contacts (name) on delete cascade, position integer not null, phone text not null, primary key (contact, position))`,
}

// DB stores contacts and their phones over a single pgx connection.
type DB struct {
	conn *pgx.Conn
	log  *zap.Logger
}

// Open connects to the database at url and prepares the schema.
func Open(ctx context.Context, url string, log *zap.Logger) (*DB, error) {
	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}

	db, err := New(ctx, conn, log)
	if err != nil {
		_ = conn.Close(context.Background())
		return nil, fmt.Errorf("initializing db: %w", err)
	}
	return db, nil
}

// New wraps conn and creates the tables if they do not exist.
func New(ctx context.Context, conn *pgx.Conn, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	for _, stmt := range schema {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return nil, err
		}
	}
	return &DB{conn: conn, log: log}, nil
}

type contactRow struct {
	Name     string
	Birthday *time.Time
}

type phoneRow struct {
	Contact string
	Phone   string
}

// Load reads every contact in insertion order.
func (db *DB) Load(ctx context.Context) (*addressbook.Book, error) {
	rows, _ := db.conn.Query(ctx, `select "name", "birthday" from contacts order by "position"`)
	crows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[contactRow])
	if err != nil {
		return nil, fmt.Errorf("loading contacts: %w", err)
	}

	rows, _ = db.conn.Query(ctx, `select "contact", "phone" from phones order by "contact", "position"`)
	prows, err := pgx.CollectRows(rows, pgx.RowToStructByPos[phoneRow])
	if err != nil {
		return nil, fmt.Errorf("loading phones: %w", err)
	}

	contacts := make([]internal.Contact, len(crows))
	index := make(map[string]int, len(crows))
	for i, r := range crows {
		contacts[i].Name = r.Name
		if r.Birthday != nil {
			contacts[i].Birthday = internal.FormatBirthday(*r.Birthday)
		}
		index[r.Name] = i
	}
	for _, p := range prows {
		// the foreign key guarantees the contact exists
		i := index[p.Contact]
		contacts[i].Phones = append(contacts[i].Phones, p.Phone)
	}

	book, err := internal.Restore(contacts)
	if err != nil {
		return nil, err
	}
	db.log.Info("loaded address book from db", zap.Int("contacts", book.Len()))
	return book, nil
}

// Save replaces every stored contact with the contents of book in one
// transaction.
func (db *DB) Save(ctx context.Context, book *addressbook.Book) error {
	batch := &pgx.Batch{}
	batch.Queue(`delete from contacts`)

	for pos, c := range internal.Snapshot(book) {
		birthday, err := c.BirthdayDate()
		if err != nil {
			return fmt.Errorf("contact %q: %w", c.Name, err)
		}
		batch.Queue(
			`insert into contacts ("name", "position", "birthday") values ($1::text, $2, $3::date)`,
			c.Name, pos, birthday,
		)
		for i, phone := range c.Phones {
			batch.Queue(
				`insert into phones ("contact", "position", "phone") values ($1::text, $2, $3::text)`,
				c.Name, i, phone,
			)
		}
	}

	if err := pgx.BeginFunc(ctx, db.conn, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	}); err != nil {
		return fmt.Errorf("saving address book: %w", err)
	}

	db.log.Info("saved address book to db", zap.Int("contacts", book.Len()))
	return nil
}

// Close closes the connection.
func (db *DB) Close() error { return db.conn.Close(context.Background()) }

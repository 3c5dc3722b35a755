// Package filestore persists a Book as a YAML document on the local
// filesystem.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nightmarlin/addressbook"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal"
)

// DefaultPath is used when no path is configured.
const DefaultPath = "addressbook.yaml"

const formatVersion = 1

type document struct {
	Version  int                `yaml:"version"`
	Contacts []internal.Contact `yaml:"contacts"`
}

// Encode writes book to w as YAML.
func Encode(w io.Writer, book *addressbook.Book) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Version: formatVersion, Contacts: internal.Snapshot(book)}); err != nil {
		return fmt.Errorf("encoding address book: %w", err)
	}
	return enc.Close()
}

// Decode reads a Book written by Encode. Empty input decodes to an empty Book.
func Decode(r io.Reader) (*addressbook.Book, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decoding yaml: %w", internal.ErrCorrupt, err)
	}
	if doc.Version > formatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", internal.ErrCorrupt, doc.Version)
	}
	return internal.Restore(doc.Contacts)
}

// Store reads and writes a single YAML file.
type Store struct {
	path string
	log  *zap.Logger
}

// New returns a Store backed by the file at path. The file is not touched
// until Load or Save.
func New(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log.With(zap.String("path", path))}
}

// Load reads the Book from disk. A missing file yields an empty Book; every
// other failure is returned.
func (s *Store) Load(context.Context) (*addressbook.Book, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("address book file not found, starting empty")
		return addressbook.NewBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	book, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.path, err)
	}
	s.log.Debug("loaded address book", zap.Int("contacts", book.Len()))
	return book, nil
}

// Save writes book to a temporary file beside the target and renames it into
// place, so an interrupted save never truncates the previous contents.
func (s *Store) Save(_ context.Context, book *addressbook.Book) error {
	var buf bytes.Buffer
	if err := Encode(&buf, book); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	s.log.Debug("saved address book", zap.Int("contacts", book.Len()))
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *Store) Close() error { return nil }

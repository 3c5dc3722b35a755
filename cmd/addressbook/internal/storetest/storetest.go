// Package storetest holds fixtures and a conformance suite shared by the
// internal.Store implementations.
package storetest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nightmarlin/addressbook"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal"
)

// Book returns a populated Book exercising every field: several phones, a
// missing birthday, a missing phone list and a leap-day birthday.
func Book(t testing.TB) *addressbook.Book {
	t.Helper()

	alice, err := addressbook.NewRecord("Alice")
	require.NoError(t, err)
	require.NoError(t, alice.AddPhone("0123456789"))
	require.NoError(t, alice.AddPhone("0999999999"))
	require.NoError(t, alice.SetBirthday("01.01.1990"))

	bob, err := addressbook.NewRecord("Bob")
	require.NoError(t, err)
	require.NoError(t, bob.AddPhone("0111111111"))

	carol, err := addressbook.NewRecord("Carol")
	require.NoError(t, err)
	require.NoError(t, carol.SetBirthday("29.02.2000"))

	book := addressbook.NewBook()
	for _, r := range []*addressbook.Record{alice, bob, carol} {
		require.NoError(t, book.Add(r))
	}
	return book
}

// AssertEqual fails t unless both books hold the same names in the same order,
// with the same phones and birthdays.
func AssertEqual(t testing.TB, want, got *addressbook.Book) {
	t.Helper()

	if diff := cmp.Diff(internal.Snapshot(want), internal.Snapshot(got)); diff != "" {
		t.Errorf("book mismatch (-want +got):\n%s", diff)
	}
}

// Run exercises the Store contract against stores produced by open. Each call
// to open must return a store over fresh, empty storage.
func Run(t *testing.T, open func(t *testing.T) internal.Store) {
	ctx := context.Background()

	t.Run(
		"fresh store loads empty book",
		func(t *testing.T) {
			s := open(t)

			got, err := s.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, 0, got.Len())
		},
	)

	t.Run(
		"save then load round-trips",
		func(t *testing.T) {
			s := open(t)
			want := Book(t)

			require.NoError(t, s.Save(ctx, want))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			AssertEqual(t, want, got)
		},
	)

	t.Run(
		"save replaces previous contents",
		func(t *testing.T) {
			s := open(t)
			require.NoError(t, s.Save(ctx, Book(t)))

			want := Book(t)
			require.NoError(t, want.Delete("Alice"))
			bob, _ := want.Find("Bob")
			require.NoError(t, bob.EditPhone("0111111111", "0222222222"))

			require.NoError(t, s.Save(ctx, want))
			got, err := s.Load(ctx)
			require.NoError(t, err)
			AssertEqual(t, want, got)
		},
	)

	t.Run(
		"save empty book",
		func(t *testing.T) {
			s := open(t)
			require.NoError(t, s.Save(ctx, Book(t)))
			require.NoError(t, s.Save(ctx, addressbook.NewBook()))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, 0, got.Len())
		},
	)
}

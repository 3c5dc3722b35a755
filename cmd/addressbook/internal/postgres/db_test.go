//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap/zaptest"

	"github.com/nightmarlin/addressbook/cmd/addressbook/internal"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/postgres"
	"github.com/nightmarlin/addressbook/cmd/addressbook/internal/storetest"
)

func TestDB(t *testing.T) {
	ctx := context.Background()

	ctr, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("addressbook"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("password"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.ConnectionString(ctx, "sslmode=disable", "TimeZone=UTC")
	require.NoError(t, err)

	storetest.Run(t, func(t *testing.T) internal.Store {
		db, err := postgres.Open(ctx, url, zaptest.NewLogger(t))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		// every subtest shares the container, so start from empty tables
		conn, err := pgx.Connect(ctx, url)
		require.NoError(t, err)
		defer func() { _ = conn.Close(ctx) }()
		_, err = conn.Exec(ctx, `truncate phones, contacts`)
		require.NoError(t, err)

		return db
	})
}

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"wfl-bus-finder-api-server/internal/database"
	"wfl-bus-finder-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, numbers ...string) *database.MemoryBusStore {
	t.Helper()
	store := database.NewMemoryBusStore()
	for _, n := range numbers {
		require.NoError(t, store.Upsert(context.Background(), models.Bus{BusNumber: n}))
	}
	return store
}

func TestDeleteAllBusesConfirmed(t *testing.T) {
	for _, answer := range []string{"yes\n", "YES\n", "yes"} {
		store := seeded(t, "1", "2", "3")
		var out bytes.Buffer

		deleted, err := deleteAllBuses(context.Background(), store, strings.NewReader(answer), &out)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted, answer)

		left, err := store.ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, left)
	}
}

func TestDeleteAllBusesCancelled(t *testing.T) {
	for _, answer := range []string{"no\n", "y\n", "\n", ""} {
		store := seeded(t, "1", "2")
		var out bytes.Buffer

		deleted, err := deleteAllBuses(context.Background(), store, strings.NewReader(answer), &out)
		require.NoError(t, err)
		assert.Zero(t, deleted)
		assert.Contains(t, out.String(), "Cancelled.")

		left, err := store.ListAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, left, 2)
	}
}

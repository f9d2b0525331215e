// internal/database/store.go
package database

import (
	"context"

	"wfl-bus-finder-api-server/internal/models"
)

// BusCollection is the collection name shared by every backend.
const BusCollection = "Bus"

// BusStore persists reported bus positions keyed by bus number.
type BusStore interface {
	// Upsert replaces the stored document for bus.BusNumber, creating it if needed.
	Upsert(ctx context.Context, bus models.Bus) error
	// ListAll returns every bus ordered by models.SortByBusNumber.
	ListAll(ctx context.Context) ([]models.Bus, error)
	// DeleteAll removes every bus and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// internal/database/seeder.go
package database

import (
	"context"
	"fmt"

	"wfl-bus-finder-api-server/internal/logging"
	"wfl-bus-finder-api-server/internal/models"
)

func coord(v float64) *float64 { return &v }

// DemoBuses is a small fleet placed on real SoMa intersections.
var DemoBuses = []models.Bus{
	{BusNumber: "1", MainStreet: "Folsom Street", PrimaryCrossStreet: "2nd Street", SecondaryCrossStreet: "Essex Street", City: "San Francisco"},
	{BusNumber: "7", MainStreet: "The Embarcadero", PrimaryCrossStreet: "Market Street", Latitude: coord(37.7955), Longitude: coord(-122.3937), City: "San Francisco"},
	{BusNumber: "12", MainStreet: "Bryant Street", PrimaryCrossStreet: "3rd Street", SecondaryCrossStreet: "Ritch Street"},
}

// SeedDemoBuses writes DemoBuses when the store is empty.
func SeedDemoBuses(ctx context.Context, store BusStore) error {
	existing, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("check existing buses: %w", err)
	}
	if len(existing) > 0 {
		logging.Info().Int("count", len(existing)).Msg("Buses already present, demo seeding skipped")
		return nil
	}

	for _, b := range DemoBuses {
		if err := store.Upsert(ctx, b); err != nil {
			return err
		}
	}
	logging.Info().Int("count", len(DemoBuses)).Msg("Demo buses seeded")
	return nil
}

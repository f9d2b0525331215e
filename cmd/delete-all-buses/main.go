// cmd/delete-all-buses/main.go

// Command delete-all-buses clears every document in the Bus collection after
// an interactive "yes". Useful for wiping test data.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"wfl-bus-finder-api-server/config"
	"wfl-bus-finder-api-server/internal/database"
	"wfl-bus-finder-api-server/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		logging.Fatal().Err(err).Msg("Could not load config")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: "console"})

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)
	store := database.NewMongoBusStore(client.Database(cfg.Mongo.DBName))

	fmt.Printf("WARNING: This will delete ALL bus documents from %s!\n", cfg.Mongo.DBName)
	if _, err := deleteAllBuses(ctx, store, os.Stdin, os.Stdout); err != nil {
		logging.Fatal().Err(err).Msg("Delete failed")
	}
}

// deleteAllBuses asks for confirmation on in and, on "yes", removes every bus.
// It returns the number deleted, or 0 when the user declines.
func deleteAllBuses(ctx context.Context, store database.BusStore, in io.Reader, out io.Writer) (int64, error) {
	fmt.Fprint(out, "Are you sure you want to continue? (yes/no): ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read confirmation: %w", err)
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
		fmt.Fprintln(out, "Cancelled.")
		return 0, nil
	}

	buses, err := store.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, bus := range buses {
		logging.Info().Str("bus", bus.BusNumber).Msg("Deleting bus")
	}

	deleted, err := store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	logging.Info().Int64("deleted", deleted).Msg("Deleted bus documents")
	return deleted, nil
}

// internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"wfl-bus-finder-api-server/config"
	"wfl-bus-finder-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client and verifies it with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// busDocument pins the bus number to _id so each bus has exactly one document.
type busDocument struct {
	ID         string `bson:"_id"`
	models.Bus `bson:",inline"`
}

// MongoBusStore is the BusStore backed by one MongoDB collection.
type MongoBusStore struct {
	coll *mongo.Collection
}

func NewMongoBusStore(db *mongo.Database) *MongoBusStore {
	return &MongoBusStore{coll: db.Collection(BusCollection)}
}

func (s *MongoBusStore) Upsert(ctx context.Context, bus models.Bus) error {
	doc := busDocument{ID: bus.BusNumber, Bus: bus}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": bus.BusNumber}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert bus %s: %w", bus.BusNumber, err)
	}
	return nil
}

func (s *MongoBusStore) ListAll(ctx context.Context) ([]models.Bus, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("query buses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []busDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode buses: %w", err)
	}

	buses := make([]models.Bus, 0, len(docs))
	for _, d := range docs {
		if d.BusNumber == "" {
			d.BusNumber = d.ID
		}
		buses = append(buses, d.Bus)
	}
	models.SortByBusNumber(buses)
	return buses, nil
}

func (s *MongoBusStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete buses: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *MongoBusStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}

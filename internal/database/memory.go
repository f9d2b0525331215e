// internal/database/memory.go
package database

import (
	"context"
	"sync"

	"wfl-bus-finder-api-server/internal/models"
)

// MemoryBusStore keeps buses in process memory. Used for tests and local runs
// with STORE_DRIVER=memory.
type MemoryBusStore struct {
	mu    sync.RWMutex
	order []string
	buses map[string]models.Bus
}

func NewMemoryBusStore() *MemoryBusStore {
	return &MemoryBusStore{buses: make(map[string]models.Bus)}
}

func (s *MemoryBusStore) Upsert(_ context.Context, bus models.Bus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buses[bus.BusNumber]; !ok {
		s.order = append(s.order, bus.BusNumber)
	}
	s.buses[bus.BusNumber] = copyBus(bus)
	return nil
}

func (s *MemoryBusStore) ListAll(_ context.Context) ([]models.Bus, error) {
	s.mu.RLock()
	buses := make([]models.Bus, 0, len(s.order))
	for _, n := range s.order {
		buses = append(buses, copyBus(s.buses[n]))
	}
	s.mu.RUnlock()

	models.SortByBusNumber(buses)
	return buses, nil
}

func (s *MemoryBusStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.order))
	s.order = nil
	s.buses = make(map[string]models.Bus)
	return n, nil
}

func (s *MemoryBusStore) Ping(context.Context) error { return nil }

// copyBus detaches the coordinate pointers from the caller's values.
func copyBus(b models.Bus) models.Bus {
	if b.Latitude != nil {
		v := *b.Latitude
		b.Latitude = &v
	}
	if b.Longitude != nil {
		v := *b.Longitude
		b.Longitude = &v
	}
	return b
}

// internal/models/bus.go
package models

import (
	"math/big"
	"regexp"
	"sort"
	"strings"
)

// Bus is one reported bus position. BusNumber doubles as the document _id.
// All other fields are sparse: empty strings and nil coordinates are not stored.
type Bus struct {
	BusNumber            string   `bson:"busNumber" json:"busNumber"`
	MainStreet           string   `bson:"main_street,omitempty" json:"main_street,omitempty"`
	PrimaryCrossStreet   string   `bson:"primary_cross_street,omitempty" json:"primary_cross_street,omitempty"`
	SecondaryCrossStreet string   `bson:"secondary_cross_street,omitempty" json:"secondary_cross_street,omitempty"`
	Latitude             *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude            *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	City                 string   `bson:"city,omitempty" json:"city,omitempty"`
}

// BusEvent is pushed to websocket subscribers.
type BusEvent struct {
	Type    string `json:"type"` // snapshot, bus_reported, buses_cleared
	Bus     *Bus   `json:"bus,omitempty"`
	Buses   []Bus  `json:"buses,omitempty"`
	Deleted int64  `json:"deleted,omitempty"`
}

const (
	EventSnapshot     = "snapshot"
	EventBusReported  = "bus_reported"
	EventBusesCleared = "buses_cleared"
)

// integerPattern matches a signed decimal integer, optionally grouped with
// single underscores between digits ("1_000").
var integerPattern = regexp.MustCompile(`^[+-]?[0-9]+(_[0-9]+)*$`)

// SortKey is the integer value of BusNumber, or 0 when it is not an integer.
// There is no size limit.
func (b Bus) SortKey() *big.Int {
	s := strings.TrimSpace(b.BusNumber)
	n := new(big.Int)
	if !integerPattern.MatchString(s) {
		return n
	}
	n.SetString(strings.ReplaceAll(s, "_", ""), 10)
	return n
}

// SortByBusNumber orders buses by SortKey. The sort is stable, so non-numeric
// bus numbers keep their relative store order among the zeros.
func SortByBusNumber(buses []Bus) {
	type keyed struct {
		key *big.Int
		bus Bus
	}
	tmp := make([]keyed, len(buses))
	for i, b := range buses {
		tmp[i] = keyed{key: b.SortKey(), bus: b}
	}
	sort.SliceStable(tmp, func(i, j int) bool {
		return tmp[i].key.Cmp(tmp[j].key) < 0
	})
	for i := range tmp {
		buses[i] = tmp[i].bus
	}
}

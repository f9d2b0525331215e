// internal/streets/streets.go
package streets

// MainKey identifies the main street half of a secondary-street lookup.
// Wildcard is a sentinel that never collides with a real street name.
type MainKey struct {
	name     string
	wildcard bool
}

// Wildcard matches any main street.
var Wildcard = MainKey{wildcard: true}

// Street returns the key for a concrete main street.
func Street(name string) MainKey {
	return MainKey{name: name}
}

// String renders the key the way GET /streets serializes it.
func (k MainKey) String() string {
	if k.wildcard {
		return "*"
	}
	return k.name
}

type pairKey struct {
	main    MainKey
	primary string
}

// Table is the read-only adjacency data for one service area.
type Table struct {
	mainOrder []string
	primary   map[string][]string
	pairOrder []pairKey
	secondary map[pairKey][]string
}

// MainStreet lists the primary cross streets of one main street.
type MainStreet struct {
	Name         string
	CrossStreets []string
}

// SecondaryEntry lists the secondary cross streets for a (main, primary) pair.
type SecondaryEntry struct {
	Main    MainKey
	Primary string
	Streets []string
}

// NewTable builds a table. Input order is kept; later duplicates win.
func NewTable(mains []MainStreet, secondaries []SecondaryEntry) *Table {
	t := &Table{
		primary:   make(map[string][]string, len(mains)),
		secondary: make(map[pairKey][]string, len(secondaries)),
	}
	for _, m := range mains {
		if _, ok := t.primary[m.Name]; !ok {
			t.mainOrder = append(t.mainOrder, m.Name)
		}
		t.primary[m.Name] = clone(m.CrossStreets)
	}
	for _, s := range secondaries {
		k := pairKey{main: s.Main, primary: s.Primary}
		if _, ok := t.secondary[k]; !ok {
			t.pairOrder = append(t.pairOrder, k)
		}
		t.secondary[k] = clone(s.Streets)
	}
	return t
}

// MainStreets returns all main streets in configured order.
func (t *Table) MainStreets() []string {
	return clone(t.mainOrder)
}

// PrimaryCrossStreets returns the cross streets for main, or an empty slice
// if main is unknown.
func (t *Table) PrimaryCrossStreets(main string) []string {
	return clone(t.primary[main])
}

// SecondaryCrossStreets resolves the exact (main, primary) pair first, then
// (Wildcard, primary). Unknown pairs yield an empty slice.
func (t *Table) SecondaryCrossStreets(main, primary string) []string {
	if s, ok := t.secondary[pairKey{main: Street(main), primary: primary}]; ok {
		return clone(s)
	}
	if s, ok := t.secondary[pairKey{main: Wildcard, primary: primary}]; ok {
		return clone(s)
	}
	return []string{}
}

// CrossStreets returns the full main -> primary cross street mapping.
func (t *Table) CrossStreets() map[string][]string {
	out := make(map[string][]string, len(t.primary))
	for k, v := range t.primary {
		out[k] = clone(v)
	}
	return out
}

// Secondary returns the secondary mapping keyed by "main|primary", with "*"
// standing in for the wildcard.
func (t *Table) Secondary() map[string][]string {
	out := make(map[string][]string, len(t.secondary))
	for _, k := range t.pairOrder {
		out[k.main.String()+"|"+k.primary] = clone(t.secondary[k])
	}
	return out
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

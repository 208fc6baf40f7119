// Package catalog holds the fixed list of equipment offered at the front desk.
package catalog

var equipment = []string{
	"Treadmill",
	"Elliptical",
	"Rowing Machine",
	"Stationary Bike",
	"Squat Rack",
	"Bench Press",
	"Dumbbells",
	"Leg Press",
	"Cable Machine",
}

var index = func() map[string]struct{} {
	m := make(map[string]struct{}, len(equipment))
	for _, name := range equipment {
		m[name] = struct{}{}
	}
	return m
}()

// Names returns the catalog in display order. The caller owns the returned slice.
func Names() []string {
	out := make([]string, len(equipment))
	copy(out, equipment)
	return out
}

// Contains reports whether name is a catalog item. Matching is exact.
func Contains(name string) bool {
	_, ok := index[name]
	return ok
}

// Package component defines the named units of install/uninstall/link
// granularity and the static dependency graph between them.
//
// The registry is an immutable configuration structure created once at
// startup and injected into the installer, uninstaller and linker; the
// maps returned by its methods are copies, so callers cannot mutate the
// shared state.
package component

// Component is one named unit of install/uninstall/link granularity.
type Component string

const (
	Continents Component = "continents"
	Subregions Component = "subregions"
	Countries  Component = "countries"
	States     Component = "states"
	Cities     Component = "cities"
	Languages  Component = "languages"
	Currencies Component = "currencies"
	Timezones  Component = "timezones"
	// Worldables is the polymorphic junction table. It is schema-only:
	// there is no dataset behind it.
	Worldables Component = "worldables"
)

// All lists every component in canonical (dependency-respecting) order.
// Seeding in this order guarantees parents are present before children.
func All() []Component {
	return []Component{
		Continents, Subregions, Countries, States, Cities,
		Languages, Currencies, Timezones, Worldables,
	}
}

// tables maps components to their storage table names.
var tables = map[Component]string{
	Continents: "world_continents",
	Subregions: "world_subregions",
	Countries:  "world_countries",
	States:     "world_states",
	Cities:     "world_cities",
	Languages:  "world_languages",
	Currencies: "world_currencies",
	Timezones:  "world_timezones",
	Worldables: "worldables",
}

// dependencies is the static, hand-authored dependency graph.
// A component listed here works best when its dependencies are installed
// first; installing without them produces rows with NULL parent keys.
var dependencies = map[Component][]Component{
	Subregions: {Continents},
	Countries:  {Continents, Subregions},
	States:     {Continents, Subregions, Countries},
	Cities:     {Continents, Subregions, Countries, States},
}

// dependents is the inverse of dependencies, used by the uninstaller.
var dependents = map[Component][]Component{
	Continents: {Subregions, Countries, States, Cities},
	Subregions: {Countries, States, Cities},
	Countries:  {States, Cities},
	States:     {Cities},
}

// childForeignKeys maps a parent component to the FK column its dependents
// carry. Used by the uninstaller's nullify strategy.
var childForeignKeys = map[Component]string{
	Continents: "continent_id",
	Subregions: "subregion_id",
	Countries:  "country_id",
	States:     "state_id",
}

// largeDatasets are the components whose source payloads run to megabytes.
var largeDatasets = map[Component]bool{
	Cities: true,
	States: true,
}

// linkable lists components the orphan linker knows how to process,
// in processing order (parents before children).
var linkable = []Component{Subregions, Countries, States, Cities}

// Valid reports whether name is a known component.
func Valid(name string) bool {
	_, ok := tables[Component(name)]
	return ok
}

// Table returns the storage table name for a component.
func Table(c Component) string {
	return tables[c]
}

// Dependencies returns the components c depends on, in install order.
// The returned slice is a copy.
func Dependencies(c Component) []Component {
	deps := dependencies[c]
	res := make([]Component, len(deps))
	copy(res, deps)
	return res
}

// Dependents returns the components that depend on c.
// The returned slice is a copy.
func Dependents(c Component) []Component {
	deps := dependents[c]
	res := make([]Component, len(deps))
	copy(res, deps)
	return res
}

// ChildForeignKey returns the FK column dependents of c carry, and whether
// c has dependents at all.
func ChildForeignKey(c Component) (string, bool) {
	col, ok := childForeignKeys[c]
	return col, ok
}

// IsLarge reports whether a component's dataset is classified as large
// (skippable with --skip-large).
func IsLarge(c Component) bool {
	return largeDatasets[c]
}

// Linkable returns the components the orphan linker processes, in order.
func Linkable() []Component {
	res := make([]Component, len(linkable))
	copy(res, linkable)
	return res
}

// HasSeeder reports whether a component has a data seeder behind it.
// Worldables is schema-only.
func HasSeeder(c Component) bool {
	return c != Worldables
}

package iolink

import (
	"strings"

	"github.com/worldable/worlddb/pkg/schema"
)

// stateKey identifies a state within its country by ISO codes.
type stateKey struct {
	countryCode string
	stateCode   string
}

// normName lowercases and trims a name for lookup.
func normName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// normCode uppercases and trims an ISO-style code.
func normCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// mergeParents decides what a two-column update writes, given the
// current column values and the freshly resolved ones. Without force
// a column that is already set keeps its value: its slot stays nil and
// the update's COALESCE leaves it alone. The third result reports
// whether anything new would be written.
func mergeParents(
	curA, curB, newA, newB *int64,
	force bool,
) (*int64, *int64, bool) {
	var a, b *int64
	if force || curA == nil {
		a = newA
	}
	if force || curB == nil {
		b = newB
	}
	return a, b, a != nil || b != nil
}

// resolveSubregionParent resolves a subregion's continent from its
// metadata. The continents map is keyed by normalized name.
func resolveSubregionParent(
	meta *schema.SubregionMetadata,
	continents map[string]int64,
) (int64, bool) {
	if meta == nil || meta.ContinentName == "" {
		return 0, false
	}
	id, ok := continents[normName(meta.ContinentName)]
	return id, ok
}

// resolveCountryParents resolves a country's continent and subregion
// independently: one may resolve while the other does not.
func resolveCountryParents(
	meta *schema.CountryMetadata,
	continents map[string]int64,
	subregions map[string]int64,
) (continentID, subregionID *int64) {
	if meta == nil {
		return nil, nil
	}
	if meta.ContinentName != "" {
		if id, ok := continents[normName(meta.ContinentName)]; ok {
			continentID = &id
		}
	}
	if meta.SubregionName != "" {
		if id, ok := subregions[normName(meta.SubregionName)]; ok {
			subregionID = &id
		}
	}
	return continentID, subregionID
}

// resolveStateParent resolves a state's country by ISO code first,
// falling back to the country name.
func resolveStateParent(
	meta *schema.StateMetadata,
	countriesByCode map[string]int64,
	countriesByName map[string]int64,
) (int64, bool) {
	if meta == nil {
		return 0, false
	}
	if meta.CountryCode != "" {
		if id, ok := countriesByCode[normCode(meta.CountryCode)]; ok {
			return id, true
		}
	}
	if meta.CountryName != "" {
		if id, ok := countriesByName[normName(meta.CountryName)]; ok {
			return id, true
		}
	}
	return 0, false
}

// resolveCityParents resolves a city's country by ISO code and its
// state by the country/state code pair. A city may resolve its country
// while its state stays unknown.
func resolveCityParents(
	meta *schema.CityMetadata,
	countriesByCode map[string]int64,
	statesByKey map[stateKey]int64,
) (countryID, stateID *int64) {
	if meta == nil {
		return nil, nil
	}
	cc := normCode(meta.CountryCode)
	if cc != "" {
		if id, ok := countriesByCode[cc]; ok {
			countryID = &id
		}
	}
	sc := normCode(meta.StateCode)
	if cc != "" && sc != "" {
		if id, ok := statesByKey[stateKey{cc, sc}]; ok {
			stateID = &id
		}
	}
	return countryID, stateID
}

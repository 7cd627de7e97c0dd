// Package worldable lets host applications attach their own records to
// world entities through the polymorphic worldables junction table.
//
// Operations are parameterized by a Kind: the entity's discriminator
// tag, its storage table and the natural keys a loosely-typed reference
// is resolved against. The resolution order per kind is fixed.
package worldable

import (
	"strings"

	"github.com/worldable/worlddb/pkg/component"
)

// lookup is one natural-key match: a column, how to normalize the input
// before comparing, and whether the match is a partial one.
type lookup struct {
	column  string
	norm    func(string) string
	partial bool
}

func asIs(s string) string  { return strings.TrimSpace(s) }
func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Kind describes one attachable entity type.
type Kind struct {
	// Tag is the discriminator stored in worldables.world_entity_type.
	Tag string

	// Table is the entity's storage table.
	Table string

	// Component is the component that provides the entity's data.
	Component component.Component

	keys []lookup
}

var (
	Continents = Kind{
		Tag:       "continent",
		Table:     "world_continents",
		Component: component.Continents,
		keys: []lookup{
			{column: "name", norm: asIs},
			{column: "code", norm: upper},
		},
	}
	Subregions = Kind{
		Tag:       "subregion",
		Table:     "world_subregions",
		Component: component.Subregions,
		keys: []lookup{
			{column: "code", norm: upper},
			{column: "name", norm: asIs},
		},
	}
	Countries = Kind{
		Tag:       "country",
		Table:     "world_countries",
		Component: component.Countries,
		keys: []lookup{
			{column: "name", norm: asIs},
			{column: "iso_code", norm: upper},
			{column: "iso_code_3", norm: upper},
		},
	}
	States = Kind{
		Tag:       "state",
		Table:     "world_states",
		Component: component.States,
		keys: []lookup{
			{column: "name", norm: asIs},
			{column: "code", norm: upper},
		},
	}
	Cities = Kind{
		Tag:       "city",
		Table:     "world_cities",
		Component: component.Cities,
		keys: []lookup{
			{column: "name", norm: asIs},
		},
	}
	Languages = Kind{
		Tag:       "language",
		Table:     "world_languages",
		Component: component.Languages,
		keys: []lookup{
			{column: "name", norm: asIs},
			{column: "iso_code", norm: lower},
		},
	}
	Currencies = Kind{
		Tag:       "currency",
		Table:     "world_currencies",
		Component: component.Currencies,
		keys: []lookup{
			{column: "code", norm: upper},
			{column: "name", norm: asIs},
		},
	}
	Timezones = Kind{
		Tag:       "timezone",
		Table:     "world_timezones",
		Component: component.Timezones,
		keys: []lookup{
			{column: "zone_name", norm: asIs},
			{column: "abbreviation", norm: upper},
			{column: "zone_name", norm: asIs, partial: true},
		},
	}
)

// Kinds lists every registered kind.
func Kinds() []Kind {
	return []Kind{
		Continents, Subregions, Countries, States, Cities,
		Languages, Currencies, Timezones,
	}
}

// KindFor returns the kind registered under a tag.
func KindFor(tag string) (Kind, error) {
	for _, k := range Kinds() {
		if k.Tag == tag {
			return k, nil
		}
	}
	return Kind{}, unknownKindError(tag)
}

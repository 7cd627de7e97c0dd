package schema

import (
	"github.com/worldable/worlddb/pkg/component"
)

// models maps each installable component to its gorm model.
var models = map[component.Component]any{
	component.Continents: &Continent{},
	component.Subregions: &Subregion{},
	component.Countries:  &Country{},
	component.States:     &State{},
	component.Cities:     &City{},
	component.Languages:  &Language{},
	component.Currencies: &Currency{},
	component.Timezones:  &Timezone{},
	component.Worldables: &Worldable{},
}

// Model returns the gorm model for a component, or nil for an unknown
// component.
func Model(c component.Component) any {
	return models[c]
}

// AllModels returns the models for every installable component in
// canonical dependency order, followed by the installation-state ledger.
func AllModels() []any {
	res := make([]any, 0, len(models)+1)
	for _, c := range component.All() {
		if m, ok := models[c]; ok {
			res = append(res, m)
		}
	}
	res = append(res, &InstallationState{})
	return res
}

package schema

import "encoding/json"

// SubregionMetadata is the denormalized payload stored with a subregion.
type SubregionMetadata struct {
	// ContinentName names the parent continent; the linker resolves it
	// to ContinentID.
	ContinentName string `json:"continent_name,omitempty"`
}

// CountryMetadata is the denormalized payload stored with a country.
// Fields the linker depends on are typed; purely informational blobs
// pass through as raw JSON.
type CountryMetadata struct {
	ContinentName string `json:"continent_name,omitempty"`
	SubregionName string `json:"subregion_name,omitempty"`

	Capital        string `json:"capital,omitempty"`
	Native         string `json:"native,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	TLD            string `json:"tld,omitempty"`
	NumericCode    string `json:"numeric_code,omitempty"`
	CurrencyName   string `json:"currency_name,omitempty"`
	CurrencySymbol string `json:"currency_symbol,omitempty"`
	CurrencyCode   string `json:"currency_code,omitempty"`
	Emoji          string `json:"emoji,omitempty"`

	Timezones    json.RawMessage `json:"timezones,omitempty"`
	Translations json.RawMessage `json:"translations,omitempty"`
}

// StateMetadata is the denormalized payload stored with a state.
type StateMetadata struct {
	// CountryCode/CountryName identify the parent country; the linker
	// tries the ISO code first and falls back to the name.
	CountryCode string `json:"country_code,omitempty"`
	CountryName string `json:"country_name,omitempty"`

	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
	Type      string `json:"type,omitempty"`
}

// CityMetadata is the denormalized payload stored with a city.
type CityMetadata struct {
	// CountryCode resolves to CountryID; StateCode resolves to StateID
	// within that country.
	CountryCode string `json:"country_code,omitempty"`
	StateCode   string `json:"state_code,omitempty"`

	CountryName string `json:"country_name,omitempty"`
	StateName   string `json:"state_name,omitempty"`
}

// InstallMetadata records details of the last install or seed run for a
// component.
type InstallMetadata struct {
	// RunID groups ledger rows written by a single install invocation.
	RunID string `json:"run_id,omitempty"`

	// Orphans counts rows left with NULL parent references after the
	// seed, keyed by relation name.
	Orphans map[string]int `json:"orphans,omitempty"`

	DurationSec float64 `json:"duration_sec,omitempty"`
}

// Package schema provides database schema models for worlddb.
//
// All parent references on child entities are nullable on purpose: the
// schema must be creatable and usable when parent components are absent
// or seeded later. The orphan linker backfills them from denormalized
// metadata afterwards.
package schema

import (
	"time"
)

// Continent is the root of the geographic hierarchy.
type Continent struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// Name is the continent name, e.g. "Africa".
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`

	// Code is the two-letter continent code: AF, AN, AS, EU, NA, OC, SA.
	Code string `gorm:"size:2;uniqueIndex;not null" json:"code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (Continent) TableName() string { return "world_continents" }

// Subregion is a UN M49-style subregion, e.g. "Western Africa".
type Subregion struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// ContinentID is backfilled by the linker when continents are
	// installed after subregions.
	ContinentID *int64 `gorm:"index" json:"continent_id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// Code is a three-letter subregion code, e.g. "WAF".
	Code string `gorm:"size:3;uniqueIndex;not null" json:"code"`

	// Metadata keeps the denormalized continent name used for linking.
	// It is written once at seed time and never removed, so re-linking
	// stays possible.
	Metadata *SubregionMetadata `gorm:"type:jsonb;serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (Subregion) TableName() string { return "world_subregions" }

// Country is an ISO 3166-1 country or territory.
type Country struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	ContinentID *int64 `gorm:"index" json:"continent_id"`
	SubregionID *int64 `gorm:"index" json:"subregion_id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// ISOCode is the two-letter ISO 3166-1 alpha-2 code.
	ISOCode string `gorm:"column:iso_code;size:2;uniqueIndex;not null" json:"iso_code"`

	// ISOCode3 is the three-letter ISO 3166-1 alpha-3 code.
	ISOCode3 string `gorm:"column:iso_code_3;size:3;uniqueIndex;not null" json:"iso_code_3"`

	// CallingCode is the international dialing prefix, e.g. "+234".
	CallingCode *string `gorm:"size:255" json:"calling_code"`

	Metadata *CountryMetadata `gorm:"type:jsonb;serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (Country) TableName() string { return "world_countries" }

// State is a first-level administrative division.
type State struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	CountryID *int64 `gorm:"index" json:"country_id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// Code is the ISO 3166-2 suffix, e.g. "LA" for Lagos. Not every
	// source row has one.
	Code *string `gorm:"size:255" json:"code"`

	// SourceID is the record id from the upstream dataset. It is the
	// natural key that makes batch re-seeding idempotent; rows added
	// manually by a host application leave it NULL.
	SourceID *int64 `gorm:"uniqueIndex" json:"source_id"`

	Metadata *StateMetadata `gorm:"type:jsonb;serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (State) TableName() string { return "world_states" }

// City is a populated place from the upstream cities dataset.
type City struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	CountryID *int64 `gorm:"index;index:idx_world_cities_country_state" json:"country_id"`
	StateID   *int64 `gorm:"index;index:idx_world_cities_country_state" json:"state_id"`

	Name string `gorm:"size:255;not null;index" json:"name"`

	// Latitude/Longitude are validated into [-90,90] / [-180,180] at
	// seed time; out-of-range source values are stored as NULL.
	Latitude  *float64 `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude *float64 `gorm:"type:decimal(11,8)" json:"longitude"`

	// SourceID is the upstream dataset record id; see State.SourceID.
	SourceID *int64 `gorm:"uniqueIndex" json:"source_id"`

	// Metadata keeps the denormalized country/state codes so the linker
	// can backfill CountryID/StateID without re-downloading the dataset.
	Metadata *CityMetadata `gorm:"type:jsonb;serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (City) TableName() string { return "world_cities" }

// Language is an ISO 639-1 language.
type Language struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Name       string  `gorm:"size:255;not null" json:"name"`
	NativeName *string `gorm:"size:255" json:"native_name"`

	// ISOCode is the two-letter ISO 639-1 code, lower case.
	ISOCode string `gorm:"column:iso_code;size:2;uniqueIndex;not null" json:"iso_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (Language) TableName() string { return "world_languages" }

// Currency is an ISO 4217 currency.
type Currency struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// Code is the three-letter ISO 4217 code, upper case.
	Code string `gorm:"size:3;uniqueIndex;not null" json:"code"`

	Symbol *string `gorm:"size:255" json:"symbol"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (Currency) TableName() string { return "world_currencies" }

// Timezone is an IANA zone with its standard offset.
type Timezone struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// Name is the human label, e.g. "West Africa Time".
	Name string `gorm:"size:255;not null" json:"name"`

	// ZoneName is the IANA identifier, e.g. "Africa/Lagos".
	ZoneName string `gorm:"size:255;uniqueIndex;not null" json:"zone_name"`

	// GMTOffset is the standard offset from UTC in seconds.
	GMTOffset int `gorm:"not null" json:"gmt_offset"`

	// GMTOffsetName is the display form, e.g. "UTC+01:00".
	GMTOffsetName string `gorm:"size:255;not null" json:"gmt_offset_name"`

	Abbreviation string `gorm:"size:255;not null" json:"abbreviation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (Timezone) TableName() string { return "world_timezones" }

// Worldable is the polymorphic junction row connecting a host-application
// record (the owner) to a world entity. Uniqueness is logical, not
// enforced: the same owner may link the same target twice under different
// groups.
type Worldable struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// WorldableType/WorldableID identify the owning record.
	WorldableType string `gorm:"size:255;not null;index:idx_worldables_owner" json:"worldable_type"`
	WorldableID   int64  `gorm:"not null;index:idx_worldables_owner" json:"worldable_id"`

	// WorldEntityID/WorldEntityType identify the target world entity.
	// The type is a registered entity tag, e.g. "country".
	WorldEntityID   int64  `gorm:"not null;index:idx_worldables_entity" json:"world_entity_id"`
	WorldEntityType string `gorm:"size:255;not null;index:idx_worldables_owner;index:idx_worldables_entity" json:"world_entity_type"`

	// Group is an optional label ("residence", "citizenship", ...)
	// scoping sync and detach operations.
	Group *string `gorm:"column:group_label;size:255" json:"group"`

	// Meta is an arbitrary per-link payload supplied by the host.
	Meta map[string]any `gorm:"type:jsonb;serializer:json" json:"meta"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (Worldable) TableName() string { return "worldables" }

// InstallationState is the per-component operations ledger.
type InstallationState struct {
	ID int64 `gorm:"primaryKey" json:"id"`

	// Component is the component name; one row per component.
	Component string `gorm:"size:255;uniqueIndex;not null" json:"component"`

	Installed   bool      `gorm:"not null;default:true" json:"installed"`
	InstalledAt time.Time `gorm:"autoCreateTime" json:"installed_at"`

	LastSeededAt *time.Time `json:"last_seeded_at"`

	// RecordCount is the row count observed after the last seed run.
	RecordCount int `gorm:"not null;default:0" json:"record_count"`

	Metadata *InstallMetadata `gorm:"type:jsonb;serializer:json" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName implements the gorm Tabler interface.
func (InstallationState) TableName() string { return "world_installation_state" }

package ioseed

import (
	"encoding/json"
	"strconv"
	"strings"
)

// countryRecord mirrors one object of the countries dataset.
type countryRecord struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	ISO2           string          `json:"iso2"`
	ISO3           string          `json:"iso3"`
	PhoneCode      string          `json:"phonecode"`
	Capital        string          `json:"capital"`
	Currency       string          `json:"currency"`
	CurrencyName   string          `json:"currency_name"`
	CurrencySymbol string          `json:"currency_symbol"`
	TLD            string          `json:"tld"`
	Native         string          `json:"native"`
	Region         string          `json:"region"`
	Subregion      string          `json:"subregion"`
	Nationality    string          `json:"nationality"`
	NumericCode    string          `json:"numeric_code"`
	Emoji          string          `json:"emoji"`
	Timezones      json.RawMessage `json:"timezones"`
	Translations   json.RawMessage `json:"translations"`
}

// valid reports whether the record is usable; records without a name or
// a two-letter ISO code are skipped.
func (r *countryRecord) valid() bool {
	return strings.TrimSpace(r.Name) != "" && len(r.ISO2) == 2
}

// stateRecord mirrors one object of the states dataset.
type stateRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	StateCode   string `json:"state_code"`
	Type        string `json:"type"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
}

func (r *stateRecord) valid() bool {
	return strings.TrimSpace(r.Name) != "" && r.ID > 0
}

// cityRecord mirrors one object of the cities dataset.
type cityRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	StateCode   string `json:"state_code"`
	StateName   string `json:"state_name"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
}

func (r *cityRecord) valid() bool {
	return strings.TrimSpace(r.Name) != "" && r.ID > 0
}

// languageRecord mirrors one value of the languages dataset, which is
// an object keyed by ISO 639-1 code.
type languageRecord struct {
	Name   string `json:"name"`
	Native string `json:"native"`
}

// currencyRecord mirrors one value of the currencies dataset, which is
// an object keyed by ISO 4217 code.
type currencyRecord struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// sanitizeCoordinate parses a latitude or longitude string and checks
// it against the given bound (90 for latitude, 180 for longitude).
// Unparseable or out-of-range values become nil.
func sanitizeCoordinate(raw string, bound float64) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	if v < -bound || v > bound {
		return nil
	}
	return &v
}

// normCode uppercases and trims an ISO-style code.
func normCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

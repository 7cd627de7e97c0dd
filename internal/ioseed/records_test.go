package ioseed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeCoordinate(t *testing.T) {
	tests := []struct {
		msg   string
		raw   string
		bound float64
		want  *float64
	}{
		{"valid latitude", "6.45407", 90, ptr(6.45407)},
		{"valid negative", "-33.86785", 90, ptr(-33.86785)},
		{"latitude boundary", "90", 90, ptr(90.0)},
		{"latitude negative boundary", "-90", 90, ptr(-90.0)},
		{"latitude out of range", "90.00001", 90, nil},
		{"latitude far out of range", "-120", 90, nil},
		{"longitude boundary", "180", 180, ptr(180.0)},
		{"longitude out of range", "-180.5", 180, nil},
		{"empty", "", 90, nil},
		{"whitespace", "   ", 90, nil},
		{"garbage", "not-a-number", 90, nil},
		{"trimmed", " 3.39467 ", 90, ptr(3.39467)},
	}

	for _, v := range tests {
		got := sanitizeCoordinate(v.raw, v.bound)
		if v.want == nil {
			assert.Nil(t, got, v.msg)
		} else {
			require.NotNil(t, got, v.msg)
			assert.InDelta(t, *v.want, *got, 1e-9, v.msg)
		}
	}
}

func ptr(f float64) *float64 { return &f }

func TestCountryRecordDecode(t *testing.T) {
	raw := `{
		"id": 160,
		"name": "Nigeria",
		"iso2": "NG",
		"iso3": "NGA",
		"phonecode": "234",
		"capital": "Abuja",
		"currency": "NGN",
		"currency_name": "Nigerian naira",
		"currency_symbol": "₦",
		"tld": ".ng",
		"native": "Nigeria",
		"region": "Africa",
		"subregion": "Western Africa",
		"nationality": "Nigerian",
		"numeric_code": "566",
		"emoji": "🇳🇬",
		"timezones": [{"zoneName": "Africa/Lagos", "gmtOffset": 3600}],
		"translations": {"fr": "Nigéria"}
	}`

	var rec countryRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.True(t, rec.valid())
	assert.Equal(t, "Nigeria", rec.Name)
	assert.Equal(t, "NG", rec.ISO2)
	assert.Equal(t, "NGA", rec.ISO3)
	assert.Equal(t, "Western Africa", rec.Subregion)
	assert.NotEmpty(t, rec.Timezones)
}

func TestCountryRecordValid(t *testing.T) {
	assert.False(t, (&countryRecord{Name: "", ISO2: "NG"}).valid())
	assert.False(t, (&countryRecord{Name: "  ", ISO2: "NG"}).valid())
	assert.False(t, (&countryRecord{Name: "Nigeria", ISO2: "N"}).valid())
	assert.True(t, (&countryRecord{Name: "Nigeria", ISO2: "NG"}).valid())
}

func TestStateRecordValid(t *testing.T) {
	assert.True(t, (&stateRecord{ID: 306, Name: "Lagos"}).valid())
	assert.False(t, (&stateRecord{ID: 0, Name: "Lagos"}).valid())
	assert.False(t, (&stateRecord{ID: 306, Name: " "}).valid())
}

func TestCityRecordValid(t *testing.T) {
	assert.True(t, (&cityRecord{ID: 78644, Name: "Ikeja"}).valid())
	assert.False(t, (&cityRecord{ID: 0, Name: "Ikeja"}).valid())
	assert.False(t, (&cityRecord{ID: 78644, Name: ""}).valid())
}

func TestNormCode(t *testing.T) {
	assert.Equal(t, "NG", normCode(" ng "))
	assert.Equal(t, "NGN", normCode("ngn"))
	assert.Equal(t, "", normCode("  "))
}

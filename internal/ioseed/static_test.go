package ioseed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContinentData(t *testing.T) {
	assert.Len(t, continentData, 7)

	codes := make(map[string]bool)
	for _, c := range continentData {
		assert.NotEmpty(t, c.name)
		assert.Len(t, c.code, 2)
		assert.False(t, codes[c.code], "duplicate code %s", c.code)
		codes[c.code] = true
	}
}

func TestSubregionData(t *testing.T) {
	assert.Len(t, subregionData, 23)

	continents := make(map[string]bool)
	for _, c := range continentData {
		continents[c.name] = true
	}

	codes := make(map[string]bool)
	names := make(map[string]bool)
	for _, s := range subregionData {
		assert.NotEmpty(t, s.name)
		assert.Len(t, s.code, 3, "subregion %s", s.name)
		assert.False(t, codes[s.code], "duplicate code %s", s.code)
		codes[s.code] = true
		names[s.name] = true

		assert.True(t, continents[s.continent],
			"subregion %s names unknown continent %q", s.name, s.continent)
	}

	assert.True(t, names["Antarctica"], "Antarctica subregion missing")
}

func TestTimezoneData(t *testing.T) {
	zones := make(map[string]bool)
	for _, tz := range timezoneData {
		assert.NotEmpty(t, tz.name)
		assert.Contains(t, tz.zoneName, "/")
		assert.False(t, zones[tz.zoneName],
			"duplicate zone %s", tz.zoneName)
		zones[tz.zoneName] = true

		// offsets are within UTC-12..UTC+14
		assert.GreaterOrEqual(t, tz.gmtOffset, -12*3600)
		assert.LessOrEqual(t, tz.gmtOffset, 14*3600)
		assert.Contains(t, tz.offsetName, "UTC")
		assert.NotEmpty(t, tz.abbreviation)
	}
}

package ioseed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByName(t *testing.T) {
	idx := map[string]int64{"africa": 1, "south america": 6}

	id := lookupByName(idx, "Africa")
	require.NotNil(t, id)
	assert.Equal(t, int64(1), *id)

	// lookup is case-insensitive and trims
	id = lookupByName(idx, " SOUTH AMERICA ")
	require.NotNil(t, id)
	assert.Equal(t, int64(6), *id)

	assert.Nil(t, lookupByName(idx, "Atlantis"))
	assert.Nil(t, lookupByName(idx, ""))
	assert.Nil(t, lookupByName(map[string]int64{}, "Africa"))
}

func TestLookupByCode(t *testing.T) {
	idx := map[string]int64{"NG": 160, "DE": 82}

	id := lookupByCode(idx, "ng")
	require.NotNil(t, id)
	assert.Equal(t, int64(160), *id)

	assert.Nil(t, lookupByCode(idx, "XX"))
	assert.Nil(t, lookupByCode(idx, ""))
}

func TestLookupState(t *testing.T) {
	nigeria := int64(160)
	idx := map[cityStateKey]int64{
		{160, "LA"}: 306,
	}

	id := lookupState(idx, &nigeria, "la")
	require.NotNil(t, id)
	assert.Equal(t, int64(306), *id)

	// a state code cannot resolve without a country
	assert.Nil(t, lookupState(idx, nil, "LA"))

	assert.Nil(t, lookupState(idx, &nigeria, "ZZ"))
	assert.Nil(t, lookupState(idx, &nigeria, ""))

	germany := int64(82)
	assert.Nil(t, lookupState(idx, &germany, "LA"))
}

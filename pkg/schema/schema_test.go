package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worldable/worlddb/pkg/component"
	"github.com/worldable/worlddb/pkg/schema"
)

func TestModel(t *testing.T) {
	for _, c := range component.All() {
		assert.NotNil(t, schema.Model(c), "component %s has no model", c)
	}
	assert.Nil(t, schema.Model(component.Component("bogus")))
}

func TestAllModels(t *testing.T) {
	ms := schema.AllModels()
	// every component plus the ledger
	assert.Len(t, ms, len(component.All())+1)

	type tabler interface{ TableName() string }
	seen := make(map[string]bool)
	for _, m := range ms {
		tb, ok := m.(tabler)
		require.True(t, ok, "%T does not declare a table name", m)
		assert.False(t, seen[tb.TableName()], "duplicate table %s", tb.TableName())
		seen[tb.TableName()] = true
	}
	assert.True(t, seen["world_installation_state"])
}

func TestTableNamesMatchComponents(t *testing.T) {
	type tabler interface{ TableName() string }
	for _, c := range component.All() {
		m := schema.Model(c).(tabler)
		assert.Equal(t, component.Table(c), m.TableName(), "component %s", c)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	meta := schema.CountryMetadata{
		ContinentName: "Africa",
		SubregionName: "Western Africa",
		Capital:       "Abuja",
		CurrencyCode:  "NGN",
		Timezones:     json.RawMessage(`[{"zoneName":"Africa/Lagos"}]`),
	}
	bs, err := json.Marshal(meta)
	require.NoError(t, err)

	var got schema.CountryMetadata
	require.NoError(t, json.Unmarshal(bs, &got))
	assert.Equal(t, meta, got)
}

func TestMetadataOmitsEmptyFields(t *testing.T) {
	bs, err := json.Marshal(schema.CityMetadata{CountryCode: "NG"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"country_code":"NG"}`, string(bs))
}

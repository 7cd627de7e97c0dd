package sources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worldable/worlddb/pkg/sources"
)

func validConfig() *sources.SourcesConfig {
	return &sources.SourcesConfig{
		DataSources: []sources.DataSourceConfig{
			{
				Component: "countries",
				URL:       "https://example.org/countries.json",
			},
			{
				Component:   "cities",
				URL:         "https://example.org/cities.json.gz",
				Compression: "gzip",
			},
			{
				Component: "currencies",
				URL:       "https://example.org/currencies.json",
				Format:    "object",
			},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		msg    string
		mutate func(*sources.SourcesConfig)
	}{
		{"empty config", func(c *sources.SourcesConfig) {
			c.DataSources = nil
		}},
		{"missing component", func(c *sources.SourcesConfig) {
			c.DataSources[0].Component = ""
		}},
		{"unknown component", func(c *sources.SourcesConfig) {
			c.DataSources[0].Component = "planets"
		}},
		{"missing url", func(c *sources.SourcesConfig) {
			c.DataSources[0].URL = ""
		}},
		{"non-http url", func(c *sources.SourcesConfig) {
			c.DataSources[0].URL = "ftp://example.org/data.json"
		}},
		{"bad compression", func(c *sources.SourcesConfig) {
			c.DataSources[1].Compression = "zip"
		}},
		{"bad format", func(c *sources.SourcesConfig) {
			c.DataSources[2].Format = "csv"
		}},
		{"duplicate component", func(c *sources.SourcesConfig) {
			c.DataSources[1].Component = "countries"
		}},
	}

	for _, v := range tests {
		cfg := validConfig()
		v.mutate(cfg)
		assert.Error(t, cfg.Validate(), v.msg)
	}
}

func TestForComponent(t *testing.T) {
	cfg := validConfig()

	src, ok := cfg.ForComponent("cities")
	require.True(t, ok)
	assert.True(t, src.IsGzip())

	src, ok = cfg.ForComponent("countries")
	require.True(t, ok)
	assert.False(t, src.IsGzip())

	_, ok = cfg.ForComponent("continents")
	assert.False(t, ok)
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, sources.IsValidURL("https://example.org/x.json"))
	assert.True(t, sources.IsValidURL("http://example.org/x.json"))
	assert.False(t, sources.IsValidURL("file:///tmp/x.json"))
	assert.False(t, sources.IsValidURL("not a url"))
}

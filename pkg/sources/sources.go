// Package sources provides configuration for reference-data sources.
//
// It defines the schema for sources.yaml, which maps each remotely
// seeded component to its download URL. Components with built-in data
// (continents, subregions, timezones) do not appear here.
package sources

import (
	"fmt"
	"net/url"

	"github.com/worldable/worlddb/pkg/component"
)

// Sources loads the sources.yaml configuration.
type Sources interface {
	Load() (*SourcesConfig, error)
}

// SourcesConfig represents the complete sources.yaml file.
type SourcesConfig struct {
	// DataSources lists the remote datasets, one per component.
	DataSources []DataSourceConfig `yaml:"data_sources"`
}

// DataSourceConfig describes one remote dataset.
type DataSourceConfig struct {
	// Component names the component this dataset seeds.
	Component string `yaml:"component"`

	// URL is the http(s) download location of the JSON payload.
	URL string `yaml:"url"`

	// Compression is "gzip" when the payload is gzip-compressed,
	// empty otherwise.
	Compression string `yaml:"compression,omitempty"`

	// Format describes the payload shape: "array" (default) for a
	// top-level JSON array of objects, "object" for a map keyed by
	// natural key (currencies).
	Format string `yaml:"format,omitempty"`
}

// IsGzip reports whether the payload needs gzip decompression.
func (d *DataSourceConfig) IsGzip() bool {
	return d.Compression == "gzip"
}

// Validate checks the configuration for errors.
func (c *SourcesConfig) Validate() error {
	if len(c.DataSources) == 0 {
		return fmt.Errorf("no data sources specified in configuration")
	}

	seen := make(map[string]bool)
	for i := range c.DataSources {
		if err := c.DataSources[i].Validate(); err != nil {
			return fmt.Errorf("data source %d: %w", i+1, err)
		}
		if seen[c.DataSources[i].Component] {
			return fmt.Errorf(
				"data source %d: duplicate component %q",
				i+1, c.DataSources[i].Component,
			)
		}
		seen[c.DataSources[i].Component] = true
	}

	return nil
}

// Validate checks one data source entry.
func (d *DataSourceConfig) Validate() error {
	if d.Component == "" {
		return fmt.Errorf("component is required")
	}
	if !component.Valid(d.Component) {
		return fmt.Errorf("unknown component %q", d.Component)
	}
	if d.URL == "" {
		return fmt.Errorf("url is required")
	}
	if !IsValidURL(d.URL) {
		return fmt.Errorf("invalid url %q: must be http or https", d.URL)
	}
	if d.Compression != "" && d.Compression != "gzip" {
		return fmt.Errorf(
			"invalid compression %q: must be 'gzip' or empty",
			d.Compression,
		)
	}
	if d.Format != "" && d.Format != "array" && d.Format != "object" {
		return fmt.Errorf(
			"invalid format %q: must be 'array' or 'object'",
			d.Format,
		)
	}
	return nil
}

// ForComponent returns the data source for a component, if configured.
func (c *SourcesConfig) ForComponent(
	comp component.Component,
) (*DataSourceConfig, bool) {
	for i := range c.DataSources {
		if c.DataSources[i].Component == string(comp) {
			return &c.DataSources[i], true
		}
	}
	return nil, false
}

// IsValidURL checks if a string is a valid http(s) URL.
func IsValidURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

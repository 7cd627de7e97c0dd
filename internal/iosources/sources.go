// Package iosources loads sources.yaml from the user's config
// directory.
package iosources

import (
	"os"

	"github.com/worldable/worlddb/pkg/config"
	"github.com/worldable/worlddb/pkg/sources"
	"gopkg.in/yaml.v3"
)

type iosources struct {
	cfg *config.Config
}

func New(cfg *config.Config) sources.Sources {
	res := iosources{cfg: cfg}
	return &res
}

func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)
	sourcesConfig, err := loadSourcesConfig(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	return sourcesConfig, nil
}

func loadSourcesConfig(path string) (*sources.SourcesConfig, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg sources.SourcesConfig
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

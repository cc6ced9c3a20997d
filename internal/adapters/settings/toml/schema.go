package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	API     apiSchema     `toml:"api"`
	Session sessionSchema `toml:"session"`
	Log     logSchema     `toml:"log"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type apiSchema struct {
	BaseURL string `toml:"base_url,omitempty"`
	Timeout string `toml:"timeout,omitempty"`
}

type sessionSchema struct {
	Backend              string `toml:"backend,omitempty"`
	Dir                  string `toml:"dir,omitempty"`
	LogoutOnUnauthorized *bool  `toml:"logout_on_unauthorized,omitempty"`
}

type logSchema struct {
	Level string `toml:"level,omitempty"`
}

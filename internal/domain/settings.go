package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type SessionBackend string

const (
	SessionBackendChain SessionBackend = "chain"
	SessionBackendFile  SessionBackend = "file"
	SessionBackendPass  SessionBackend = "pass"
)

const (
	SettingAPIBaseURL           = "api.base_url"
	SettingAPITimeout           = "api.timeout"
	SettingSessionBackend       = "session.backend"
	SettingSessionDir           = "session.dir"
	SettingLogoutOnUnauthorized = "session.logout_on_unauthorized"
	SettingLogLevel             = "log.level"
)

const (
	DefaultAPIBaseURL = "http://localhost:5000/api"
	DefaultAPITimeout = 30 * time.Second
	DefaultLogLevel   = "warn"
	ConfigDirName     = ".notevault"
)

type Settings struct {
	APIBaseURL           string
	APITimeout           time.Duration
	SessionBackend       SessionBackend
	SessionDir           string
	LogoutOnUnauthorized bool
	LogLevel             string
}

type SettingValue struct {
	Key   string
	Value string
}

func DefaultSettings(homeDir string) Settings {
	return Settings{
		APIBaseURL:     DefaultAPIBaseURL,
		APITimeout:     DefaultAPITimeout,
		SessionBackend: SessionBackendChain,
		SessionDir:     filepath.Join(homeDir, ConfigDirName, "secrets"),
		LogLevel:       DefaultLogLevel,
	}
}

// SettingKeys lists every key accepted by Set, in display order.
func SettingKeys() []string {
	return []string{
		SettingAPIBaseURL,
		SettingAPITimeout,
		SettingSessionBackend,
		SettingSessionDir,
		SettingLogoutOnUnauthorized,
		SettingLogLevel,
	}
}

func (s Settings) Validate() error {
	parsed, err := url.Parse(s.APIBaseURL)
	if err != nil {
		return fmt.Errorf("%s: %w", SettingAPIBaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", SettingAPIBaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", SettingAPIBaseURL)
	}
	if s.APITimeout <= 0 {
		return fmt.Errorf("%s must be positive", SettingAPITimeout)
	}
	switch s.SessionBackend {
	case SessionBackendChain, SessionBackendFile, SessionBackendPass:
	default:
		return fmt.Errorf("unsupported %s %q", SettingSessionBackend, s.SessionBackend)
	}
	if strings.TrimSpace(s.SessionDir) == "" {
		return fmt.Errorf("%s is required", SettingSessionDir)
	}

	return nil
}

func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case SettingAPIBaseURL:
		s.APIBaseURL = value
	case SettingAPITimeout:
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		s.APITimeout = timeout
	case SettingSessionBackend:
		s.SessionBackend = SessionBackend(strings.ToLower(value))
	case SettingSessionDir:
		s.SessionDir = value
	case SettingLogoutOnUnauthorized:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		s.LogoutOnUnauthorized = enabled
	case SettingLogLevel:
		s.LogLevel = strings.ToLower(value)
	default:
		return fmt.Errorf("%w %q", ErrUnknownSetting, key)
	}

	return s.Validate()
}

func (s Settings) Values() []SettingValue {
	return []SettingValue{
		{Key: SettingAPIBaseURL, Value: s.APIBaseURL},
		{Key: SettingAPITimeout, Value: s.APITimeout.String()},
		{Key: SettingSessionBackend, Value: string(s.SessionBackend)},
		{Key: SettingSessionDir, Value: s.SessionDir},
		{Key: SettingLogoutOnUnauthorized, Value: strconv.FormatBool(s.LogoutOnUnauthorized)},
		{Key: SettingLogLevel, Value: s.LogLevel},
	}
}

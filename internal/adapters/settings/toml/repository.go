package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ConfigPathKey   = "config.path"
	EnvPrefix       = "NOTEVAULT"
	configFileName  = "config.toml"
	configFileMode  = 0o600
	configDirMode   = 0o700
	tempFilePattern = ".config-*.toml.tmp"
)

// Repository persists domain.Settings in a single TOML file.
type Repository struct {
	path    string
	homeDir string
	mu      *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SettingsRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	BindEnv(cfg)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(ConfigPathKey, filepath.Join(homeDir, domain.ConfigDirName, configFileName))

	path := strings.TrimSpace(cfg.GetString(ConfigPathKey))
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	path, err = normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{path: path, homeDir: homeDir, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

// Load returns the stored settings on top of the defaults. A missing file
// yields the defaults.
func (r *Repository) Load(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Settings{}, err
	}

	return fromSchema(domain.DefaultSettings(r.homeDir), file)
}

func (r *Repository) Save(ctx context.Context, settings domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validate settings: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeSchema(toSchema(settings))
}

// BindEnv makes every setting overridable through NOTEVAULT_<KEY>, with
// dots replaced by underscores.
func BindEnv(cfg *viper.Viper) {
	cfg.SetEnvPrefix(EnvPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
}

// ApplyOverrides layers environment and explicitly set viper values over
// the stored settings. The result is not persisted.
func ApplyOverrides(cfg *viper.Viper, stored domain.Settings) (domain.Settings, error) {
	if cfg == nil {
		return stored, nil
	}
	BindEnv(cfg)

	for _, value := range stored.Values() {
		cfg.SetDefault(value.Key, value.Value)
	}

	effective := stored
	for _, key := range domain.SettingKeys() {
		if err := effective.Set(key, cfg.GetString(key)); err != nil {
			return domain.Settings{}, fmt.Errorf("apply %s override: %w", key, err)
		}
	}

	return effective, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read config file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode config file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.path), configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	cleanup = false

	return nil
}

func fromSchema(defaults domain.Settings, file fileSchema) (domain.Settings, error) {
	settings := defaults
	overrides := map[string]string{
		domain.SettingAPIBaseURL:     file.API.BaseURL,
		domain.SettingAPITimeout:     file.API.Timeout,
		domain.SettingSessionBackend: file.Session.Backend,
		domain.SettingSessionDir:     file.Session.Dir,
		domain.SettingLogLevel:       file.Log.Level,
	}
	if file.Session.LogoutOnUnauthorized != nil {
		overrides[domain.SettingLogoutOnUnauthorized] = strconv.FormatBool(*file.Session.LogoutOnUnauthorized)
	}

	for _, key := range domain.SettingKeys() {
		value, ok := overrides[key]
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := settings.Set(key, value); err != nil {
			return domain.Settings{}, fmt.Errorf("config file: %w", err)
		}
	}

	return settings, nil
}

func toSchema(settings domain.Settings) fileSchema {
	logout := settings.LogoutOnUnauthorized

	return fileSchema{
		Version: currentSchemaVersion,
		API: apiSchema{
			BaseURL: settings.APIBaseURL,
			Timeout: settings.APITimeout.String(),
		},
		Session: sessionSchema{
			Backend:              string(settings.SessionBackend),
			Dir:                  settings.SessionDir,
			LogoutOnUnauthorized: &logout,
		},
		Log: logSchema{Level: settings.LogLevel},
	}
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

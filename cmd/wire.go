package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/notevault-cli/internal/adapters/api"
	notesrender "github.com/bnema/notevault-cli/internal/adapters/render/notes"
	chainstore "github.com/bnema/notevault-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/notevault-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/notevault-cli/internal/adapters/secrets/pass"
	settingstoml "github.com/bnema/notevault-cli/internal/adapters/settings/toml"
	"github.com/bnema/notevault-cli/internal/application"
	"github.com/bnema/notevault-cli/internal/domain"
	"github.com/bnema/notevault-cli/internal/logging"
	"github.com/bnema/notevault-cli/internal/ports"
	"github.com/bnema/notevault-cli/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type app struct {
	settings      domain.Settings
	settingsPath  string
	settingsSvc   *application.SettingsService
	session       *application.SessionStore
	auth          *application.AuthService
	notes         *application.NotesManager
	notesRenderer func(application.NotesSnapshot, notesrender.RenderOptions) (string, error)
	log           zerolog.Logger
	now           func() time.Time
	spinner       bool
}

func wireApp(logOutput io.Writer) (*app, error) {
	cfg := viper.New()
	repo, err := settingstoml.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	stored, err := repo.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load settings from %s: %w", repo.Path(), err)
	}
	settings, err := settingstoml.ApplyOverrides(cfg, stored)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logOutput)
	if err := logging.SetLevel(settings.LogLevel); err != nil {
		return nil, fmt.Errorf("%s: %w", domain.SettingLogLevel, err)
	}

	secretStore, err := newSecretStore(settings, component(logger, "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire session store backend: %w", err)
	}

	session := application.NewSessionStore(secretStore, component(logger, "session"))
	gateway, err := api.NewGateway(api.Config{
		BaseURL:        settings.APIBaseURL,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: settings.APITimeout,
		UserAgent:      "nv/" + version.Version,
		Logger:         component(logger, "gateway"),
	}, session)
	if err != nil {
		return nil, fmt.Errorf("wire request gateway: %w", err)
	}
	client := api.NewClient(gateway)

	guard := application.NewSessionGuard(session, settings.LogoutOnUnauthorized, component(logger, "guard"))
	notes := application.NewNotesManager(client, ports.SystemClock{}, guard, component(logger, "notes"))
	notes.Follow(session)

	return &app{
		settings:      settings,
		settingsPath:  repo.Path(),
		settingsSvc:   application.NewSettingsService(repo),
		session:       session,
		auth:          application.NewAuthService(client, session, guard),
		notes:         notes,
		notesRenderer: notesrender.Render,
		log:           logger,
		now:           time.Now,
	}, nil
}

func newSecretStore(settings domain.Settings, logger zerolog.Logger) (ports.SecretStore, error) {
	switch settings.SessionBackend {
	case domain.SessionBackendFile:
		return filestore.NewStore(settings.SessionDir), nil
	case domain.SessionBackendPass:
		return passstore.NewStore(), nil
	default:
		return chainstore.NewPassFirstWithFileFallback(settings.SessionDir, chainstore.WithLogger(logger))
	}
}

func component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

// errWriter resolves the command's stderr at write time so output
// redirected after wiring (tests, SetErr) is honored.
type errWriter struct {
	cmd *cobra.Command
}

func (w errWriter) Write(p []byte) (int, error) {
	return w.cmd.ErrOrStderr().Write(p)
}

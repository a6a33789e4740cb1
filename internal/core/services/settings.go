package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/docdesk-cli/internal/core/domain"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL     = "api.base_url"
	KeyAPITimeout     = "api.timeout_seconds"
	KeyAPIRateLimit   = "api.rate_limit"
	KeyUserID         = "user.id"
	KeySessionBackend = "session.backend"
	KeyDownloadDir    = "download.dir"
	KeyTagDebounce    = "tags.debounce_ms"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   s.getString(KeyAPIBaseURL, defaults.API.BaseURL),
			Timeout:   s.getSeconds(KeyAPITimeout, defaults.API.Timeout),
			RateLimit: s.getFloat(KeyAPIRateLimit, defaults.API.RateLimit),
		},
		UserID:         s.getString(KeyUserID, defaults.UserID),
		SessionBackend: s.getSessionBackend(defaults.SessionBackend),
		DownloadDir:    s.configStore.GetString(KeyDownloadDir), // No default - empty means working directory
		TagDebounce:    s.getMillis(KeyTagDebounce, defaults.TagDebounce),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyAPIBaseURL, settings.API.BaseURL},
		{KeyAPITimeout, int(settings.API.Timeout / time.Second)},
		{KeyAPIRateLimit, settings.API.RateLimit},
		{KeyUserID, settings.UserID},
		{KeySessionBackend, settings.SessionBackend.String()},
		{KeyDownloadDir, settings.DownloadDir},
		{KeyTagDebounce, int(settings.TagDebounce / time.Millisecond)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyAPIBaseURL:
		settings.API.BaseURL = value
	case KeyAPITimeout:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a whole number of seconds", domain.ErrInvalidInput, key)
		}
		settings.API.Timeout = time.Duration(n) * time.Second
	case KeyAPIRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.API.RateLimit = f
	case KeyUserID:
		settings.UserID = value
	case KeySessionBackend:
		settings.SessionBackend = domain.SessionBackend(value)
	case KeyDownloadDir:
		settings.DownloadDir = value
	case KeyTagDebounce:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a whole number of milliseconds", domain.ErrInvalidInput, key)
		}
		settings.TagDebounce = time.Duration(n) * time.Millisecond
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the recognised config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{
		KeyAPIBaseURL, KeyAPITimeout, KeyAPIRateLimit, KeyUserID,
		KeySessionBackend, KeyDownloadDir, KeyTagDebounce,
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Second
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return time.Duration(val) * time.Millisecond
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getSessionBackend(defaultVal domain.SessionBackend) domain.SessionBackend {
	val := s.configStore.GetString(KeySessionBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.SessionBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

package service

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"awards-api/internal/models"
	"awards-api/internal/repository"
)

// Setting keys
const (
	SettingNominationsOpen = "nominations_open"
	SettingClosedMessage   = "nominations_closed_message"
)

const settingsCacheTTL = 30 * time.Second

// SettingsService is the typed read API over the settings table. Reads go
// through a short-lived in-process cache; admin writes go straight to the
// database and invalidate the cache so the next read sees the new value.
type SettingsService struct {
	repo *repository.SettingsRepository

	mu        sync.RWMutex
	cache     map[string]string
	fetchedAt time.Time
}

// NewSettingsService creates a settings service
func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		repo:  repo,
		cache: make(map[string]string),
	}
}

// NominationsOpen reports whether public submission is enabled, with the
// message shown when it is not. Missing settings default to open.
func (s *SettingsService) NominationsOpen() (bool, string, error) {
	openValue, err := s.get(SettingNominationsOpen)
	if err != nil {
		return false, "", err
	}

	open := true
	if openValue != "" {
		parsed, parseErr := strconv.ParseBool(openValue)
		if parseErr == nil {
			open = parsed
		}
	}
	if open {
		return true, "", nil
	}

	message, err := s.get(SettingClosedMessage)
	if err != nil {
		return false, "", err
	}
	if message == "" {
		message = "Nominations are currently closed."
	}

	return false, message, nil
}

// SetNominationsOpen writes the toggle and close message, then invalidates
// the cache
func (s *SettingsService) SetNominationsOpen(open bool, message string) error {
	if err := s.repo.Set(SettingNominationsOpen, strconv.FormatBool(open)); err != nil {
		return err
	}
	if message != "" {
		if err := s.repo.Set(SettingClosedMessage, message); err != nil {
			return err
		}
	}

	s.Invalidate()
	return nil
}

// List returns all settings, bypassing the cache
func (s *SettingsService) List() ([]models.Setting, error) {
	return s.repo.List()
}

// Invalidate drops the cache so the next read hits the database
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

// get reads one setting through the cache. An absent key is cached as the
// empty string so missing settings do not bypass the TTL.
func (s *SettingsService) get(key string) (string, error) {
	s.mu.RLock()
	if time.Since(s.fetchedAt) < settingsCacheTTL {
		if value, ok := s.cache[key]; ok {
			s.mu.RUnlock()
			return value, nil
		}
	}
	s.mu.RUnlock()

	setting, err := s.repo.Get(key)
	if err != nil && !errors.Is(err, repository.ErrSettingNotFound) {
		return "", err
	}

	value := ""
	if setting != nil {
		value = setting.Value
	}

	s.mu.Lock()
	if time.Since(s.fetchedAt) >= settingsCacheTTL {
		s.cache = make(map[string]string)
		s.fetchedAt = time.Now()
	}
	s.cache[key] = value
	s.mu.Unlock()

	return value, nil
}

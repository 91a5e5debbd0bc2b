// Package preferences manages the presentation settings of a session:
// report language, display currency and whether shares carry an image.
//
// Values live in a storage.PreferenceStore under per-session keys. Reads never
// fail on bad stored data; unknown values fall back to the defaults.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/evenbetter/backend/internal/models"
	"github.com/evenbetter/backend/internal/report"
	"github.com/evenbetter/backend/internal/storage"
)

// Defaults applied when nothing is stored.
const (
	DefaultLanguage     = "he"
	DefaultCurrency     = report.DefaultCurrency
	DefaultIncludeImage = false
)

// Keys within a session's namespace.
const (
	keyLanguage     = "language"
	keyCurrency     = "currency"
	keyIncludeImage = "share_include_image"
)

// legacyIncludeImageKeys are read when keyIncludeImage holds nothing usable.
var legacyIncludeImageKeys = []string{"shareIncludeImage"}

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// Defaults returns the preferences of a fresh session.
func Defaults() models.Preferences {
	return models.Preferences{
		Language:     DefaultLanguage,
		Currency:     DefaultCurrency,
		IncludeImage: DefaultIncludeImage,
	}
}

// Update is a partial change; nil fields are left alone.
type Update struct {
	Language     *string
	Currency     *string
	IncludeImage *bool
}

// Service reads and writes preferences for sessions.
type Service struct {
	store storage.PreferenceStore
}

// NewService creates a preference service over store.
func NewService(store storage.PreferenceStore) *Service {
	return &Service{store: store}
}

// Get returns the effective preferences of a session.
func (s *Service) Get(ctx context.Context, sessionID string) (models.Preferences, error) {
	prefs := Defaults()

	lang, ok, err := s.store.GetPreference(ctx, key(sessionID, keyLanguage))
	if err != nil {
		return prefs, err
	}
	if ok && report.SupportedLanguage(lang) {
		prefs.Language = lang
	}

	cur, ok, err := s.store.GetPreference(ctx, key(sessionID, keyCurrency))
	if err != nil {
		return prefs, err
	}
	if ok && report.SupportedCurrency(cur) {
		prefs.Currency = strings.ToUpper(strings.TrimSpace(cur))
	}

	include, err := s.includeImage(ctx, sessionID)
	if err != nil {
		return prefs, err
	}
	prefs.IncludeImage = include

	return prefs, nil
}

func (s *Service) includeImage(ctx context.Context, sessionID string) (bool, error) {
	for _, k := range append([]string{keyIncludeImage}, legacyIncludeImageKeys...) {
		raw, ok, err := s.store.GetPreference(ctx, key(sessionID, k))
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		if v, ok := ParseIncludeImage(raw); ok {
			return v, nil
		}
	}
	return DefaultIncludeImage, nil
}

// Update validates every field of u before writing any of them, then returns
// the resulting preferences.
func (s *Service) Update(ctx context.Context, sessionID string, u Update) (models.Preferences, error) {
	var lang, cur string
	if u.Language != nil {
		lang = strings.ToLower(strings.TrimSpace(*u.Language))
		if !report.SupportedLanguage(lang) {
			return models.Preferences{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, *u.Language)
		}
	}
	if u.Currency != nil {
		cur = strings.ToUpper(strings.TrimSpace(*u.Currency))
		if !report.SupportedCurrency(cur) {
			return models.Preferences{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, *u.Currency)
		}
	}

	if u.Language != nil {
		if err := s.store.SetPreference(ctx, key(sessionID, keyLanguage), lang); err != nil {
			return models.Preferences{}, err
		}
	}
	if u.Currency != nil {
		if err := s.store.SetPreference(ctx, key(sessionID, keyCurrency), cur); err != nil {
			return models.Preferences{}, err
		}
	}
	if u.IncludeImage != nil {
		if err := s.store.SetPreference(ctx, key(sessionID, keyIncludeImage), formatBool(*u.IncludeImage)); err != nil {
			return models.Preferences{}, err
		}
	}

	return s.Get(ctx, sessionID)
}

// ToggleLanguage flips between Hebrew and English and returns the new language.
func (s *Service) ToggleLanguage(ctx context.Context, sessionID string) (string, error) {
	prefs, err := s.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	next := "en"
	if prefs.Language == "en" {
		next = "he"
	}
	if _, err := s.Update(ctx, sessionID, Update{Language: &next}); err != nil {
		return "", err
	}
	return next, nil
}

// Clear removes every stored preference of a session.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.DeletePreferences(ctx, key(sessionID, ""))
}

// Detect suggests preferences for a BCP 47 locale such as "he-IL" or "en-GB".
// Language comes from the tag's base, currency from its region; anything
// unsupported falls back to the defaults. Nothing is stored.
func Detect(locale string) models.Preferences {
	prefs := Defaults()

	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return prefs
	}

	if base, _ := tag.Base(); report.SupportedLanguage(base.String()) {
		prefs.Language = base.String()
	}

	region, conf := tag.Region()
	if conf == language.No {
		return prefs
	}
	if unit, ok := currency.FromRegion(region); ok && report.SupportedCurrency(unit.String()) {
		prefs.Currency = unit.String()
	}

	return prefs
}

// ParseIncludeImage reads a stored include-image value. It accepts "1"/"0",
// "true"/"false" and any JSON value (truthy or not). ok is false when the
// value cannot be read at all.
func ParseIncludeImage(raw string) (value bool, ok bool) {
	switch raw {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return false, false
	}
	switch t := v.(type) {
	case nil:
		return false, true
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case string:
		return t != "", true
	default:
		return true, true
	}
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func key(sessionID, name string) string {
	return sessionID + ":" + name
}
